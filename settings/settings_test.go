package settings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const testKey = "anilibria_autoskip_settings"

type memKV struct {
	data    map[string]string
	failSet bool
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(key string) mo.Option[string] {
	if v, ok := m.data[key]; ok {
		return mo.Some(v)
	}
	return mo.None[string]()
}

func (m *memKV) Set(key, value string) error {
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func TestLoadAndMerge(t *testing.T) {
	Convey("Given a persisted blob", t, func() {
		kv := newMemKV()

		Convey("When it is valid JSON with known and unknown keys", func() {
			kv.data[testKey] = `{"enabled":false,"skipEndings":false,"volume":0.5,"legacy":true}`
			merged := Merge(Load(kv, testKey))

			Convey("Then persisted booleans override defaults", func() {
				So(merged.Enabled, ShouldBeFalse)
				So(merged.SkipEndings, ShouldBeFalse)
			})

			Convey("Then missing keys keep their defaults", func() {
				So(merged.AutoStart, ShouldBeTrue)
				So(merged.SkipOpenings, ShouldBeTrue)
				So(merged.ShowNotifications, ShouldBeTrue)
			})

			Convey("Then the mapping holds exactly the five known keys", func() {
				m := merged.Map()
				So(len(m), ShouldEqual, 5)
				_, hasLegacy := m["legacy"]
				So(hasLegacy, ShouldBeFalse)
			})
		})

		Convey("When a known key holds a non-boolean", func() {
			kv.data[testKey] = `{"enabled":"no","skipOpenings":0}`
			So(Merge(Load(kv, testKey)), ShouldResemble, Defaults())
		})

		Convey("When it is unparsable", func() {
			kv.data[testKey] = `{"enabled":fal`
			So(Load(kv, testKey), ShouldBeEmpty)
			So(Merge(Load(kv, testKey)), ShouldResemble, Defaults())
		})

		Convey("When it is JSON but not an object", func() {
			kv.data[testKey] = `[true,false]`
			So(Merge(Load(kv, testKey)), ShouldResemble, Defaults())
		})

		Convey("When it is JSON null", func() {
			kv.data[testKey] = `null`
			So(Load(kv, testKey), ShouldBeEmpty)
		})

		Convey("When it is absent", func() {
			So(Load(kv, testKey), ShouldBeEmpty)
			So(Merge(Load(kv, testKey)), ShouldResemble, Defaults())
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Save should write the full mapping", t, func() {
		kv := newMemKV()
		s := Defaults()
		s.ShowNotifications = false

		So(Save(kv, testKey, s), ShouldBeNil)

		var persisted map[string]bool
		So(json.Unmarshal([]byte(kv.data[testKey]), &persisted), ShouldBeNil)
		So(persisted, ShouldResemble, map[string]bool{
			"enabled":           true,
			"autoStart":         true,
			"skipOpenings":      true,
			"skipEndings":       true,
			"showNotifications": false,
		})
	})
}

func TestNames(t *testing.T) {
	Convey("Names", t, func() {
		So(Known("skipOpenings"), ShouldBeTrue)
		So(Known("volume"), ShouldBeFalse)

		var s Settings
		So(s.Set("volume", true), ShouldBeFalse)
		_, ok := s.Get("volume")
		So(ok, ShouldBeFalse)

		for _, n := range Names() {
			So(n.Label(), ShouldNotEqual, string(n))
		}
	})
}
