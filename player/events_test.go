//go:build !windows

package player

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func (r *eventRecorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func TestParseEvent(t *testing.T) {
	Convey("Given lines from mpv", t, func() {
		Convey("Property changes keep name and data", func() {
			e, ok := parseEvent([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":12.5}`))
			So(ok, ShouldBeTrue)
			So(e, ShouldResemble, Event{Name: EventPropertyChange, Property: "time-pos", Data: 12.5})
		})

		Convey("Lifecycle events are forwarded", func() {
			e, ok := parseEvent([]byte(`{"event":"end-file","reason":"eof"}`))
			So(ok, ShouldBeTrue)
			So(e.Name, ShouldEqual, EventEndFile)
		})

		Convey("Seek completion is forwarded", func() {
			e, ok := parseEvent([]byte(`{"event":"playback-restart"}`))
			So(ok, ShouldBeTrue)
			So(e.Name, ShouldEqual, EventPlaybackRestart)
		})

		Convey("Replies, unknown events and garbage are dropped", func() {
			for _, line := range []string{`{"error":"success","request_id":3}`, `{"event":"audio-reconfig"}`, `{not json`} {
				_, ok := parseEvent([]byte(line))
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given a listener on a fake mpv", t, func() {
		fake := newFakeMPV(t)
		rec := &eventRecorder{}
		el := NewEventListener(fake.path, rec.record)

		So(el.Start(), ShouldBeNil)
		So(eventually(func() bool { return len(fake.calls("observe_property")) == 2 }), ShouldBeTrue)
		So(el.Start(), ShouldBeNil)

		Convey("It observes position and duration", func() {
			So(fake.calls("observe_property"), ShouldResemble, [][]any{{1.0, "time-pos"}, {2.0, "duration"}})
		})

		Convey("Events are delivered in order", func() {
			fake.push(map[string]any{"event": "file-loaded"})
			fake.pushProperty("time-pos", 90.0)

			So(eventually(func() bool { return len(rec.names()) == 2 }), ShouldBeTrue)
			So(rec.names(), ShouldResemble, []string{EventFileLoaded, EventPropertyChange})
			So(rec.last().Data, ShouldEqual, 90.0)
		})

		Convey("A dropped connection ends with a synthetic shutdown", func() {
			fake.closeObservers()

			So(eventually(func() bool { return len(rec.names()) == 1 }), ShouldBeTrue)
			So(rec.names(), ShouldResemble, []string{EventShutdown})
			<-el.Done()
		})

		Convey("A real shutdown is not doubled", func() {
			fake.push(map[string]any{"event": "shutdown"})
			So(eventually(func() bool { return len(rec.names()) == 1 }), ShouldBeTrue)
			fake.closeObservers()
			<-el.Done()

			So(rec.names(), ShouldResemble, []string{EventShutdown})
		})

		Convey("Nothing is delivered after Stop", func() {
			el.Stop()
			<-el.Done()
			fake.pushProperty("time-pos", 90.0)

			So(rec.names(), ShouldBeEmpty)
			So(el.Start(), ShouldNotBeNil)
		})
	})

	Convey("Stopping a listener that never started closes Done", t, func() {
		el := NewEventListener("/nonexistent.sock", nil)
		el.Stop()
		el.Stop()
		<-el.Done()
	})
}
