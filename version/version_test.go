package version

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoskip-cli/autoskip/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Given version pairs", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"1.0.2", "1.0.2", 0},
			{"v1.1.0", "1.0.9", 1},
			{"1.0.2", "2.0.0", -1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		_, err := Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			fmt.Fprint(w, `{"tag_name":"v1.2.0"}`)
		}))
		defer server.Close()

		previous := ReleasesURL
		ReleasesURL = server.URL
		defer func() { ReleasesURL = previous }()

		Convey("The tag is returned without its prefix and cached", func() {
			ver, err := Latest()
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.2.0")

			ver, err = Latest()
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.2.0")
			So(calls, ShouldBeLessThanOrEqualTo, 1)
		})
	})
}
