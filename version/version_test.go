package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/downify/downify/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Compare should order semantic versions", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"0.3.1", "0.3.1", 0},
			{"v0.4.0", "0.3.9", 1},
			{"0.3.1", "1.0.0", -1},
			{"1.10.0", "1.9.9", 1},
			{"1.0.0-rc1", "1.0.0", 0},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}
	})

	Convey("Compare should reject malformed versions", t, func() {
		_, err := Compare("latest", "0.3.1")
		So(err, ShouldNotBeNil)

		_, err = Compare("0.3", "0.3.1")
		So(err, ShouldNotBeNil)
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a fake release registry", t, func() {
		var tag string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"` + tag + `"}`))
		}))
		defer server.Close()

		previous := latestURL
		latestURL = server.URL
		defer func() { latestURL = previous }()

		Convey("The tag prefix should be stripped", func() {
			tag = "v1.2.3"
			version, err := fetchLatest(context.Background())
			So(err, ShouldBeNil)
			So(version, ShouldEqual, "1.2.3")
		})

		Convey("An empty tag should fail", func() {
			tag = ""
			_, err := fetchLatest(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
