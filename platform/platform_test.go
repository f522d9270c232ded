package platform

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDetect(t *testing.T) {
	Convey("Detect", t, func() {
		Convey("Instagram links override the selected context", func() {
			So(Detect("https://instagram.com/p/X", YouTube), ShouldEqual, Instagram)
			So(Detect("https://www.instagram.com/reel/X", Playlist), ShouldEqual, Instagram)
		})

		Convey("Playlist links resolve to playlist from the playlist context", func() {
			So(Detect("https://youtube.com/watch?v=X&list=Y", Playlist), ShouldEqual, Playlist)
			So(Detect("https://youtube.com/playlist?list=Y", Playlist), ShouldEqual, Playlist)
		})

		Convey("Playlist links stay on the selected context elsewhere", func() {
			So(Detect("https://youtube.com/watch?v=X&list=Y", YouTube), ShouldEqual, YouTube)
		})

		Convey("Plain links keep the selected context", func() {
			So(Detect("https://youtube.com/watch?v=X", YouTube), ShouldEqual, YouTube)
			So(Detect("https://youtube.com/watch?v=X", Playlist), ShouldEqual, Playlist)
			So(Detect("", Instagram), ShouldEqual, Instagram)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		m, err := Parse("Playlist")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, Playlist)
		So(m.Name(), ShouldEqual, "Playlist")

		_, err = Parse("vimeo")
		So(err, ShouldNotBeNil)
	})
}

func TestSite(t *testing.T) {
	Convey("Site", t, func() {
		So(Site("https://m.youtube.com/watch?v=x"), ShouldEqual, "youtube.com")
		So(Site("www.instagram.com/p/abc"), ShouldEqual, "instagram.com")
		So(Site("https://news.bbc.co.uk/x"), ShouldEqual, "bbc.co.uk")
		So(Site(""), ShouldEqual, "")
	})
}
