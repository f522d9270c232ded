package util

import (
	"testing"

	"github.com/downify/downify/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.mp4"), ShouldEqual, "file_name_.mp4")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("a/b\\c.mp3"), ShouldEqual, "a_b_c.mp3")
		})
		Convey("Should keep extensions and trim leading separators", func() {
			So(SanitizeFilename("../song.mp3"), ShouldEqual, "song.mp3")
			So(SanitizeFilename("..."), ShouldBeEmpty)
			So(SanitizeFilename(" -clip.webm"), ShouldEqual, "clip.webm")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMinClamp(t *testing.T) {
	Convey("Max/Min/Clamp", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Clamp(2.5, 5, 100), ShouldEqual, 5)
		So(Clamp(140, 0, 100), ShouldEqual, 100)
		So(Clamp(42, 0, 100), ShouldEqual, 42)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		lo.Must0(filesystem.API().MkdirAll("/tmp/d/sub", 0755))
		lo.Must0(filesystem.API().WriteFile("/tmp/d/sub/f", []byte("x"), 0644))

		So(Delete("/tmp/d"), ShouldBeNil)
		So(lo.Must(filesystem.API().Exists("/tmp/d/sub/f")), ShouldBeFalse)
		So(Delete("/tmp/missing"), ShouldNotBeNil)
	})
}
