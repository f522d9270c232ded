package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestUnique(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()

		Convey("A free path is returned unchanged", func() {
			path, err := Unique("/dl/song.mp3")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/dl/song.mp3")
		})

		Convey("A taken path gets a numbered sibling", func() {
			So(API().WriteFile("/dl/song.mp3", []byte("a"), 0644), ShouldBeNil)
			So(API().WriteFile("/dl/song (1).mp3", []byte("b"), 0644), ShouldBeNil)

			path, err := Unique("/dl/song.mp3")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/dl/song (2).mp3")
		})
	})
}
