package media

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInfo(t *testing.T) {
	Convey("Given a playlist descriptor", t, func() {
		info := Info{
			Title:    "Mix",
			Playlist: true,
			Entries: []Entry{
				{Index: 1, Title: "one", Duration: mo.Some(61.0)},
				{Index: 2, Title: "two"},
				{Index: 3, Title: "three", Duration: mo.Some(59.0)},
			},
		}

		Convey("Len should fall back to the entry count", func() {
			So(info.Len(), ShouldEqual, 3)
			info.Count = mo.Some(40)
			So(info.Len(), ShouldEqual, 40)
		})

		Convey("TotalDuration should skip unknown durations", func() {
			So(info.TotalDuration(), ShouldEqual, 120.0)
		})

		Convey("Entry should look up by index", func() {
			e, ok := info.Entry(2)
			So(ok, ShouldBeTrue)
			So(e.Title, ShouldEqual, "two")

			_, ok = info.Entry(9)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Size should ignore zero estimates", t, func() {
		info := Info{Sizes: map[Quality]int64{"1080": 1024, "720": 0}}
		So(info.Size("1080").MustGet(), ShouldEqual, 1024)
		So(info.Size("720").IsPresent(), ShouldBeFalse)
		So(info.Size("480").IsPresent(), ShouldBeFalse)
	})
}

func TestKind(t *testing.T) {
	Convey("ParseKind", t, func() {
		k, err := ParseKind(" Audio ")
		So(err, ShouldBeNil)
		So(k, ShouldEqual, Audio)

		_, err = ParseKind("image")
		So(err, ShouldNotBeNil)
	})

	Convey("Toggle should flip the kind", t, func() {
		So(Video.Toggle(), ShouldEqual, Audio)
		So(Audio.Toggle(), ShouldEqual, Video)
	})
}

func TestQuality(t *testing.T) {
	Convey("ParseQuality should respect the kind", t, func() {
		q, err := ParseQuality(Video, "2160")
		So(err, ShouldBeNil)
		So(q.Label(), ShouldEqual, "2160p (4K)")

		_, err = ParseQuality(Audio, "1080")
		So(err, ShouldNotBeNil)
	})

	Convey("Next and Prev should wrap around", t, func() {
		So(Quality("3840").Next(Video), ShouldEqual, Quality("480"))
		So(Quality("480").Prev(Video), ShouldEqual, Quality("3840"))
		So(Quality("128").Next(Audio), ShouldEqual, Quality("320"))
		So(Quality("1080").Next(Audio), ShouldEqual, Quality("128"))
	})
}

func TestFormat(t *testing.T) {
	Convey("FormatSize", t, func() {
		So(FormatSize(0), ShouldEqual, "")
		So(FormatSize(1536), ShouldEqual, "1.5 KiB")
	})

	Convey("FormatDuration", t, func() {
		So(FormatDuration(0), ShouldEqual, "00:00")
		So(FormatDuration(125.7), ShouldEqual, "2:05")
	})

	Convey("FormatSpeed and FormatETA", t, func() {
		So(FormatSpeed(0), ShouldEqual, "--")
		So(FormatSpeed(2048), ShouldEqual, "2.0 KiB/s")
		So(FormatETA(0), ShouldEqual, "--")
		So(FormatETA(12.4), ShouldEqual, "12s")
	})
}
