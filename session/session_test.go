package session

import (
	"testing"
	"time"

	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/selection"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIsolation(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		s := New(platform.YouTube, DefaultPreferences())

		Convey("Every context should exist and be empty", func() {
			So(s.Contexts(), ShouldHaveLength, len(platform.Modes))
			for _, c := range s.Contexts() {
				So(c.URL, ShouldBeEmpty)
				So(c.Info, ShouldBeNil)
				So(c.Range.IsEmpty(), ShouldBeTrue)
			}
		})

		Convey("Writes to one context should never leak into another", func() {
			for _, a := range platform.Modes {
				info := &media.Info{ID: string(a), Title: string(a), Playlist: true}
				s.SetURL(a, "https://example.com/"+string(a))
				s.SetMediaInfo(a, info)
				s.SetRange(a, selection.New(2, 4))

				for _, b := range platform.Modes {
					if b == a {
						continue
					}
					other := s.Get(b)
					So(other.URL, ShouldNotEqual, "https://example.com/"+string(a))
					So(other.Info, ShouldNotEqual, info)
				}
			}
		})

		Convey("Select should not mutate stored fields", func() {
			s.SetURL(platform.YouTube, "https://youtu.be/x")
			before := s.Get(platform.YouTube)

			s.Select(platform.Instagram)
			So(s.ActiveID(), ShouldEqual, platform.Instagram)
			So(s.Active().URL, ShouldBeEmpty)
			So(s.Get(platform.YouTube), ShouldResemble, before)
		})

		Convey("Unknown ids should be ignored", func() {
			s.SetURL("vimeo", "x")
			s.Select("vimeo")
			So(s.ActiveID(), ShouldEqual, platform.YouTube)
			So(s.Get("vimeo").URL, ShouldBeEmpty)
		})
	})
}

func TestMediaInfo(t *testing.T) {
	Convey("Given a context with a playlist and a range", t, func() {
		s := New(platform.Playlist, DefaultPreferences())
		info := &media.Info{ID: "pl", Title: "Mix", Playlist: true}
		s.SetMediaInfo(platform.Playlist, info)
		s.SetRange(platform.Playlist, selection.New(1, 3))

		Convey("Storing the same media should keep the range", func() {
			s.SetMediaInfo(platform.Playlist, &media.Info{ID: "pl", Title: "Mix", Playlist: true})
			So(s.Active().Range.String(), ShouldEqual, "1..3")
		})

		Convey("Storing different media should reset the range", func() {
			s.SetMediaInfo(platform.Playlist, &media.Info{ID: "other", Title: "Other", Playlist: true})
			So(s.Active().Range.IsEmpty(), ShouldBeTrue)
		})

		Convey("Media without an id should only match the same descriptor", func() {
			untitled := &media.Info{Title: "Mix", Playlist: true}
			s.SetMediaInfo(platform.Playlist, untitled)
			s.SetRange(platform.Playlist, selection.New(1, 3))

			s.SetMediaInfo(platform.Playlist, untitled)
			So(s.Active().Range.String(), ShouldEqual, "1..3")

			s.SetMediaInfo(platform.Playlist, &media.Info{Title: "Mix", Playlist: true})
			So(s.Active().Range.IsEmpty(), ShouldBeTrue)
		})

		Convey("Click should follow the two-click picker", func() {
			s.SetMediaInfo(platform.Playlist, nil)
			s.Click(platform.Playlist, 5)
			r := s.Click(platform.Playlist, 2)
			So(r.String(), ShouldEqual, "2..5")
			So(s.Active().Range.String(), ShouldEqual, "2..5")
		})
	})
}

func TestGenerations(t *testing.T) {
	Convey("Given a context with media", t, func() {
		s := New(platform.YouTube, DefaultPreferences())
		s.SetMediaInfo(platform.YouTube, &media.Info{ID: "old"})

		Convey("Begin should clear the media and raise the fetching flag", func() {
			gen := s.Begin(platform.YouTube)
			c := s.Active()
			So(c.Info, ShouldBeNil)
			So(c.Fetching, ShouldBeTrue)
			So(c.Generation(), ShouldEqual, gen)

			Convey("A stale completion should be dropped", func() {
				newer := s.Begin(platform.YouTube)
				So(s.Apply(platform.YouTube, gen, &media.Info{ID: "stale"}, selection.Empty()), ShouldBeFalse)
				So(s.Active().Info, ShouldBeNil)
				So(s.Abort(platform.YouTube, gen), ShouldBeFalse)
				So(s.Active().Fetching, ShouldBeTrue)

				So(s.Apply(platform.YouTube, newer, &media.Info{ID: "fresh"}, selection.Empty()), ShouldBeTrue)
				So(s.Active().Info.ID, ShouldEqual, "fresh")
				So(s.Active().Fetching, ShouldBeFalse)
			})

			Convey("Abort should lower the flag and leave media empty", func() {
				So(s.Abort(platform.YouTube, gen), ShouldBeTrue)
				So(s.Active().Fetching, ShouldBeFalse)
				So(s.Active().Info, ShouldBeNil)
			})
		})
	})
}

func TestReports(t *testing.T) {
	Convey("Given a context with a finished job", t, func() {
		s := New(platform.YouTube, DefaultPreferences())
		s.SetReport(platform.YouTube, Report{Status: Completed, SaveURL: "http://x/api/file/a"})

		Convey("Editing the url should clear it", func() {
			s.SetURL(platform.YouTube, "https://youtu.be/other")
			So(s.Active().Report.Status, ShouldEqual, Idle)
		})

		Convey("Changing kind should clear it", func() {
			s.SetKind(media.Audio)
			So(s.Active().Report.Status, ShouldEqual, Idle)
			So(s.Preferences().Quality(), ShouldEqual, media.Quality("128"))
		})

		Convey("Changing quality should clear it", func() {
			s.SetQuality("720")
			So(s.Active().Report.Status, ShouldEqual, Idle)
			So(s.Preferences().VideoQuality, ShouldEqual, media.Quality("720"))
		})

		Convey("Reports of other contexts should survive", func() {
			s.SetReport(platform.Instagram, Report{Status: Failed, Error: "boom"})
			s.SetQuality("720")
			So(s.Get(platform.Instagram).Report.Status, ShouldEqual, Failed)
		})
	})

	Convey("A running job should survive edits", t, func() {
		s := New(platform.YouTube, DefaultPreferences())
		s.SetReport(platform.YouTube, Report{Status: Processing, Progress: 40})
		s.SetURL(platform.YouTube, "https://youtu.be/other")
		s.SetKind(media.Audio)
		So(s.Active().Report.Status, ShouldEqual, Processing)
		So(s.Active().Report.Busy(), ShouldBeTrue)
	})

	Convey("Terminal statuses", t, func() {
		So(Completed.Terminal(), ShouldBeTrue)
		So(Failed.Terminal(), ShouldBeTrue)
		So(Processing.Terminal(), ShouldBeFalse)
		So(Queued.String(), ShouldEqual, "queued")
	})
}

func TestNotifications(t *testing.T) {
	Convey("Given a store with a short notification lifetime", t, func() {
		s := New(platform.YouTube, DefaultPreferences(), WithNotificationLifetime(30*time.Millisecond))

		Convey("Success notifications should clear themselves", func() {
			s.Notify(Success, "Download Complete!")
			So(s.Notification().MustGet().Message, ShouldEqual, "Download Complete!")

			time.Sleep(100 * time.Millisecond)
			So(s.Notification().IsPresent(), ShouldBeFalse)
		})

		Convey("Error notifications should stay", func() {
			s.Notify(Error, "Connection Error")
			time.Sleep(60 * time.Millisecond)
			So(s.Notification().MustGet().Kind, ShouldEqual, Error)
		})

		Convey("A newer notification should not be cleared by an older timer", func() {
			s.Notify(Success, "first")
			s.Notify(Error, "second")
			time.Sleep(60 * time.Millisecond)
			So(s.Notification().MustGet().Message, ShouldEqual, "second")
		})

		Convey("Switching tabs should dismiss the notification", func() {
			s.Notify(Error, "Could not fetch details. Check URL.")
			s.Select(platform.Playlist)
			So(s.Notification().IsPresent(), ShouldBeFalse)
		})

		Convey("Changes should be signalled", func() {
			for len(s.Changes()) > 0 {
				<-s.Changes()
			}
			s.SetURL(platform.YouTube, "x")
			So(len(s.Changes()), ShouldEqual, 1)
		})
	})
}
