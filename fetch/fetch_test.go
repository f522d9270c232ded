package fetch

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/downify/downify/api"
	"github.com/downify/downify/api/apitest"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	. "github.com/smartystreets/goconvey/convey"
)

const quiet = 40 * time.Millisecond

// eventually polls cond until it holds or a second passes.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func playlistReply(count int) apitest.Reply {
	entries := make([]map[string]any, count)
	for i := range entries {
		entries[i] = map[string]any{"index": i + 1, "title": "entry"}
	}
	return apitest.OK(map[string]any{
		"is_playlist": true,
		"title":       "Mix",
		"count":       count,
		"entries":     entries,
	})
}

func TestDebounce(t *testing.T) {
	Convey("Given a fetcher over a fake service", t, func() {
		server := apitest.New()
		defer server.Close()
		store := session.New(platform.YouTube, session.DefaultPreferences())
		fetcher := New(store, api.New(server.URL), WithQuiet(quiet))
		defer fetcher.Close()

		Convey("A burst of edits should dispatch exactly one lookup with the final URL", func() {
			for _, url := range []string{"h", "ht", "https://youtu.be/a", "https://youtu.be/ab"} {
				store.SetURL(platform.YouTube, url)
				fetcher.Schedule(platform.YouTube, url)
				time.Sleep(quiet / 4)
			}

			So(eventually(func() bool { return store.Active().Info != nil }), ShouldBeTrue)
			time.Sleep(2 * quiet)

			extracts := server.Extracts()
			So(extracts, ShouldHaveLength, 1)
			So(extracts[0].URL, ShouldEqual, "https://youtu.be/ab")
			So(extracts[0].Platform, ShouldEqual, "youtube")
			So(extracts[0].Quality, ShouldEqual, "1080")
			So(store.Active().Fetching, ShouldBeFalse)
		})

		Convey("Re-scheduling an already dispatched URL should not look it up again", func() {
			fetcher.Schedule(platform.YouTube, "https://youtu.be/a")
			So(eventually(func() bool { return len(server.Extracts()) == 1 }), ShouldBeTrue)

			fetcher.Schedule(platform.YouTube, "https://youtu.be/a")
			time.Sleep(3 * quiet)
			So(server.Extracts(), ShouldHaveLength, 1)

			Convey("But the same URL in another context should", func() {
				fetcher.Schedule(platform.Playlist, "https://youtu.be/a")
				So(eventually(func() bool { return len(server.Extracts()) == 2 }), ShouldBeTrue)
				So(server.Extracts()[1].Platform, ShouldEqual, "playlist")
			})
		})

		Convey("Blank URLs should never be looked up", func() {
			fetcher.Schedule(platform.YouTube, "   ")
			time.Sleep(3 * quiet)
			So(server.Requests(), ShouldEqual, 0)
		})

		Convey("Cancel should drop the pending lookup", func() {
			fetcher.Schedule(platform.YouTube, "https://youtu.be/a")
			fetcher.Cancel()
			time.Sleep(3 * quiet)
			So(server.Requests(), ShouldEqual, 0)
		})
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a fetcher over a fake service", t, func() {
		server := apitest.New()
		defer server.Close()
		store := session.New(platform.Playlist, session.DefaultPreferences())
		fetcher := New(store, api.New(server.URL), WithQuiet(quiet))
		defer fetcher.Close()

		Convey("A long playlist should default to the first ten entries", func() {
			server.OnExtract(func(api.ExtractRequest) apitest.Reply { return playlistReply(25) })

			info, err := fetcher.Fetch(context.Background(), platform.Playlist, "https://youtube.com/playlist?list=x")
			So(err, ShouldBeNil)
			So(info.Playlist, ShouldBeTrue)
			So(store.Active().Range.String(), ShouldEqual, "1..10")
		})

		Convey("A short playlist should default to all entries", func() {
			server.OnExtract(func(api.ExtractRequest) apitest.Reply { return playlistReply(4) })

			_, err := fetcher.Fetch(context.Background(), platform.Playlist, "https://youtube.com/playlist?list=x")
			So(err, ShouldBeNil)
			So(store.Active().Range.String(), ShouldEqual, "1..4")
		})

		Convey("A URL already fetched should not be looked up again when scheduled", func() {
			url := "https://youtube.com/playlist?list=x"
			_, err := fetcher.Fetch(context.Background(), platform.Playlist, url)
			So(err, ShouldBeNil)

			fetcher.Schedule(platform.Playlist, url)
			time.Sleep(3 * quiet)
			So(server.Extracts(), ShouldHaveLength, 1)
		})

		Convey("A rejected URL should notify and leave no media", func() {
			server.OnExtract(func(api.ExtractRequest) apitest.Reply {
				return apitest.Fail(http.StatusBadRequest, "Unsupported URL")
			})

			_, err := fetcher.Fetch(context.Background(), platform.Playlist, "nope")
			So(errors.Is(err, api.ErrLookup), ShouldBeTrue)
			So(store.Active().Info, ShouldBeNil)
			So(store.Active().Fetching, ShouldBeFalse)

			note := store.Notification().MustGet()
			So(note.Kind, ShouldEqual, session.Error)
			So(note.Message, ShouldEqual, MessageLookupFailed)
		})

		Convey("An unreachable service should notify a connection error", func() {
			server.Close()

			_, err := fetcher.Fetch(context.Background(), platform.Playlist, "https://youtu.be/a")
			So(errors.Is(err, api.ErrTransport), ShouldBeTrue)
			So(store.Notification().MustGet().Message, ShouldEqual, MessageTransportFailed)
		})
	})
}

func TestSupersede(t *testing.T) {
	Convey("Given a slow first lookup and a fast second one", t, func() {
		server := apitest.New()
		defer server.Close()
		release := make(chan struct{})
		server.OnExtract(func(r api.ExtractRequest) apitest.Reply {
			if r.URL == "slow" {
				<-release
			}
			return apitest.OK(map[string]any{"id": r.URL, "title": r.URL})
		})

		store := session.New(platform.YouTube, session.DefaultPreferences())
		fetcher := New(store, api.New(server.URL))
		defer fetcher.Close()

		done := make(chan error, 1)
		go func() {
			_, err := fetcher.Fetch(context.Background(), platform.YouTube, "slow")
			done <- err
		}()
		So(eventually(func() bool { return len(server.Extracts()) == 1 }), ShouldBeTrue)

		info, err := fetcher.Fetch(context.Background(), platform.YouTube, "fast")
		So(err, ShouldBeNil)
		So(info.ID, ShouldEqual, "fast")
		close(release)

		Convey("The stale result should be dropped silently", func() {
			So(<-done, ShouldNotBeNil)
			So(store.Active().Info.ID, ShouldEqual, "fast")
			So(store.Notification().IsPresent(), ShouldBeFalse)
		})
	})
}
