package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/downify/downify/api"
	"github.com/downify/downify/api/apitest"
	"github.com/downify/downify/filesystem"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseRange(t *testing.T) {
	Convey("ParseRange", t, func() {
		Convey("Should accept the documented forms", func() {
			So(lo.Must(ParseRange("all")).IsEmpty(), ShouldBeTrue)
			So(lo.Must(ParseRange("5")).String(), ShouldEqual, "5..5")
			So(lo.Must(ParseRange("8-2")).String(), ShouldEqual, "2..8")
			So(lo.Must(ParseRange("3-")).String(), ShouldEqual, "3..-")
			So(lo.Must(ParseRange("-4")).String(), ShouldEqual, "-..4")
		})

		Convey("Should reject malformed input", func() {
			for _, bad := range []string{"x", "0", "-", "1-y"} {
				_, err := ParseRange(bad)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestFilterEntries(t *testing.T) {
	Convey("FilterEntries", t, func() {
		entries := []media.Entry{
			{Index: 1, Title: "Intro"},
			{Index: 2, Title: "Live at Wembley"},
			{Index: 3, Title: "Outro"},
		}

		So(FilterEntries(entries, ""), ShouldHaveLength, 3)

		filtered := FilterEntries(entries, "wmbly")
		So(filtered, ShouldHaveLength, 1)
		So(filtered[0].Index, ShouldEqual, 2)
	})
}

func playlistServer() *apitest.Server {
	server := apitest.New()
	server.OnExtract(func(api.ExtractRequest) apitest.Reply {
		return apitest.OK(map[string]any{
			"is_playlist": true,
			"title":       "Mix",
			"count":       3,
			"entries": []map[string]any{
				{"index": 1, "title": "one", "duration": 61},
				{"index": 2, "title": "two"},
				{"index": 3, "title": "three"},
			},
		})
	})
	server.OnStatus(apitest.Sequence(
		api.StatusResponse{Status: api.StatusProcessing, Progress: lo.ToPtr(50.0)},
		api.StatusResponse{Status: api.StatusCompleted, Files: []string{"one.mp4", "two.mp4"}},
	))
	server.AddFile("one.mp4", []byte("1"))
	server.AddFile("two.mp4", []byte("2"))
	return server
}

func TestRun(t *testing.T) {
	Convey("Given a fake service with a playlist", t, func() {
		filesystem.SetMemMapFs()
		server := playlistServer()
		defer server.Close()

		var buf bytes.Buffer
		options := &Options{
			Out:             &buf,
			Service:         api.New(server.URL),
			Context:         platform.Playlist,
			URL:             "https://youtube.com/playlist?list=x",
			Preferences:     session.DefaultPreferences(),
			Json:            true,
			Dir:             "/downloads",
			PollInterval:    5 * time.Millisecond,
			Stagger:         5 * time.Millisecond,
			MaxPollFailures: 10,
		}

		Convey("Extraction alone should describe the playlist", func() {
			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Media.Title, ShouldEqual, "Mix")
			So(output.Media.Entries, ShouldHaveLength, 3)
			So(output.Range, ShouldEqual, "1..3")
			So(output.Job, ShouldBeNil)
			So(server.Queues(), ShouldBeEmpty)
		})

		Convey("Downloading should save every file and report them in order", func() {
			options.Download = true
			options.Range = mo.Some(lo.Must(ParseRange("2-3")))

			var statuses []session.JobStatus
			options.Progress = func(s task.Snapshot) {
				statuses = append(statuses, s.Status)
			}

			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Job.Status, ShouldEqual, "completed")
			So(output.Job.Files, ShouldHaveLength, 2)
			So(output.Job.Files[0].Path, ShouldEqual, "/downloads/one.mp4")
			So(output.Job.Files[1].ID, ShouldEqual, "two.mp4")
			So(statuses[len(statuses)-1], ShouldEqual, session.Completed)

			queued := server.Queues()[0]
			So(queued.IsPlaylist, ShouldBeTrue)
			So(*queued.PlaylistStart, ShouldEqual, 2)
			So(*queued.PlaylistEnd, ShouldEqual, 3)

			So(string(lo.Must(filesystem.API().ReadFile("/downloads/two.mp4"))), ShouldEqual, "2")
		})

		Convey("A failing job should still print the job and return its error", func() {
			server.OnStatus(apitest.Sequence(api.StatusResponse{Status: api.StatusFailed, Error: "Private video"}))
			options.Download = true

			err := Run(context.Background(), options)
			var jobErr *task.JobError
			So(errors.As(err, &jobErr), ShouldBeTrue)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Job.Error, ShouldEqual, "Private video")
			So(output.Job.Files, ShouldBeEmpty)
		})

		Convey("A rejected URL should fail before any output", func() {
			server.OnExtract(func(api.ExtractRequest) apitest.Reply {
				return apitest.Fail(http.StatusBadRequest, "Unsupported URL")
			})

			err := Run(context.Background(), options)
			So(errors.Is(err, api.ErrLookup), ShouldBeTrue)
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("Plain output should list entries", func() {
			options.Json = false
			So(Run(context.Background(), options), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "Mix")
			So(buf.String(), ShouldContainSubstring, "   1. one (1:01)")
		})
	})
}
