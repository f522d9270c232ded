package api_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/downify/downify/api"
	"github.com/downify/downify/api/apitest"
	"github.com/downify/downify/filesystem"
	"github.com/google/uuid"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given a fake service", t, func() {
		server := apitest.New()
		defer server.Close()
		client := api.New(server.URL+"/", api.WithToken("secret"))

		Convey("Extract should decode a single video", func() {
			info, err := client.Extract(context.Background(), api.ExtractRequest{URL: "https://youtu.be/x", Platform: "youtube", Type: "video", Quality: "1080"})
			So(err, ShouldBeNil)
			So(info.Title, ShouldEqual, "Video for https://youtu.be/x")
			So(info.Playlist, ShouldBeFalse)
			So(info.Entries, ShouldBeNil)
			So(info.Duration.MustGet(), ShouldEqual, 63.0)
			So(info.Size("1080").MustGet(), ShouldEqual, 1<<20)

			So(server.Extracts(), ShouldHaveLength, 1)
			So(server.Extracts()[0].Quality, ShouldEqual, "1080")

			Convey("And send the identifying headers", func() {
				header := server.LastHeader()
				So(header.Get("Authorization"), ShouldEqual, "Bearer secret")
				So(header.Get("User-Agent"), ShouldStartWith, "downify/")
				_, err := uuid.Parse(header.Get("X-Request-ID"))
				So(err, ShouldBeNil)
			})
		})

		Convey("Extract should decode playlist entries", func() {
			server.OnExtract(func(api.ExtractRequest) apitest.Reply {
				return apitest.OK(map[string]any{
					"is_playlist": true,
					"title":       "Mix",
					"count":       2,
					"platform":    "YoutubeTab",
					"entries": []map[string]any{
						{"index": 1, "id": "a", "title": "first", "duration": 10},
						{"index": 2, "id": "b", "title": "second", "duration": nil},
					},
				})
			})

			info, err := client.Extract(context.Background(), api.ExtractRequest{URL: "https://youtube.com/playlist?list=x"})
			So(err, ShouldBeNil)
			So(info.Playlist, ShouldBeTrue)
			So(info.Len(), ShouldEqual, 2)
			So(info.Entries[1].Duration.IsPresent(), ShouldBeFalse)
			So(info.Entries[0].ID.MustGet(), ShouldEqual, "a")
		})

		Convey("Extract should map non-200 answers to a lookup error", func() {
			server.OnExtract(func(api.ExtractRequest) apitest.Reply {
				return apitest.Fail(http.StatusBadRequest, "Unsupported URL")
			})

			_, err := client.Extract(context.Background(), api.ExtractRequest{URL: "nope"})
			So(errors.Is(err, api.ErrLookup), ShouldBeTrue)
			So(errors.Is(err, api.ErrTransport), ShouldBeFalse)

			var statusErr *api.StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(statusErr.Detail, ShouldEqual, "Unsupported URL")
		})
	})

	Convey("An unreachable service should yield a transport error", t, func() {
		server := apitest.New()
		server.Close()

		_, err := api.New(server.URL).Extract(context.Background(), api.ExtractRequest{URL: "x"})
		So(errors.Is(err, api.ErrTransport), ShouldBeTrue)
		So(errors.Is(err, api.ErrLookup), ShouldBeFalse)
	})
}

func TestQueueAndStatus(t *testing.T) {
	Convey("Given a fake service", t, func() {
		server := apitest.New()
		defer server.Close()
		client := api.New(server.URL)

		Convey("Queue should send null bounds for an open range", func() {
			start := 3
			response, err := client.Queue(context.Background(), api.QueueRequest{URL: "u", IsPlaylist: true, PlaylistStart: &start})
			So(err, ShouldBeNil)
			So(response.TaskID, ShouldEqual, "task-1")

			sent := server.Queues()[0]
			So(*sent.PlaylistStart, ShouldEqual, 3)
			So(sent.PlaylistEnd, ShouldBeNil)
		})

		Convey("Queue should reject an answer without a task id", func() {
			server.OnQueue(func(api.QueueRequest) apitest.Reply {
				return apitest.OK(map[string]string{"status": "queued"})
			})
			_, err := client.Queue(context.Background(), api.QueueRequest{URL: "u"})
			So(err, ShouldNotBeNil)
		})

		Convey("Status should report file ids", func() {
			server.OnStatus(apitest.Sequence(api.StatusResponse{Status: api.StatusCompleted, FileID: "a", Files: []string{"a", "b"}}))
			status, err := client.Status(context.Background(), "task-1")
			So(err, ShouldBeNil)
			So(status.FileIDs(), ShouldResemble, []string{"a", "b"})
		})

		Convey("Status of an unregistered task should be a 404 lookup error", func() {
			server.OnStatus(func(string, int) apitest.Reply {
				return apitest.Fail(http.StatusNotFound, "Task not found")
			})
			_, err := client.Status(context.Background(), "task-1")
			So(errors.Is(err, api.ErrLookup), ShouldBeTrue)
		})

		Convey("Health should accept an ok status", func() {
			So(client.Health(context.Background()), ShouldBeNil)
		})
	})

	Convey("FileIDs should fall back to the single file id", t, func() {
		So((&api.StatusResponse{FileID: "a"}).FileIDs(), ShouldResemble, []string{"a"})
		So((&api.StatusResponse{}).FileIDs(), ShouldBeNil)
	})
}

func TestDownload(t *testing.T) {
	Convey("Given a fake service with a file", t, func() {
		filesystem.SetMemMapFs()
		server := apitest.New()
		defer server.Close()
		server.AddFile("clip.mp4", []byte("payload"))
		client := api.New(server.URL)

		Convey("Download should write the payload without overwriting", func() {
			dir := filepath.Join("/", "downloads")
			first, err := client.Download(context.Background(), "clip.mp4", dir)
			So(err, ShouldBeNil)
			So(first, ShouldEqual, filepath.Join(dir, "clip.mp4"))
			So(string(lo.Must(filesystem.API().ReadFile(first))), ShouldEqual, "payload")

			second, err := client.Download(context.Background(), "clip.mp4", dir)
			So(err, ShouldBeNil)
			So(second, ShouldEqual, filepath.Join(dir, "clip (1).mp4"))
		})

		Convey("Download should strip leading dots from the served name", func() {
			server.AddFile("..hidden.mp3", []byte("payload"))
			path, err := client.Download(context.Background(), "..hidden.mp3", "/downloads")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, filepath.Join("/downloads", "hidden.mp3"))
		})

		Convey("Download of a missing file should be a lookup error", func() {
			_, err := client.Download(context.Background(), "missing", "/downloads")
			So(errors.Is(err, api.ErrLookup), ShouldBeTrue)
		})

		Convey("FileURL should escape the id", func() {
			So(client.FileURL("a b.mp4"), ShouldEqual, server.URL+"/api/file/a%20b.mp4")
		})
	})
}
