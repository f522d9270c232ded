package inline

import (
	"encoding/json"
	"io"

	"github.com/downify/downify/media"
	"github.com/downify/downify/task"
	"github.com/samber/lo"
)

type Entry struct {
	Index    int     `json:"index"`
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration,omitempty"`
}

type Media struct {
	ID        string           `json:"id,omitempty"`
	Title     string           `json:"title"`
	Platform  string           `json:"platform"`
	Thumbnail string           `json:"thumbnail,omitempty"`
	Duration  float64          `json:"duration,omitempty"`
	Playlist  bool             `json:"is_playlist"`
	Entries   []Entry          `json:"entries,omitempty"`
	Sizes     map[string]int64 `json:"sizes,omitempty"`
	VideoURL  string           `json:"video_url,omitempty"`
}

type File struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Path string `json:"path,omitempty"`
}

type Job struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Files  []File `json:"files"`
	Error  string `json:"error,omitempty"`
}

type Output struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Range    string `json:"range,omitempty"`
	Media    *Media `json:"media"`
	Job      *Job   `json:"job,omitempty"`
}

func asMedia(info *media.Info, entries []media.Entry) *Media {
	if info == nil {
		return nil
	}

	m := &Media{
		ID:        info.ID,
		Title:     info.Title,
		Platform:  info.Platform,
		Thumbnail: info.Thumbnail.OrEmpty(),
		Duration:  info.Duration.OrEmpty(),
		Playlist:  info.Playlist,
		VideoURL:  info.VideoURL.OrEmpty(),
		Sizes: lo.MapEntries(info.Sizes, func(q media.Quality, size int64) (string, int64) {
			return q.String(), size
		}),
		Entries: lo.Map(entries, func(e media.Entry, _ int) Entry {
			return Entry{
				Index:    e.Index,
				ID:       e.ID.OrEmpty(),
				Title:    e.Title,
				Duration: e.Duration.OrEmpty(),
			}
		}),
	}

	return m
}

func asJob(snapshot task.Snapshot, files []File) *Job {
	job := &Job{
		TaskID: snapshot.TaskID,
		Status: snapshot.Status.String(),
		Files:  files,
	}
	if snapshot.Err != nil {
		job.Error = snapshot.Err.Error()
	}
	if job.Files == nil {
		job.Files = []File{}
	}
	return job
}

func writeJson(out io.Writer, output *Output) error {
	return json.NewEncoder(out).Encode(output)
}
