package api

import (
	"github.com/downify/downify/media"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ExtractRequest asks the service to describe a URL.
type ExtractRequest struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Quality  string `json:"quality"`
}

// QueueRequest submits a download job. Nil playlist bounds mean "all".
type QueueRequest struct {
	URL           string `json:"url"`
	Platform      string `json:"platform"`
	Type          string `json:"type"`
	Quality       string `json:"quality"`
	IsPlaylist    bool   `json:"isPlaylist"`
	PlaylistStart *int   `json:"playlist_start"`
	PlaylistEnd   *int   `json:"playlist_end"`
	Title         string `json:"title,omitempty"`
}

// QueueResponse acknowledges a submission.
type QueueResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status,omitempty"`
}

// Job states reported by the status endpoint.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "error"
)

// StatusResponse is a snapshot of a job on the service side.
type StatusResponse struct {
	Status   string   `json:"status"`
	Progress *float64 `json:"progress,omitempty"`
	Speed    *float64 `json:"speed,omitempty"`
	ETA      *float64 `json:"eta,omitempty"`
	FileID   string   `json:"file_id,omitempty"`
	Files    []string `json:"files,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// FileIDs returns Files when non-empty, else the single FileID.
func (s *StatusResponse) FileIDs() []string {
	if len(s.Files) > 0 {
		return s.Files
	}
	if s.FileID != "" {
		return []string{s.FileID}
	}
	return nil
}

type entryDTO struct {
	Index     int      `json:"index"`
	ID        *string  `json:"id"`
	Title     string   `json:"title"`
	Duration  *float64 `json:"duration"`
	Thumbnail *string  `json:"thumbnail"`
}

type infoDTO struct {
	ID         *string            `json:"id"`
	Title      string             `json:"title"`
	Platform   string             `json:"platform"`
	Thumbnail  *string            `json:"thumbnail"`
	Duration   *float64           `json:"duration"`
	IsPlaylist bool               `json:"is_playlist"`
	Count      *int               `json:"count"`
	Entries    []entryDTO         `json:"entries"`
	Sizes      map[string]float64 `json:"sizes"`
	VideoURL   *string            `json:"video_url"`
}

func nonEmpty(s *string) mo.Option[string] {
	if s == nil || *s == "" {
		return mo.None[string]()
	}
	return mo.Some(*s)
}

func positive(f *float64) mo.Option[float64] {
	if f == nil || *f <= 0 {
		return mo.None[float64]()
	}
	return mo.Some(*f)
}

// toInfo converts the wire descriptor. Entries are kept only for playlists.
func (d *infoDTO) toInfo() *media.Info {
	info := &media.Info{
		ID:        lo.FromPtr(d.ID),
		Title:     d.Title,
		Platform:  d.Platform,
		Thumbnail: nonEmpty(d.Thumbnail),
		Duration:  positive(d.Duration),
		Playlist:  d.IsPlaylist,
		Count:     mo.PointerToOption(d.Count),
		VideoURL:  nonEmpty(d.VideoURL),
		Sizes: lo.MapEntries(d.Sizes, func(q string, size float64) (media.Quality, int64) {
			return media.Quality(q), int64(size)
		}),
	}

	if d.IsPlaylist {
		info.Entries = lo.Map(d.Entries, func(e entryDTO, _ int) media.Entry {
			return media.Entry{
				Index:     e.Index,
				ID:        nonEmpty(e.ID),
				Title:     e.Title,
				Duration:  positive(e.Duration),
				Thumbnail: nonEmpty(e.Thumbnail),
			}
		})
		if info.Entries == nil {
			info.Entries = []media.Entry{}
		}
	}

	return info
}
