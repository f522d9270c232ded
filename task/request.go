package task

import (
	"strings"

	"github.com/downify/downify/api"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/selection"
	"github.com/downify/downify/session"
)

// Submission is everything needed to queue a job from a context.
type Submission struct {
	Context     platform.Mode
	URL         string
	Info        *media.Info
	Range       selection.Range
	Preferences session.Preferences
}

// FromContext captures the current state of c for submission.
func FromContext(c session.Context, prefs session.Preferences) Submission {
	return Submission{
		Context:     c.ID,
		URL:         c.URL,
		Info:        c.Info,
		Range:       c.Range,
		Preferences: prefs,
	}
}

// Playlist reports whether the range applies to the submission.
func (s Submission) Playlist() bool {
	mode := platform.Detect(s.URL, s.Context)
	return mode == platform.Playlist || s.Info != nil && s.Info.Playlist
}

// BuildRequest validates s and converts it to a queue request.
// Range bounds are sent only for playlists; a missing bound is sent as null.
func BuildRequest(s Submission) (api.QueueRequest, error) {
	url := strings.TrimSpace(s.URL)
	if url == "" {
		return api.QueueRequest{}, ErrValidation
	}

	request := api.QueueRequest{
		URL:      url,
		Platform: platform.Detect(url, s.Context).String(),
		Type:     s.Preferences.Kind.String(),
		Quality:  s.Preferences.Quality().String(),
	}

	if s.Info != nil {
		request.Title = s.Info.Title
	}

	if s.Playlist() {
		request.IsPlaylist = true
		request.PlaylistStart = s.Range.Start.ToPointer()
		request.PlaylistEnd = s.Range.End.ToPointer()
	}

	return request, nil
}
