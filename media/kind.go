package media

import (
	"fmt"
	"strings"
)

// Kind selects whether the service produces a video or an audio file.
type Kind string

const (
	Video Kind = "video"
	Audio Kind = "audio"
)

// ParseKind accepts "video" or "audio", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Video:
		return Video, nil
	case Audio:
		return Audio, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// Toggle returns the other kind.
func (k Kind) Toggle() Kind {
	if k == Audio {
		return Video
	}
	return Audio
}

// Qualities returns the selectable qualities for the kind.
func (k Kind) Qualities() []Quality {
	if k == Audio {
		return AudioQualities
	}
	return VideoQualities
}

func (k Kind) String() string {
	return string(k)
}
