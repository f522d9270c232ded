package media

import (
	"fmt"

	"github.com/samber/lo"
)

// Quality is a resolution height for video or a bitrate in kbps for audio.
type Quality string

var (
	VideoQualities = []Quality{"480", "720", "1080", "1440", "2160", "3840"}
	AudioQualities = []Quality{"128", "320"}
)

var qualityLabels = map[Quality]string{
	"480":  "480p",
	"720":  "720p (HD)",
	"1080": "1080p (FHD)",
	"1440": "1440p (2K)",
	"2160": "2160p (4K)",
	"3840": "3840p (UHD)",
	"128":  "128 kbps",
	"320":  "320 kbps",
}

// Label is the human name of the quality.
func (q Quality) Label() string {
	if label, ok := qualityLabels[q]; ok {
		return label
	}
	return string(q)
}

func (q Quality) String() string {
	return string(q)
}

// ParseQuality validates q against the qualities offered for kind.
func ParseQuality(kind Kind, q string) (Quality, error) {
	quality := Quality(q)
	if !lo.Contains(kind.Qualities(), quality) {
		return "", fmt.Errorf("quality %q is not available for %s", q, kind)
	}
	return quality, nil
}

// Next cycles to the following quality of the kind, wrapping around.
func (q Quality) Next(kind Kind) Quality {
	qualities := kind.Qualities()
	_, i, ok := lo.FindIndexOf(qualities, func(item Quality) bool {
		return item == q
	})
	if !ok {
		return qualities[0]
	}
	return qualities[(i+1)%len(qualities)]
}

// Prev cycles to the preceding quality of the kind, wrapping around.
func (q Quality) Prev(kind Kind) Quality {
	qualities := kind.Qualities()
	_, i, ok := lo.FindIndexOf(qualities, func(item Quality) bool {
		return item == q
	})
	if !ok {
		return qualities[len(qualities)-1]
	}
	return qualities[(i-1+len(qualities))%len(qualities)]
}
