package media

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count in binary units. Zero renders empty.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatSpeed renders a transfer rate, or "--" when unknown.
func FormatSpeed(bytesPerSec float64) string {
	if bytesPerSec <= 0 {
		return "--"
	}
	return humanize.IBytes(uint64(bytesPerSec)) + "/s"
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "00:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatETA renders remaining seconds, or "--" when unknown.
func FormatETA(seconds float64) string {
	if seconds <= 0 {
		return "--"
	}
	return fmt.Sprintf("%ds", int(seconds))
}
