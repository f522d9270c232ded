// Package platform decides which source mode a URL belongs to.
package platform

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Mode identifies a platform context.
type Mode string

const (
	YouTube   Mode = "youtube"
	Playlist  Mode = "playlist"
	Instagram Mode = "instagram"
)

// Modes lists every context in tab order.
var Modes = []Mode{YouTube, Playlist, Instagram}

var names = map[Mode]string{
	YouTube:   "YouTube",
	Playlist:  "Playlist",
	Instagram: "Instagram",
}

// Name is the display name of the mode.
func (m Mode) Name() string {
	if name, ok := names[m]; ok {
		return name
	}
	return string(m)
}

func (m Mode) String() string {
	return string(m)
}

// Parse validates s as one of the known modes.
func Parse(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := names[m]; !ok {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return m, nil
}

// Detect resolves the effective mode of rawURL given the user's selected context.
// Instagram links always win. Playlist links are only honoured from the playlist context.
func Detect(rawURL string, selected Mode) Mode {
	if strings.Contains(rawURL, "instagram.com") {
		return Instagram
	}

	if selected == Playlist && (strings.Contains(rawURL, "list=") || strings.Contains(rawURL, "playlist")) {
		return Playlist
	}

	return selected
}

// Site returns the registrable domain of rawURL, e.g. "youtube.com" for
// "https://m.youtube.com/watch?v=x". It returns an empty string when rawURL has no host.
func Site(rawURL string) string {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := u.Hostname()
	if host == "" {
		return ""
	}

	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
