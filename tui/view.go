// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/downify/downify/color"
	"github.com/downify/downify/icon"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/downify/downify/style"
	"github.com/downify/downify/task"
	"github.com/downify/downify/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

var tabColors = map[platform.Mode]lipgloss.Color{
	platform.YouTube:   color.YouTube,
	platform.Playlist:  color.Playlist,
	platform.Instagram: color.Instagram,
}

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case inputState, browseState:
		output = b.viewMain()
	case playlistState:
		output = b.viewPlaylist()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewTabs() string {
	active := b.store.ActiveID()
	return strings.Join(lo.Map(platform.Modes, func(m platform.Mode, _ int) string {
		if m == active {
			return style.Tag(style.Text, tabColors[m])(m.Name())
		}
		return style.Faint(" " + m.Name() + " ")
	}), " ")
}

func (b *statefulBubble) viewMain() string {
	active := b.store.Active()
	prefs := b.store.Preferences()

	lines := []string{
		b.viewTabs(),
		"",
		b.inputC.View(),
		"",
	}

	lines = append(lines, b.viewMedia(active)...)
	lines = append(lines, "", b.viewPreferences(active, prefs))

	if report := b.viewReport(active.Report); len(report) > 0 {
		lines = append(lines, "")
		lines = append(lines, report...)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewMedia(c session.Context) []string {
	if c.Fetching {
		return []string{b.spinnerC.View() + " Fetching details..."}
	}

	info := c.Info
	if info == nil {
		return []string{style.Faint("No media loaded")}
	}

	kind := icon.Video
	if info.Playlist {
		kind = icon.Playlist
	}

	var details []string
	if site := platform.Site(c.URL); site != "" {
		details = append(details, site)
	}
	if d := info.TotalDuration(); d > 0 {
		details = append(details, media.FormatDuration(d))
	}
	if info.Playlist {
		details = append(details, util.Quantify(info.Len(), "entry", "entries"))
	}

	lines := []string{
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(kind), style.Fg(color.Purple)(info.Title))),
		style.Faint(strings.Join(details, " • ")),
	}

	if info.Playlist {
		lines = append(lines, fmt.Sprintf("Range: %s %s", style.Fg(color.Cyan)(c.Range.String()), style.Faint("(p to pick)")))
	}

	return lines
}

func (b *statefulBubble) viewPreferences(c session.Context, prefs session.Preferences) string {
	kindIcon := icon.Video
	if prefs.Kind == media.Audio {
		kindIcon = icon.Audio
	}

	current := prefs.Quality().Label()
	choices := lo.Map(qualityChoices(c.Info, prefs), func(choice string, _ int) string {
		if strings.HasPrefix(choice, current) {
			return style.Fg(color.Orange)(style.Bold(choice))
		}
		return style.Faint(choice)
	})

	return wrap.String(
		fmt.Sprintf("%s %s  %s", icon.Get(kindIcon), style.Bold(util.Capitalize(prefs.Kind.String())), strings.Join(choices, "  ")),
		wrapWidth(b.width),
	)
}

func (b *statefulBubble) viewReport(r session.Report) []string {
	switch r.Status {
	case session.Queued:
		return []string{b.spinnerC.View() + " Queued"}
	case session.Processing:
		progress := task.DisplayProgress(r, b.options.ProgressFloor)
		stats := fmt.Sprintf("%s • ETA %s",
			media.FormatSpeed(r.Speed.OrElse(0)),
			media.FormatETA(r.ETA.OrElse(0)),
		)
		return []string{
			b.progressC.ViewAs(progress / 100),
			style.Faint(stats),
		}
	case session.Completed:
		return []string{
			b.progressC.ViewAs(1),
			fmt.Sprintf("%s %s %s", icon.Get(icon.Save), style.Fg(color.Green)("Ready"), style.Faint("(s to save)")),
		}
	case session.Failed:
		return []string{
			wrap.String(style.Fg(color.Red)(icon.Get(icon.Fail)+" "+r.Error), wrapWidth(b.width)),
		}
	default:
		return nil
	}
}

func (b *statefulBubble) viewPlaylist() string {
	b.entriesC.Title = "Playlist " + b.store.Active().Range.String()
	return listExtraPaddingStyle.Render(b.entriesC.View())
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), wrapWidth(b.width))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// wrapWidth is a wrap width that leaves unknown terminal sizes unwrapped.
func wrapWidth(width int) int {
	if width <= 0 {
		return 1 << 16
	}
	return width
}
