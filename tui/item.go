// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/downify/downify/icon"
	"github.com/downify/downify/media"
	"github.com/downify/downify/session"
	"github.com/downify/downify/style"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// entryItem implements list.Item for one playlist entry.
type entryItem struct {
	entry  media.Entry
	marked bool
}

// Title renders the entry index and title, marked when inside the selected range.
func (e *entryItem) Title() string {
	title := fmt.Sprintf("%s %s", style.Faint(fmt.Sprintf("%3d.", e.entry.Index)), e.FilterValue())
	if e.marked {
		title = fmt.Sprintf("%s %s", title, lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark)))
	}
	return title
}

// Description renders the duration and id of the entry when known.
func (e *entryItem) Description() string {
	var parts []string

	if d, ok := e.entry.Duration.Get(); ok {
		parts = append(parts, media.FormatDuration(d))
	}

	if id, ok := e.entry.ID.Get(); ok {
		parts = append(parts, style.Fg(style.FaintColor)(id))
	}

	return strings.Join(parts, " • ")
}

// FilterValue is the entry title.
func (e *entryItem) FilterValue() string {
	if e.entry.Title == "" {
		return fmt.Sprintf("Entry %d", e.entry.Index)
	}
	return e.entry.Title
}

func entryItems(c session.Context) []list.Item {
	if !isPlaylist(c) {
		return []list.Item{}
	}

	return lo.Map(c.Info.Entries, func(e media.Entry, _ int) list.Item {
		return &entryItem{entry: e, marked: c.Range.Contains(e.Index)}
	})
}
