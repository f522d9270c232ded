// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"strings"
	"time"

	"github.com/downify/downify/icon"
	"github.com/downify/downify/session"
	"github.com/downify/downify/style"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/mo"
)

// Model renders the notification published by the session store below the main view.
type Model struct {
	notification mo.Option[session.Notification]
	width        int
}

// ExpireMsg is delivered once a delayed clear elapses. Key identifies what expired.
type ExpireMsg struct {
	Key any
}

// ExpireAfter returns a tea.Cmd that delivers ExpireMsg{key} after d.
func ExpireAfter(d time.Duration, key any) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ExpireMsg{Key: key}
	})
}

// Set replaces the rendered notification.
func (m *Model) Set(n mo.Option[session.Notification]) {
	m.notification = n
}

// SetWidth bounds the rendered message.
func (m *Model) SetWidth(width int) {
	m.width = width
}

var kinds = map[session.NotificationKind]struct {
	icon  icon.Icon
	color lipgloss.Color
}{
	session.Info:    {icon.Info, style.InfoColor},
	session.Success: {icon.Success, style.SuccessColor},
	session.Error:   {icon.Fail, style.ErrorColor},
}

// View appends the current notification to the main content.
func (m *Model) View(mainContent string) string {
	n, ok := m.notification.Get()
	if !ok || n.Message == "" {
		return mainContent
	}

	kind := kinds[n.Kind]
	line := icon.Get(kind.icon) + " " + lipgloss.NewStyle().Foreground(kind.color).Bold(true).Render(n.Message)
	if m.width > 0 {
		line = wrap.String(line, m.width)
	}

	return strings.TrimRight(mainContent, "\n") + "\n\n" + line
}
