// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/downify/downify/internal/ui"
	"github.com/downify/downify/media"
	"github.com/downify/downify/session"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		b.sync()
		return b, b.waitForChange()
	case submittedMsg:
		b.onSubmitted(msg)
		return b, nil
	case ui.ExpireMsg:
		if k, ok := msg.Key.(savedKey); ok {
			b.expire(k)
		}
		return b, nil
	case error:
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case inputState:
		return b.updateInput(msg)
	case browseState:
		return b.updateBrowse(msg)
	case playlistState:
		return b.updatePlaylist(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.submit) && msg.Type == tea.KeyEnter:
			return b, b.submit()
		case bubblesKey.Matches(msg, b.keymap.nextTab):
			b.switchTab(1)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.prevTab):
			b.switchTab(-1)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.blur):
			b.setState(browseState)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	b.editURL()
	return b, cmd
}

func (b *statefulBubble) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	prefs := b.store.Preferences()

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.submit):
		return b, b.submit()
	case bubblesKey.Matches(keyMsg, b.keymap.nextTab):
		b.switchTab(1)
	case bubblesKey.Matches(keyMsg, b.keymap.prevTab):
		b.switchTab(-1)
	case bubblesKey.Matches(keyMsg, b.keymap.focusInput):
		b.setState(inputState)
	case bubblesKey.Matches(keyMsg, b.keymap.toggleKind):
		b.store.SetKind(prefs.Kind.Toggle())
	case bubblesKey.Matches(keyMsg, b.keymap.nextQuality):
		b.store.SetQuality(prefs.Quality().Next(prefs.Kind))
	case bubblesKey.Matches(keyMsg, b.keymap.prevQuality):
		b.store.SetQuality(prefs.Quality().Prev(prefs.Kind))
	case bubblesKey.Matches(keyMsg, b.keymap.playlist):
		if isPlaylist(b.store.Active()) {
			b.setState(playlistState)
		}
	case bubblesKey.Matches(keyMsg, b.keymap.save):
		return b, b.save()
	case bubblesKey.Matches(keyMsg, b.keymap.preview):
		b.preview()
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return b, nil
}

func (b *statefulBubble) updatePlaylist(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.setState(browseState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.click):
			if item, ok := b.entriesC.SelectedItem().(*entryItem); ok {
				b.store.Click(b.store.ActiveID(), item.entry.Index)
				b.entriesC.SetItems(entryItems(b.store.Active()))
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.entriesC, cmd = b.entriesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			b.setState(browseState)
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}

// qualityChoices lists the qualities of the selected kind with their size estimates.
func qualityChoices(info *media.Info, prefs session.Preferences) []string {
	var choices []string
	for _, q := range prefs.Kind.Qualities() {
		label := q.Label()
		if info != nil {
			if size, ok := info.Size(q).Get(); ok {
				label += " ~" + media.FormatSize(size)
			}
		}
		choices = append(choices, label)
	}
	return choices
}
