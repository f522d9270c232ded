// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/downify/downify/color"
	"github.com/downify/downify/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	nextTab, prevTab,
	submit, save, preview,
	focusInput, blur, back,
	toggleKind, nextQuality, prevQuality,
	playlist, click,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		nextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		prevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter", "d"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("download")),
		),
		save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save result"),
		),
		preview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open preview"),
		),
		focusInput: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "edit url"),
		),
		blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "options"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		toggleKind: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "video/audio"),
		),
		nextQuality: key.NewBinding(
			key.WithKeys("]", "+"),
			key.WithHelp("]", "quality up"),
		),
		prevQuality: key.NewBinding(
			key.WithKeys("[", "-"),
			key.WithHelp("[", "quality down"),
		),
		playlist: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pick range"),
		),
		click: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "mark range bound"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case inputState:
		return to2(h(k.submit, k.nextTab, k.blur, k.forceQuit))
	case browseState:
		return h(k.submit, k.toggleKind, k.nextQuality, k.playlist, k.focusInput, k.showHelp),
			h(k.submit, k.nextTab, k.prevTab, k.toggleKind, k.nextQuality, k.prevQuality, k.playlist, k.save, k.preview, k.focusInput, k.quit)
	case playlistState:
		return to2(h(k.click, k.up, k.down, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:   k.up,
		CursorDown: k.down,
		NextPage:   k.right,
		PrevPage:   k.left,
		GoToStart:  k.top,
		GoToEnd:    k.bottom,
		ForceQuit:  k.forceQuit,
	}
}
