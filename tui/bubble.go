// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"time"

	"github.com/downify/downify/constant"
	"github.com/downify/downify/fetch"
	"github.com/downify/downify/internal/ui"
	"github.com/downify/downify/key"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/downify/downify/style"
	"github.com/downify/downify/task"
	"github.com/downify/downify/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the application state: component models, the
// session store it renders and the workers that write to it.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	entriesC  list.Model
	progressC progress.Model
	helpC     help.Model

	store        *session.Store
	fetcher      *fetch.Fetcher
	orchestrator *task.Orchestrator
	// submitting marks contexts whose queue request has not returned yet.
	submitting map[platform.Mode]bool

	// shown is the media descriptor the entries list was built from.
	shown     *media.Info
	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError records a failure the user has to acknowledge.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)

	if s == inputState {
		b.inputC.Focus()
	} else {
		b.inputC.Blur()
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.entriesC.SetSize(listWidth, listHeight)
	b.entriesC.Help.Width = listWidth

	b.progressC.Width = util.Min(styledWidth, 60)
	b.inputC.Width = util.Max(styledWidth-len(b.inputC.Prompt)-1, 1)

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
	b.notifier.SetWidth(styledWidth)
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:       keymap,
		store:        options.Store,
		fetcher:      options.Fetcher,
		orchestrator: options.Orchestrator,
		submitting:   make(map[platform.Mode]bool),
		notifier:     &ui.Model{},
		options:      options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Paste a link (v%s)", constant.Version)
	bubble.inputC.CharLimit = 2048
	bubble.inputC.Prompt = "URL: "

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.entriesC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.entriesC.KeyMap = keymap.forList()
	bubble.entriesC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.entriesC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.entriesC.Title = "Playlist"
	bubble.entriesC.Styles.NoItems = paddingStyle
	bubble.entriesC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Blue).Padding(0, 1)
	bubble.entriesC.StatusMessageLifetime = time.Hour * 999
	bubble.entriesC.SetShowHelp(true)
	bubble.entriesC.SetFilteringEnabled(false)
	bubble.entriesC.SetStatusBarItemName("entry", "entries")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(inputState)
	bubble.sync()

	return &bubble
}

// sync copies the observable state of the active context into the components.
func (b *statefulBubble) sync() {
	active := b.store.Active()

	if b.inputC.Value() != active.URL {
		b.inputC.SetValue(active.URL)
		b.inputC.CursorEnd()
	}

	if active.Info != b.shown {
		b.shown = active.Info
		b.entriesC.ResetSelected()
	}
	b.entriesC.SetItems(entryItems(active))

	if b.state == playlistState && !isPlaylist(active) {
		b.setState(browseState)
	}

	b.notifier.Set(b.store.Notification())
}

func isPlaylist(c session.Context) bool {
	return c.Info != nil && c.Info.Playlist && len(c.Info.Entries) > 0
}
