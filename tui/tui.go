// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/downify/downify/fetch"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Store        *session.Store
	Fetcher      *fetch.Fetcher
	Orchestrator *task.Orchestrator

	// ProgressFloor is the least progress shown while a job is processing.
	ProgressFloor float64
	// ResultLifetime is how long a saved result stays on screen.
	ResultLifetime time.Duration
	// OpenOnSave opens the result link when saving, else the downloads directory.
	OpenOnSave bool
	Downloads  string
}

// Run initializes and executes the primary Bubble Tea application loop.
// Pending lookups and jobs are cancelled when the program exits.
func Run(options *Options) error {
	defer options.Orchestrator.Close()
	defer options.Fetcher.Close()

	_, err := tea.NewProgram(newBubble(options), tea.WithAltScreen()).Run()
	return err
}
