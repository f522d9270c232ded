// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"errors"

	"github.com/downify/downify/internal/ui"
	"github.com/downify/downify/log"
	"github.com/downify/downify/open"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

// changedMsg signals that the session store was written.
type changedMsg struct{}

// submittedMsg carries the outcome of a submission.
type submittedMsg struct {
	id  platform.Mode
	err error
}

// savedKey identifies a saved report whose expiry clears it.
type savedKey struct {
	id     platform.Mode
	taskID string
}

func (b *statefulBubble) waitForChange() tea.Cmd {
	changes := b.store.Changes()
	return func() tea.Msg {
		<-changes
		return changedMsg{}
	}
}

// editURL writes the input to the active context and restarts the lookup timer.
func (b *statefulBubble) editURL() {
	id := b.store.ActiveID()
	url := b.inputC.Value()
	if url == b.store.Get(id).URL {
		return
	}

	b.store.SetURL(id, url)
	b.fetcher.Schedule(id, url)
}

func (b *statefulBubble) switchTab(offset int) {
	modes := platform.Modes
	_, current, _ := lo.FindIndexOf(modes, func(m platform.Mode) bool {
		return m == b.store.ActiveID()
	})

	next := modes[(current+offset+len(modes))%len(modes)]
	b.fetcher.Cancel()
	b.store.Select(next)
	b.fetcher.Schedule(next, b.store.Get(next).URL)
	b.sync()
}

// submit hands the active context to the orchestrator. The queue request
// runs off the update loop; its outcome reaches the view through the store.
// A context with a submission or job in progress ignores further submits.
func (b *statefulBubble) submit() tea.Cmd {
	active := b.store.Active()
	if b.submitting[active.ID] || active.Report.Busy() {
		return nil
	}

	b.fetcher.Cancel()
	b.submitting[active.ID] = true
	s := task.FromContext(active, b.store.Preferences())
	return func() tea.Msg {
		_, err := b.orchestrator.Submit(context.Background(), s)
		return submittedMsg{id: s.Context, err: err}
	}
}

// save opens the result of a completed job and clears it once the result lifetime elapses.
func (b *statefulBubble) save() tea.Cmd {
	active := b.store.Active()
	report := active.Report
	if report.Status != session.Completed || report.SaveURL == "" {
		b.store.Notify(session.Error, "Nothing to save yet")
		return nil
	}

	target := report.SaveURL
	if !b.options.OpenOnSave && b.options.Downloads != "" {
		target = b.options.Downloads
	}

	if err := open.Start(target); err != nil {
		log.WithField("target", target).Error(err)
		b.store.Notify(session.Error, "Could not open "+target)
		return nil
	}

	b.store.Notify(session.Success, "Saved")
	return ui.ExpireAfter(b.options.ResultLifetime, savedKey{id: active.ID, taskID: report.TaskID})
}

// expire clears the report of a saved job unless a newer job replaced it.
func (b *statefulBubble) expire(k savedKey) {
	if b.store.Get(k.id).Report.TaskID != k.taskID {
		return
	}

	b.store.ClearReport(k.id)
	b.store.Dismiss()
}

// preview opens the preview stream of the current media, if the service provided one.
func (b *statefulBubble) preview() {
	info := b.store.Active().Info
	if info == nil {
		return
	}

	link, ok := info.VideoURL.Get()
	if !ok {
		b.store.Notify(session.Info, "No preview available")
		return
	}

	if err := open.Start(link); err != nil {
		log.WithField("target", link).Error(err)
		b.store.Notify(session.Error, "Could not open preview")
	}
}

// onSubmitted surfaces submission failures that were not already reported by a notification.
func (b *statefulBubble) onSubmitted(msg submittedMsg) {
	delete(b.submitting, msg.id)
	if msg.err == nil {
		return
	}

	log.WithField("context", msg.id).Warn(msg.err)
	if errors.Is(msg.err, context.Canceled) || errors.Is(msg.err, task.ErrSuperseded) {
		return
	}

	if b.store.Notification().IsAbsent() {
		b.raiseError(msg.err)
	}
}
