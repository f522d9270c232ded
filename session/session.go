// Package session holds per-context state of the client: the URL typed in each
// platform tab, its resolved media descriptor, the playlist range and the report of its last job.
package session

import (
	"sync"
	"time"

	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/selection"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Context is a snapshot of one tab. Info is shared between snapshots and must not be mutated.
type Context struct {
	ID       platform.Mode
	URL      string
	Info     *media.Info
	Range    selection.Range
	Fetching bool
	Report   Report

	generation uint64
}

// Generation identifies the latest metadata request of the context.
func (c Context) Generation() uint64 {
	return c.generation
}

// Preferences are shared by every context.
type Preferences struct {
	Kind         media.Kind
	VideoQuality media.Quality
	AudioQuality media.Quality
}

// Quality resolves the quality that applies to the selected kind.
func (p Preferences) Quality() media.Quality {
	if p.Kind == media.Audio {
		return p.AudioQuality
	}
	return p.VideoQuality
}

// DefaultPreferences mirror the defaults of a fresh install.
func DefaultPreferences() Preferences {
	return Preferences{
		Kind:         media.Video,
		VideoQuality: "1080",
		AudioQuality: "128",
	}
}

// Store owns every context. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[platform.Mode]Context
	active  platform.Mode
	prefs   Preferences

	note         mo.Option[Notification]
	noteSeq      uint64
	noteTimer    *time.Timer
	noteLifetime time.Duration

	changes chan struct{}
}

// Option customizes a Store.
type Option func(*Store)

// WithNotificationLifetime sets how long success notifications stay visible.
func WithNotificationLifetime(d time.Duration) Option {
	return func(s *Store) {
		s.noteLifetime = d
	}
}

// New creates one context per platform mode and activates the given one.
func New(active platform.Mode, prefs Preferences, options ...Option) *Store {
	s := &Store{
		records:      make(map[platform.Mode]Context, len(platform.Modes)),
		prefs:        prefs,
		noteLifetime: 3 * time.Second,
		changes:      make(chan struct{}, 1),
	}

	for _, mode := range platform.Modes {
		s.records[mode] = Context{ID: mode, Range: selection.Empty()}
	}

	if _, ok := s.records[active]; !ok {
		active = platform.YouTube
	}
	s.active = active

	for _, option := range options {
		option(s)
	}

	return s
}

// Changes delivers a signal after any state change. Signals coalesce.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) changed() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// update replaces the record of id with f applied to it. Unknown ids are ignored.
// It must be called with the write lock held.
func (s *Store) update(id platform.Mode, f func(Context) Context) bool {
	record, ok := s.records[id]
	if !ok {
		return false
	}
	s.records[id] = f(record)
	return true
}

func (s *Store) write(f func()) {
	s.mu.Lock()
	f()
	s.mu.Unlock()
	s.changed()
}

// Select makes id the active context and dismisses the notification.
// Stored fields are left untouched.
func (s *Store) Select(id platform.Mode) {
	s.write(func() {
		if _, ok := s.records[id]; ok {
			s.active = id
		}
		s.dismissLocked()
	})
}

// ActiveID returns the id of the active context.
func (s *Store) ActiveID() platform.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Active returns a copy of the active context.
func (s *Store) Active() Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[s.active]
}

// Get returns a copy of the context, or the zero Context for unknown ids.
func (s *Store) Get(id platform.Mode) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[id]
}

// SetURL stores the URL. A report of a finished job becomes stale and is cleared.
func (s *Store) SetURL(id platform.Mode, url string) {
	s.write(func() {
		s.update(id, func(c Context) Context {
			if c.URL != url {
				c.Report = staleCleared(c.Report)
			}
			c.URL = url
			return c
		})
	})
}

// SetMediaInfo stores info. When the descriptor identity changes the range is reset.
func (s *Store) SetMediaInfo(id platform.Mode, info *media.Info) {
	s.write(func() {
		s.update(id, func(c Context) Context {
			return withInfo(c, info)
		})
	})
}

// SetRange replaces the playlist range.
func (s *Store) SetRange(id platform.Mode, r selection.Range) {
	s.write(func() {
		s.update(id, func(c Context) Context {
			c.Range = r
			return c
		})
	})
}

// Click applies a playlist entry click to the range of id and returns the new range.
func (s *Store) Click(id platform.Mode, idx int) selection.Range {
	var r selection.Range
	s.write(func() {
		s.update(id, func(c Context) Context {
			c.Range = selection.Click(c.Range, idx)
			r = c.Range
			return c
		})
	})
	return r
}

// Begin starts a metadata request for id: the descriptor is cleared, the
// fetching flag raised and a new generation returned.
func (s *Store) Begin(id platform.Mode) uint64 {
	var generation uint64
	s.write(func() {
		s.update(id, func(c Context) Context {
			c = withInfo(c, nil)
			c.generation++
			c.Fetching = true
			generation = c.generation
			return c
		})
	})
	return generation
}

// Apply completes the request of the given generation with info and r.
// It reports false and changes nothing when a newer request has started since.
func (s *Store) Apply(id platform.Mode, generation uint64, info *media.Info, r selection.Range) bool {
	applied := false
	s.write(func() {
		s.update(id, func(c Context) Context {
			if c.generation != generation {
				return c
			}
			applied = true
			c = withInfo(c, info)
			c.Range = r
			c.Fetching = false
			return c
		})
	})
	return applied
}

// Abort ends the request of the given generation without a result.
func (s *Store) Abort(id platform.Mode, generation uint64) bool {
	aborted := false
	s.write(func() {
		s.update(id, func(c Context) Context {
			if c.generation != generation {
				return c
			}
			aborted = true
			c.Fetching = false
			return c
		})
	})
	return aborted
}

// Preferences returns the shared download preferences.
func (s *Store) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetKind changes the media kind. The active context's finished report is cleared.
func (s *Store) SetKind(kind media.Kind) {
	s.write(func() {
		if s.prefs.Kind == kind {
			return
		}
		s.prefs.Kind = kind
		s.clearActiveReportLocked()
	})
}

// SetQuality changes the quality of the currently selected kind.
// The active context's finished report is cleared.
func (s *Store) SetQuality(q media.Quality) {
	s.write(func() {
		if s.prefs.Quality() == q {
			return
		}
		if s.prefs.Kind == media.Audio {
			s.prefs.AudioQuality = q
		} else {
			s.prefs.VideoQuality = q
		}
		s.clearActiveReportLocked()
	})
}

func (s *Store) clearActiveReportLocked() {
	s.update(s.active, func(c Context) Context {
		c.Report = staleCleared(c.Report)
		return c
	})
}

// SetReport publishes the state of the job submitted from id.
func (s *Store) SetReport(id platform.Mode, report Report) {
	s.write(func() {
		s.update(id, func(c Context) Context {
			report.Locators = append([]string(nil), report.Locators...)
			c.Report = report
			return c
		})
	})
}

// ClearReport resets the report of id to Idle.
func (s *Store) ClearReport(id platform.Mode) {
	s.SetReport(id, Report{})
}

// staleCleared drops a report unless its job is still running.
func staleCleared(r Report) Report {
	if r.Busy() {
		return r
	}
	return Report{}
}

func withInfo(c Context, info *media.Info) Context {
	if !sameMedia(c.Info, info) {
		c.Range = selection.Empty()
	}
	c.Info = info
	return c
}

// sameMedia compares service ids. Descriptors without one are only the same
// media when they are the same descriptor.
func sameMedia(a, b *media.Info) bool {
	if a == nil || b == nil || a.ID == "" || b.ID == "" {
		return a == b
	}
	return a.ID == b.ID
}

// Notify shows a notification. Success notifications disappear after the configured lifetime.
func (s *Store) Notify(kind NotificationKind, message string) {
	s.write(func() {
		s.dismissLocked()
		s.note = mo.Some(Notification{Kind: kind, Message: message})

		if kind != Success || s.noteLifetime <= 0 {
			return
		}

		seq := s.noteSeq
		s.noteTimer = time.AfterFunc(s.noteLifetime, func() {
			s.write(func() {
				if s.noteSeq == seq {
					s.dismissLocked()
				}
			})
		})
	})
}

// Notification returns the visible notification, if any.
func (s *Store) Notification() mo.Option[Notification] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.note
}

// Dismiss hides the notification.
func (s *Store) Dismiss() {
	s.write(s.dismissLocked)
}

func (s *Store) dismissLocked() {
	s.noteSeq++
	s.note = mo.None[Notification]()
	if s.noteTimer != nil {
		s.noteTimer.Stop()
		s.noteTimer = nil
	}
}

// Contexts returns copies of every context in tab order.
func (s *Store) Contexts() []Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(platform.Modes, func(mode platform.Mode, _ int) Context {
		return s.records[mode]
	})
}
