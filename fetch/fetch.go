// Package fetch resolves the URL typed in a context into a media descriptor.
package fetch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/downify/downify/api"
	"github.com/downify/downify/log"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/selection"
	"github.com/downify/downify/session"
)

// User-facing messages of failed lookups.
const (
	MessageLookupFailed    = "Could not fetch details. Check URL."
	MessageTransportFailed = "Connection Error"
)

// Extractor describes URLs. It is satisfied by *api.Client.
type Extractor interface {
	Extract(ctx context.Context, request api.ExtractRequest) (*media.Info, error)
}

// Fetcher debounces URL edits and keeps the store's descriptors up to date.
// Only the newest request of a context may update it.
type Fetcher struct {
	store      *session.Store
	client     Extractor
	quiet      time.Duration
	rangeLimit int

	mu         sync.Mutex
	timer      *time.Timer
	seq        uint64
	dispatched map[platform.Mode]string
	inflight   map[platform.Mode]*request
	closed     bool
}

type request struct {
	cancel context.CancelFunc
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithQuiet sets how long a URL must stay unchanged before it is looked up.
func WithQuiet(d time.Duration) Option {
	return func(f *Fetcher) {
		f.quiet = d
	}
}

// WithRangeLimit caps the default playlist range.
func WithRangeLimit(n int) Option {
	return func(f *Fetcher) {
		f.rangeLimit = n
	}
}

// New creates a Fetcher publishing into store.
func New(store *session.Store, client Extractor, options ...Option) *Fetcher {
	f := &Fetcher{
		store:      store,
		client:     client,
		quiet:      800 * time.Millisecond,
		rangeLimit: 10,
		dispatched: make(map[platform.Mode]string),
		inflight:   make(map[platform.Mode]*request),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// Schedule (re)starts the quiet timer for url in context id. Any pending
// timer is discarded, so only the last of a burst of edits is looked up.
// A URL equal to the last one dispatched for the context is not looked up again.
func (f *Fetcher) Schedule(id platform.Mode, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopLocked()
	if f.closed || strings.TrimSpace(url) == "" {
		return
	}

	seq := f.seq
	f.timer = time.AfterFunc(f.quiet, func() {
		f.fire(id, url, seq)
	})
}

// Cancel drops the pending timer, if any. In-flight requests are unaffected.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
}

// Close drops the pending timer and cancels every in-flight request.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.stopLocked()
	for id, req := range f.inflight {
		req.cancel()
		delete(f.inflight, id)
	}
}

func (f *Fetcher) stopLocked() {
	f.seq++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Fetcher) fire(id platform.Mode, url string, seq uint64) {
	f.mu.Lock()
	if f.seq != seq || f.closed || f.dispatched[id] == url {
		f.mu.Unlock()
		return
	}
	f.dispatched[id] = url
	f.mu.Unlock()

	_, _ = f.Fetch(context.Background(), id, url)
}

// Fetch looks url up immediately on behalf of context id, superseding any
// request still in flight for that context. The outcome is written to the
// store and failures are turned into notifications. A later Schedule of the
// same URL for the context does not look it up again.
func (f *Fetcher) Fetch(ctx context.Context, id platform.Mode, url string) (*media.Info, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req := &request{cancel: cancel}
	f.mu.Lock()
	f.dispatched[id] = url
	if previous, ok := f.inflight[id]; ok {
		previous.cancel()
	}
	f.inflight[id] = req
	f.mu.Unlock()

	generation := f.store.Begin(id)
	prefs := f.store.Preferences()
	mode := platform.Detect(url, id)

	entry := log.WithFields(log.Fields{
		"context":    id,
		"mode":       mode,
		"generation": generation,
	})
	entry.Info("looking up " + url)

	info, err := f.client.Extract(ctx, api.ExtractRequest{
		URL:      url,
		Platform: mode.String(),
		Type:     prefs.Kind.String(),
		Quality:  prefs.Quality().String(),
	})

	f.mu.Lock()
	if f.inflight[id] == req {
		delete(f.inflight, id)
	}
	f.mu.Unlock()

	if err != nil {
		if !f.store.Abort(id, generation) || errors.Is(err, context.Canceled) {
			entry.Debug("lookup superseded")
			return nil, err
		}

		entry.Warn(err)
		if errors.Is(err, api.ErrLookup) {
			f.store.Notify(session.Error, MessageLookupFailed)
		} else {
			f.store.Notify(session.Error, MessageTransportFailed)
		}
		return nil, err
	}

	r := selection.Empty()
	if info.Playlist {
		r = selection.Default(info.Len(), f.rangeLimit)
	}

	if !f.store.Apply(id, generation, info, r) {
		entry.Debug("dropping stale lookup result")
		return nil, context.Canceled
	}

	entry.Infof("resolved %q", info.Title)
	return info, nil
}
