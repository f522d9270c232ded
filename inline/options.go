// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/downify/downify/fetch"
	"github.com/downify/downify/media"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/selection"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Service is everything the pipeline needs from the service. It is satisfied by *api.Client.
type Service interface {
	fetch.Extractor
	task.Service
	Download(ctx context.Context, fileID, dir string) (string, error)
}

type Options struct {
	Out         io.Writer
	Service     Service
	Context     platform.Mode
	URL         string
	Preferences session.Preferences

	// Range overrides the default playlist range.
	Range mo.Option[selection.Range]
	// Filter keeps only playlist entries fuzzily matching it.
	Filter string

	// Download submits a job and saves the produced files into Dir.
	Download bool
	Dir      string
	Json     bool

	// Progress receives every job state change.
	Progress func(task.Snapshot)

	PollInterval    time.Duration
	Stagger         time.Duration
	MaxPollFailures int
}

// ParseRange parses a playlist range description.
// Format: "all", "5", "2-8", "3-" (from 3 to the end), "-4" (up to 4).
func ParseRange(description string) (selection.Range, error) {
	description = strings.TrimSpace(description)
	if description == "" || description == "all" {
		return selection.Empty(), nil
	}

	parse := func(s string) (mo.Option[int], error) {
		if s == "" {
			return mo.None[int](), nil
		}
		n, err := strconv.ParseUint(s, 10, 16)
		if err != nil || n == 0 {
			return mo.None[int](), fmt.Errorf("invalid playlist index: %q", s)
		}
		return mo.Some(int(n)), nil
	}

	from, to, isRange := strings.Cut(description, "-")
	if !isRange {
		idx, err := parse(from)
		if err != nil {
			return selection.Range{}, err
		}
		return selection.New(idx.MustGet(), idx.MustGet()), nil
	}

	start, err := parse(from)
	if err != nil {
		return selection.Range{}, err
	}
	end, err := parse(to)
	if err != nil {
		return selection.Range{}, err
	}

	if start.IsPresent() && end.IsPresent() {
		return selection.New(start.MustGet(), end.MustGet()), nil
	}
	if start.IsAbsent() && end.IsAbsent() {
		return selection.Range{}, fmt.Errorf("invalid playlist range: %q", description)
	}
	return selection.Range{Start: start, End: end}, nil
}

// FilterEntries keeps entries whose title fuzzily matches query, best matches first.
func FilterEntries(entries []media.Entry, query string) []media.Entry {
	if strings.TrimSpace(query) == "" {
		return entries
	}

	titles := lo.Map(entries, func(e media.Entry, _ int) string {
		return e.Title
	})

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	return lo.Map(ranks, func(rank fuzzy.Rank, _ int) media.Entry {
		return entries[rank.OriginalIndex]
	})
}
