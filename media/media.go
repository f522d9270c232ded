// Package media models the descriptors returned by the extraction service.
package media

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Entry is a single item of a playlist.
// Index is 1-based, unique and stable for the lifetime of the descriptor.
type Entry struct {
	Index     int
	ID        mo.Option[string]
	Title     string
	Duration  mo.Option[float64]
	Thumbnail mo.Option[string]
}

// Info describes a resolved media URL. Entries is non-nil only for playlists.
type Info struct {
	ID        string
	Title     string
	Platform  string
	Thumbnail mo.Option[string]
	Duration  mo.Option[float64]
	Playlist  bool
	Entries   []Entry
	Count     mo.Option[int]
	VideoURL  mo.Option[string]

	// Sizes maps a quality value to an estimated payload size in bytes.
	Sizes map[Quality]int64
}

// Len returns the number of playlist entries, preferring the advertised count.
func (i *Info) Len() int {
	if count, ok := i.Count.Get(); ok {
		return count
	}
	return len(i.Entries)
}

// TotalDuration sums the known entry durations.
func (i *Info) TotalDuration() float64 {
	return lo.SumBy(i.Entries, func(e Entry) float64 {
		return e.Duration.OrEmpty()
	})
}

// Entry finds the playlist entry with the given index.
func (i *Info) Entry(index int) (Entry, bool) {
	return lo.Find(i.Entries, func(e Entry) bool {
		return e.Index == index
	})
}

// Size returns the estimated size for the quality, if the service reported one.
func (i *Info) Size(q Quality) mo.Option[int64] {
	size, ok := i.Sizes[q]
	if !ok || size <= 0 {
		return mo.None[int64]()
	}
	return mo.Some(size)
}
