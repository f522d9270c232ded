// Package selection implements the two-click playlist index range.
package selection

import (
	"fmt"

	"github.com/samber/mo"
)

// Range is an inclusive span of 1-based playlist indices. Either bound may be absent.
// Once both bounds are present Start <= End holds.
type Range struct {
	Start mo.Option[int]
	End   mo.Option[int]

	// open is set between the first and second click of a pair.
	open bool
}

// Empty is the range with no bounds.
func Empty() Range {
	return Range{Start: mo.None[int](), End: mo.None[int]()}
}

// New builds a complete range, ordering the bounds.
func New(start, end int) Range {
	if start > end {
		start, end = end, start
	}
	return Range{Start: mo.Some(start), End: mo.Some(end)}
}

// Default selects the first min(count, limit) entries.
// An empty playlist yields an empty range.
func Default(count, limit int) Range {
	end := min(count, limit)
	if end < 1 {
		return Empty()
	}
	return New(1, end)
}

// Click applies a selection click on index idx.
// The first click, or a click after a completed pair, anchors a new single-item range.
// The next click closes it, ordering the bounds.
func Click(r Range, idx int) Range {
	start, hasStart := r.Start.Get()
	if !hasStart || !r.Pending() {
		r = New(idx, idx)
		r.open = true
		return r
	}
	return New(start, idx)
}

// Pending reports whether the range waits for its closing click.
func (r Range) Pending() bool {
	return r.open || r.Start.IsPresent() && r.End.IsAbsent()
}

// Contains reports whether idx is highlighted by the range.
func (r Range) Contains(idx int) bool {
	start, hasStart := r.Start.Get()
	end, hasEnd := r.End.Get()
	if hasStart && idx == start || hasEnd && idx == end {
		return true
	}
	return hasStart && hasEnd && start < idx && idx < end
}

// IsEmpty reports whether neither bound is set.
func (r Range) IsEmpty() bool {
	return r.Start.IsAbsent() && r.End.IsAbsent()
}

// Len is the number of indices covered, 0 when incomplete.
func (r Range) Len() int {
	start, ok1 := r.Start.Get()
	end, ok2 := r.End.Get()
	if !ok1 || !ok2 {
		return 0
	}
	return end - start + 1
}

func (r Range) String() string {
	format := func(o mo.Option[int]) string {
		if v, ok := o.Get(); ok {
			return fmt.Sprint(v)
		}
		return "-"
	}
	return fmt.Sprintf("%s..%s", format(r.Start), format(r.End))
}
