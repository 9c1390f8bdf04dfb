// Package interval implements the set algebra over half-open [Start, End) intervals
// used for availability coverage and conflict checks.
package interval

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Interval is one concrete occurrence. SourceID names the record that produced it and
// is empty once intervals have been merged.
type Interval struct {
	Start    time.Time `json:"start_date"`
	End      time.Time `json:"end_date"`
	SourceID string    `json:"source_id,omitempty"`
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether o lies entirely inside i, boundaries included.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Overlaps is the strict test: intervals that only share a boundary do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.End.After(o.Start) && i.Start.Before(o.End)
}

func (i Interval) String() string {
	s := fmt.Sprintf("[%s, %s)", i.Start.UTC().Format(time.RFC3339), i.End.UTC().Format(time.RFC3339))
	if i.SourceID != "" {
		s += "@" + i.SourceID
	}
	return s
}

func less(a, b Interval) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	if !a.End.Equal(b.End) {
		return a.End.Before(b.End)
	}
	return strings.Compare(a.SourceID, b.SourceID) < 0
}

// Sort orders intervals by start, then end, then source id. The tie-breaks make every
// derived result independent of input order.
func Sort(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return less(intervals[i], intervals[j])
	})
}

// Sorted returns a sorted copy.
func Sorted(intervals []Interval) []Interval {
	out := append([]Interval(nil), intervals...)
	Sort(out)
	return out
}

// TotalDuration sums interval lengths. Overlapping input is counted twice; merge first
// when coverage is what you want.
func TotalDuration(intervals []Interval) time.Duration {
	var total time.Duration
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}

// Clip restricts intervals to [start, end) and drops those left empty.
func Clip(intervals []Interval, start, end time.Time) []Interval {
	var out []Interval
	for _, iv := range intervals {
		if iv.Start.Before(start) {
			iv.Start = start
		}
		if iv.End.After(end) {
			iv.End = end
		}
		if iv.End.After(iv.Start) {
			out = append(out, iv)
		}
	}
	return out
}
