package interval

import (
	"sort"
	"time"
)

// Merge returns the minimal set of maximal intervals covering the input. Touching
// intervals (end == next start) merge. Source ids are dropped: merged intervals answer
// containment questions only.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := Sorted(intervals)

	out := make([]Interval, 0, len(sorted))
	cur := Interval{Start: sorted[0].Start, End: sorted[0].End}
	for _, next := range sorted[1:] {
		if !cur.End.Before(next.Start) {
			if next.End.After(cur.End) {
				cur.End = next.End
			}
			continue
		}
		out = append(out, cur)
		cur = Interval{Start: next.Start, End: next.End}
	}
	return append(out, cur)
}

// FirstUncovered returns the earliest candidate not fully contained in a single
// coverage interval. coverage must be the output of Merge.
func FirstUncovered(candidates, coverage []Interval) (Interval, bool) {
	for _, c := range Sorted(candidates) {
		if !covered(c, coverage) {
			return c, true
		}
	}
	return Interval{}, false
}

func covered(c Interval, coverage []Interval) bool {
	// Last coverage interval starting at or before c.Start.
	idx := sort.Search(len(coverage), func(i int) bool {
		return coverage[i].Start.After(c.Start)
	}) - 1
	return idx >= 0 && coverage[idx].Contains(c)
}

// Intersect returns the common time of two merged sets.
func Intersect(a, b []Interval) []Interval {
	var out []Interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := maxTime(a[i].Start, b[j].Start)
		end := minTime(a[i].End, b[j].End)
		if end.After(start) {
			out = append(out, Interval{Start: start, End: end})
		}
		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}
	return out
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
