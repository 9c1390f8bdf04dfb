package interval

import "time"

// Overlap is one detected pair and its clipped intersection [Start, End).
// A and B are in sorted order. Start == End for pairs that only touch.
type Overlap struct {
	A     Interval  `json:"a"`
	B     Interval  `json:"b"`
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Touching reports whether the pair only shares a boundary point.
func (o Overlap) Touching() bool {
	return o.Start.Equal(o.End)
}

func newOverlap(a, b Interval) Overlap {
	return Overlap{A: a, B: b, Start: maxTime(a.Start, b.Start), End: minTime(a.End, b.End)}
}

// DetectOverlaps sweeps sorted input and reports every pair with i.End >= next.Start,
// so pairs sharing only a boundary are reported too. The inner scan stops at the first
// interval that starts after i ends.
func DetectOverlaps(intervals []Interval) []Overlap {
	sorted := Sorted(intervals)
	var out []Overlap
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i].End.Before(sorted[j].Start) {
				break
			}
			out = append(out, newOverlap(sorted[i], sorted[j]))
		}
	}
	return out
}

// FirstConflict returns the earliest candidate that strictly overlaps any existing
// interval, with the overlap it forms. Touching intervals do not conflict.
func FirstConflict(existing, candidates []Interval) (Overlap, bool) {
	ex := Sorted(existing)
	for _, c := range Sorted(candidates) {
		for _, e := range ex {
			if !e.Start.Before(c.End) {
				break
			}
			if e.Overlaps(c) {
				return newOverlap(e, c), true
			}
		}
	}
	return Overlap{}, false
}
