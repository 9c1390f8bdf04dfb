package recurrence

import (
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
)

// Materializer produces concrete [start, end) intervals for records.
type Materializer struct {
	expander Expander
}

func NewMaterializer(expander Expander) Materializer {
	return Materializer{expander: expander}
}

// Expander exposes the underlying expander for callers that need raw starts.
func (m Materializer) Expander() Expander {
	return m.expander
}

// Materialize returns every interval of rec that overlaps window, as absolute instants.
// Order is not guaranteed.
//
// Recurring records are expanded over the window widened backwards by one duration so an
// occurrence that starts before the window but runs into it is not lost.
func (m Materializer) Materialize(rec v1.Record, window timeutil.Window) ([]interval.Interval, error) {
	src := rec.Source()
	loc, err := timeutil.LoadLocation(src.Timezone)
	if err != nil {
		return nil, coreerr.Malformedf("record %s: %v", src.ID, err)
	}
	if !window.Valid() {
		return nil, coreerr.Malformedf("invalid materialization window %s", window)
	}

	anchor := src.Schedule.Anchor
	d := anchor.Duration()
	if d <= 0 {
		return nil, coreerr.Malformedf("record %s: duration_minutes must be > 0", src.ID)
	}

	rule, ok := src.Schedule.Recurrence.Get()
	if !ok {
		start := anchor.Start(loc)
		end := start.Add(d)
		if !window.Overlaps(start, end) {
			return nil, nil
		}
		return []interval.Interval{{Start: start, End: end, SourceID: src.ID}}, nil
	}

	widened := timeutil.Window{Start: window.Start.Add(-d), End: window.End}
	starts, err := m.expander.Expand(rule, anchor.ValidFrom, loc, widened)
	if err != nil {
		return nil, err
	}

	out := make([]interval.Interval, 0, len(starts))
	for _, start := range starts {
		end := start.Add(d)
		if !window.Overlaps(start, end) {
			continue
		}
		out = append(out, interval.Interval{Start: start, End: end, SourceID: src.ID})
	}
	return out, nil
}
