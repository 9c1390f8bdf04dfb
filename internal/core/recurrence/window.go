package recurrence

import (
	"errors"
	"time"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
)

// ActiveWindow returns the span over which a schedule must be validated:
//   - non-recurring: the anchor interval itself
//   - until: from the anchor start through the end of the until date
//   - count: through the end of the last occurrence
//   - unbounded: horizonDays calendar days from the anchor start
//
// The bounded windows are extended by one duration so an occurrence running past
// midnight is still covered.
func (e Expander) ActiveWindow(s v1.Schedule, loc *time.Location, horizonDays int) (timeutil.Window, error) {
	start := s.Anchor.Start(loc)
	d := s.Anchor.Duration()
	if d <= 0 {
		return timeutil.Window{}, coreerr.Malformedf("duration_minutes must be > 0")
	}

	rule, ok := s.Recurrence.Get()
	if !ok {
		return timeutil.Window{Start: start, End: start.Add(d)}, nil
	}

	if until, ok := rule.Until.Get(); ok {
		return timeutil.Window{Start: start, End: timeutil.NextDayStart(until, loc).Add(d)}, nil
	}

	if rule.Count.IsPresent() {
		last, ok, err := e.Last(rule, s.Anchor.ValidFrom, loc)
		if err != nil {
			return timeutil.Window{}, AsMalformed(err)
		}
		if !ok {
			return timeutil.Window{}, coreerr.Malformedf("recurrence rule produces no occurrences")
		}
		return timeutil.Window{Start: start, End: last.Add(d)}, nil
	}

	if horizonDays <= 0 {
		return timeutil.Window{}, coreerr.Malformedf("validation horizon must be positive")
	}
	return timeutil.Window{Start: start, End: start.AddDate(0, 0, horizonDays)}, nil
}

// AsMalformed turns an occurrence-cap overflow into a caller error. Other errors pass
// through unchanged.
func AsMalformed(err error) error {
	if errors.Is(err, ErrTooManyOccurrences) {
		return coreerr.Malformedf("%v", err)
	}
	return err
}
