package v1

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
)

// NewAnchor derives the normalized anchor for an occurrence starting at start and
// lasting d, resolved in loc. Seconds are dropped from both ends.
func NewAnchor(start time.Time, d time.Duration, loc *time.Location) AnchorInterval {
	from := timeutil.TruncateMinute(timeutil.LocalDateTime(start, loc))
	begin := from.In(loc)
	end := begin.Add(d.Truncate(time.Minute))
	return AnchorInterval{
		StartTime:       timeutil.ClockOf(from),
		EndTime:         timeutil.WallClockOf(end.In(loc)),
		DurationMinutes: int(end.Sub(begin) / time.Minute),
		ValidFrom:       from,
	}
}

// Start resolves ValidFrom to an absolute instant in loc.
func (a AnchorInterval) Start(loc *time.Location) time.Time {
	return a.ValidFrom.In(loc)
}

func (a AnchorInterval) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

// Rebase moves the anchor to date, keeping the original time of day and duration.
func (a AnchorInterval) Rebase(date civil.Date, loc *time.Location) AnchorInterval {
	from := civil.DateTime{Date: date, Time: a.ValidFrom.Time}
	out := a
	out.ValidFrom = from
	out.EndTime = timeutil.WallClockOf(from.In(loc).Add(a.Duration()).In(loc))
	return out
}
