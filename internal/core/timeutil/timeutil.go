// Package timeutil holds the zone-aware date arithmetic shared by the
// recurrence engine. All recurrence math happens in a record's own zone;
// everything that leaves this package as time.Time is an absolute instant.
package timeutil

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
)

const minutesPerDay = 24 * 60

var locationCache sync.Map // map[string]*time.Location

// LoadLocation resolves an IANA zone name. Results are cached; an empty name is rejected
// rather than silently mapped to UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("time zone is required")
	}
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	locationCache.Store(name, loc)
	return loc, nil
}

// WallClock is a local time of day with minute precision, rendered as HH:mm.
type WallClock struct {
	Hour   int
	Minute int
}

// ParseWallClock parses "HH:mm".
func ParseWallClock(s string) (WallClock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return WallClock{}, fmt.Errorf("invalid wall clock %q (want HH:mm)", s)
	}
	return WallClock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// WallClockOf returns the wall clock of t in t's own location.
func WallClockOf(t time.Time) WallClock {
	return WallClock{Hour: t.Hour(), Minute: t.Minute()}
}

// ClockOf returns the wall clock of a local date-time.
func ClockOf(dt civil.DateTime) WallClock {
	return WallClock{Hour: dt.Time.Hour, Minute: dt.Time.Minute}
}

// Minutes returns minutes since local midnight.
func (w WallClock) Minutes() int {
	return w.Hour*60 + w.Minute
}

// Until returns the forward distance in minutes from w to other, modulo one day.
func (w WallClock) Until(other WallClock) int {
	return ((other.Minutes()-w.Minutes())%minutesPerDay + minutesPerDay) % minutesPerDay
}

func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

func (w WallClock) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *WallClock) UnmarshalText(b []byte) error {
	parsed, err := ParseWallClock(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Window is a half-open span of absolute time [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window has positive length.
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Overlaps applies the standard interval-overlap test against [start, end).
func (w Window) Overlaps(start, end time.Time) bool {
	return start.Before(w.End) && end.After(w.Start)
}

// Contains reports whether t lies in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Union returns the smallest window covering both w and o.
func (w Window) Union(o Window) Window {
	out := w
	if o.Start.Before(out.Start) {
		out.Start = o.Start
	}
	if o.End.After(out.End) {
		out.End = o.End
	}
	return out
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From civil.Date
	To   civil.Date
}

// Validate checks both dates are real and From <= To.
func (r DateRange) Validate() error {
	if !r.From.IsValid() || !r.To.IsValid() {
		return fmt.Errorf("invalid date range %s..%s", r.From, r.To)
	}
	if r.To.Before(r.From) {
		return fmt.Errorf("end date %s is before start date %s", r.To, r.From)
	}
	return nil
}

// Days returns the number of calendar days in the range, inclusive.
func (r DateRange) Days() int {
	return r.To.DaysSince(r.From) + 1
}

// In returns [From 00:00, To+1 00:00) resolved in loc.
func (r DateRange) In(loc *time.Location) Window {
	return Window{Start: StartOfDay(r.From, loc), End: NextDayStart(r.To, loc)}
}

// Padded returns the range resolved in loc widened to whole UTC days, so that callers
// in any zone see every occurrence that touches the requested dates.
func (r DateRange) Padded(loc *time.Location) Window {
	return r.In(loc).Union(r.In(time.UTC))
}

// StartOfDay returns local midnight of d in loc.
func StartOfDay(d civil.Date, loc *time.Location) time.Time {
	return d.In(loc)
}

// NextDayStart returns local midnight of the day after d, the exclusive end of d.
func NextDayStart(d civil.Date, loc *time.Location) time.Time {
	return d.AddDays(1).In(loc)
}

// EndOfDay returns the last whole second of d in loc.
func EndOfDay(d civil.Date, loc *time.Location) time.Time {
	return NextDayStart(d, loc).Add(-time.Second)
}

// DayWindow returns the single-day window of d in loc.
func DayWindow(d civil.Date, loc *time.Location) Window {
	return Window{Start: StartOfDay(d, loc), End: NextDayStart(d, loc)}
}

// LocalDate returns the calendar date of t in loc.
func LocalDate(t time.Time, loc *time.Location) civil.Date {
	return civil.DateOf(t.In(loc))
}

// LocalDateTime returns the wall-clock date-time of t in loc.
func LocalDateTime(t time.Time, loc *time.Location) civil.DateTime {
	return civil.DateTimeOf(t.In(loc))
}

// TruncateMinute drops seconds and below from a local date-time.
func TruncateMinute(dt civil.DateTime) civil.DateTime {
	dt.Time.Second = 0
	dt.Time.Nanosecond = 0
	return dt
}
