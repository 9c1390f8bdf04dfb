// Package recurrence turns recurrence rules into concrete occurrences.
//
// The Expander walks an iCalendar-style rule in the owning record's zone and yields
// absolute start instants; the Materializer pairs those starts with the anchor's
// duration. Both are plain values with no shared mutable state and are safe to use
// from any number of goroutines.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/teambition/rrule-go"
)

// DefaultMaxOccurrences caps one expansion. A daily rule over ten years stays well below it.
const DefaultMaxOccurrences = 10000

// ErrTooManyOccurrences is returned when a single expansion exceeds the configured cap.
var ErrTooManyOccurrences = errors.New("recurrence expansion exceeds occurrence cap")

var frequencies = map[v1.Frequency]rrule.Frequency{
	v1.FrequencyDaily:   rrule.DAILY,
	v1.FrequencyWeekly:  rrule.WEEKLY,
	v1.FrequencyMonthly: rrule.MONTHLY,
}

var weekdays = map[v1.Weekday]rrule.Weekday{
	v1.Monday:    rrule.MO,
	v1.Tuesday:   rrule.TU,
	v1.Wednesday: rrule.WE,
	v1.Thursday:  rrule.TH,
	v1.Friday:    rrule.FR,
	v1.Saturday:  rrule.SA,
	v1.Sunday:    rrule.SU,
}

// Expander enumerates occurrence starts of a rule.
type Expander struct {
	maxOccurrences int
}

// NewExpander returns an expander that refuses to produce more than maxOccurrences
// starts per call. Zero or negative selects DefaultMaxOccurrences.
func NewExpander(maxOccurrences int) Expander {
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}
	return Expander{maxOccurrences: maxOccurrences}
}

func (e Expander) limit() int {
	if e.maxOccurrences <= 0 {
		return DefaultMaxOccurrences
	}
	return e.maxOccurrences
}

// build seeds an rrule iterator at the anchor's local start. An until date is inclusive:
// it is taken as the last second of that day in loc.
func build(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location) (*rrule.RRule, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	opt := rrule.ROption{
		Freq:       frequencies[rule.Frequency],
		Dtstart:    anchor.In(loc),
		Interval:   rule.Interval,
		Bymonthday: rule.ByMonthDay,
		Bysetpos:   rule.BySetPos,
	}
	for _, day := range rule.ByWeekday {
		opt.Byweekday = append(opt.Byweekday, weekdays[day])
	}
	if count, ok := rule.Count.Get(); ok {
		opt.Count = count
	}
	if until, ok := rule.Until.Get(); ok {
		opt.Until = timeutil.EndOfDay(until, loc)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, coreerr.Malformedf("invalid recurrence rule: %v", err)
	}
	return r, nil
}

// Expand returns the sorted, deduplicated starts of rule that fall in window, seeded at
// anchor in loc. The window must be bounded; callers own the horizon policy.
func (e Expander) Expand(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location, window timeutil.Window) ([]time.Time, error) {
	if !window.Valid() {
		return nil, coreerr.Malformedf("invalid expansion window %s", window)
	}
	dtstart := anchor.In(loc)
	if !dtstart.Before(window.End) {
		return nil, nil
	}

	end := window.End
	if until, ok := rule.Until.Get(); ok {
		if stop := timeutil.NextDayStart(until, loc); stop.Before(end) {
			end = stop
		}
	}

	r, err := build(rule, anchor, loc)
	if err != nil {
		return nil, err
	}

	var out []time.Time
	next := r.Iterator()
	for {
		t, ok := next()
		if !ok || !t.Before(end) {
			break
		}
		if t.Before(window.Start) {
			continue
		}
		if n := len(out); n > 0 && !out[n-1].Before(t) {
			continue
		}
		if len(out) >= e.limit() {
			return nil, fmt.Errorf("%w: more than %d starts in %s", ErrTooManyOccurrences, e.limit(), window)
		}
		out = append(out, t)
	}
	return out, nil
}

// Next returns the first start of rule at or after from.
func (e Expander) Next(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location, from time.Time) (time.Time, bool, error) {
	r, err := build(rule, anchor, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	t := r.After(from, true)
	if t.IsZero() {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// OnDate returns the start of the occurrence that begins on the local date d, if any.
func (e Expander) OnDate(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location, d civil.Date) (time.Time, bool, error) {
	starts, err := e.Expand(rule, anchor, loc, timeutil.DayWindow(d, loc))
	if err != nil || len(starts) == 0 {
		return time.Time{}, false, err
	}
	return starts[0], true, nil
}

// First returns the first start of the series.
func (e Expander) First(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location) (time.Time, bool, error) {
	r, err := build(rule, anchor, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	t, ok := r.Iterator()()
	return t, ok, nil
}

// Last returns the final start of a bounded series. Starts are streamed, never collected,
// so an until date decades out costs time but no memory. A count above the occurrence
// cap is refused up front.
func (e Expander) Last(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location) (time.Time, bool, error) {
	if !rule.Bounded() {
		return time.Time{}, false, coreerr.Malformedf("unbounded series has no last occurrence")
	}
	if count, ok := rule.Count.Get(); ok && count > e.limit() {
		return time.Time{}, false, fmt.Errorf("%w: count %d above %d", ErrTooManyOccurrences, count, e.limit())
	}
	r, err := build(rule, anchor, loc)
	if err != nil {
		return time.Time{}, false, err
	}

	var last time.Time
	found := false
	next := r.Iterator()
	for {
		t, ok := next()
		if !ok {
			return last, found, nil
		}
		last, found = t, true
	}
}

// Ordinal returns how many starts of the series precede t.
func (e Expander) Ordinal(rule v1.RecurrenceRule, anchor civil.DateTime, loc *time.Location, t time.Time) (int, error) {
	r, err := build(rule, anchor, loc)
	if err != nil {
		return 0, err
	}
	n := 0
	next := r.Iterator()
	for {
		s, ok := next()
		if !ok || !s.Before(t) {
			return n, nil
		}
		n++
	}
}
