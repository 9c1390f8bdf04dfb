package v1

import (
	"slices"

	"cloud.google.com/go/civil"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/samber/mo"
)

// Frequency is the base period of a recurrence rule.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Weekday is a two-letter iCalendar weekday code.
type Weekday string

const (
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
	Sunday    Weekday = "SU"
)

func (w Weekday) Valid() bool {
	switch w {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// AnchorInterval is the single concrete template a record recurs from.
// DurationMinutes is authoritative; StartTime and EndTime are a human-readable cache
// derived from ValidFrom and the owning zone.
type AnchorInterval struct {
	StartTime       timeutil.WallClock `json:"start_time"`
	EndTime         timeutil.WallClock `json:"end_time"`
	DurationMinutes int                `json:"duration_minutes"`
	ValidFrom       civil.DateTime     `json:"valid_from"`
}

// RecurrenceRule is an iCalendar-style rule attached to exactly one anchor.
type RecurrenceRule struct {
	Frequency  Frequency             `json:"frequency"`
	Interval   int                   `json:"interval"`
	Until      mo.Option[civil.Date] `json:"until"`
	Count      mo.Option[int]        `json:"count"`
	ByWeekday  []Weekday             `json:"byweekday,omitempty"`
	ByMonthDay []int                 `json:"bymonthday,omitempty"`
	BySetPos   []int                 `json:"bysetpos,omitempty"`
}

// Bounded reports whether the rule ends by until or count.
func (r RecurrenceRule) Bounded() bool {
	return r.Until.IsPresent() || r.Count.IsPresent()
}

// Validate enforces frequency-specific field validity.
func (r RecurrenceRule) Validate() error {
	if !r.Frequency.Valid() {
		return coreerr.Malformedf("unknown frequency %q", r.Frequency)
	}
	if r.Interval < 1 {
		return coreerr.Malformedf("interval must be >= 1, got %d", r.Interval)
	}
	if r.Until.IsPresent() && r.Count.IsPresent() {
		return coreerr.Malformedf("until and count are mutually exclusive")
	}
	if count, ok := r.Count.Get(); ok && count < 1 {
		return coreerr.Malformedf("count must be >= 1, got %d", count)
	}
	if until, ok := r.Until.Get(); ok && !until.IsValid() {
		return coreerr.Malformedf("invalid until date %s", until)
	}
	if r.Frequency == FrequencyWeekly && len(r.ByWeekday) == 0 {
		return coreerr.Malformedf("byweekday is required for WEEKLY recurrence")
	}
	for _, day := range r.ByWeekday {
		if !day.Valid() {
			return coreerr.Malformedf("invalid weekday %q", day)
		}
	}
	if r.Frequency != FrequencyMonthly && (len(r.ByMonthDay) > 0 || len(r.BySetPos) > 0) {
		return coreerr.Malformedf("bymonthday and bysetpos are only valid with MONTHLY recurrence")
	}
	for _, day := range r.ByMonthDay {
		if day == 0 || day < -31 || day > 31 {
			return coreerr.Malformedf("bymonthday value %d out of range", day)
		}
	}
	for _, pos := range r.BySetPos {
		if pos == 0 || pos < -366 || pos > 366 {
			return coreerr.Malformedf("bysetpos value %d out of range", pos)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (r RecurrenceRule) Clone() RecurrenceRule {
	out := r
	out.ByWeekday = slices.Clone(r.ByWeekday)
	out.ByMonthDay = slices.Clone(r.ByMonthDay)
	out.BySetPos = slices.Clone(r.BySetPos)
	return out
}

// Schedule is the closed sum of a non-recurring anchor (Recurrence is None) and a
// recurring one (Recurrence is Some).
type Schedule struct {
	Anchor     AnchorInterval            `json:"interval"`
	Recurrence mo.Option[RecurrenceRule] `json:"recurrence_rule"`
}

// NewSchedule validates and builds a schedule. A zero rule interval defaults to 1.
func NewSchedule(anchor AnchorInterval, rule mo.Option[RecurrenceRule]) (Schedule, error) {
	if r, ok := rule.Get(); ok && r.Interval == 0 {
		r.Interval = 1
		rule = mo.Some(r)
	}
	s := Schedule{Anchor: anchor, Recurrence: rule}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// NonRecurring is shorthand for a single-shot schedule.
func NonRecurring(anchor AnchorInterval) (Schedule, error) {
	return NewSchedule(anchor, mo.None[RecurrenceRule]())
}

// Recurring is shorthand for a recurring schedule.
func Recurring(anchor AnchorInterval, rule RecurrenceRule) (Schedule, error) {
	return NewSchedule(anchor, mo.Some(rule))
}

func (s Schedule) IsRecurring() bool {
	return s.Recurrence.IsPresent()
}

// Validate checks the anchor and, if present, the rule.
func (s Schedule) Validate() error {
	a := s.Anchor
	if a.DurationMinutes <= 0 {
		return coreerr.Malformedf("duration_minutes must be > 0, got %d", a.DurationMinutes)
	}
	if !a.ValidFrom.IsValid() {
		return coreerr.Malformedf("invalid valid_from %s", a.ValidFrom)
	}
	if timeutil.ClockOf(a.ValidFrom) != a.StartTime {
		return coreerr.Malformedf("start_time %s does not match valid_from %s", a.StartTime, a.ValidFrom)
	}
	rule, ok := s.Recurrence.Get()
	if !ok {
		return nil
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	if until, ok := rule.Until.Get(); ok && until.Before(a.ValidFrom.Date) {
		return coreerr.Malformedf("until %s is before valid_from %s", until, a.ValidFrom.Date)
	}
	return nil
}

// Clone returns a deep copy.
func (s Schedule) Clone() Schedule {
	out := s
	if rule, ok := s.Recurrence.Get(); ok {
		out.Recurrence = mo.Some(rule.Clone())
	}
	return out
}
