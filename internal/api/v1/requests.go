package v1

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/samber/mo"
)

// RecurrenceRuleRequest is the wire form of a recurrence rule. Field-level checks run in
// the request binding; cross-field checks run in RecurrenceRule.Validate.
type RecurrenceRuleRequest struct {
	Frequency  string      `json:"frequency" binding:"required,frequency"`
	Interval   int         `json:"interval" binding:"omitempty,min=1"`
	Until      *civil.Date `json:"until"`
	Count      *int        `json:"count" binding:"omitempty,min=1"`
	ByWeekday  []string    `json:"byweekday" binding:"omitempty,dive,weekday"`
	ByMonthDay []int       `json:"bymonthday" binding:"omitempty,dive,ne=0,min=-31,max=31"`
	BySetPos   []int       `json:"bysetpos" binding:"omitempty,dive,ne=0,min=-366,max=366"`
}

// Rule converts the request into an optional rule; a nil request means non-recurring.
func (r *RecurrenceRuleRequest) Rule() mo.Option[RecurrenceRule] {
	if r == nil {
		return mo.None[RecurrenceRule]()
	}
	rule := RecurrenceRule{
		Frequency:  Frequency(r.Frequency),
		Interval:   r.Interval,
		Until:      mo.PointerToOption(r.Until),
		Count:      mo.PointerToOption(r.Count),
		ByMonthDay: r.ByMonthDay,
		BySetPos:   r.BySetPos,
	}
	for _, day := range r.ByWeekday {
		rule.ByWeekday = append(rule.ByWeekday, Weekday(day))
	}
	return mo.Some(rule)
}

// TimeRangeRequest is one absolute [start_date, end_date) interval.
type TimeRangeRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
}

// CreateAvailabilityRequest is POST /v1/availabilities.
type CreateAvailabilityRequest struct {
	VenueID  string                   `json:"venue_id" binding:"required_without=SpaceID,excluded_with=SpaceID"`
	SpaceID  string                   `json:"space_id" binding:"required_without=VenueID,excluded_with=VenueID"`
	Timezone string                   `json:"timezone" binding:"omitempty,iana_tz"`
	Rules    AvailabilityRulesRequest `json:"rules"`
}

type AvailabilityRulesRequest struct {
	Intervals      []TimeRangeRequest     `json:"intervals" binding:"required,min=1,dive"`
	RecurrenceRule *RecurrenceRuleRequest `json:"recurrence_rule"`
}

// UpdateAvailabilityRequest is PATCH /v1/availabilities/:id. Absent fields are unchanged.
type UpdateAvailabilityRequest struct {
	Timezone *string  `json:"timezone" binding:"omitempty,iana_tz"`
	Rules    *Schedule `json:"rules"`
}

// CreateEventRequest is POST /v1/events.
type CreateEventRequest struct {
	SpaceID        string                 `json:"space_id" binding:"required"`
	Title          string                 `json:"title" binding:"required,max=200"`
	Description    string                 `json:"description" binding:"max=2000"`
	Timezone       string                 `json:"timezone" binding:"omitempty,iana_tz"`
	Status         string                 `json:"status" binding:"omitempty,oneof=PLANNED CONFIRMED"`
	Interval       TimeRangeRequest       `json:"interval"`
	RecurrenceRule *RecurrenceRuleRequest `json:"recurrence_rule"`
}

// UpdateEventStatusRequest is PATCH /v1/events/:id/status.
type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PLANNED CONFIRMED CANCELLED"`
}

// DateRangeQuery is the shared start_date/end_date query pair (YYYY-MM-DD, inclusive).
type DateRangeQuery struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}

// Dates parses the pair. Binding has already checked the layout.
func (q DateRangeQuery) Dates() (civil.Date, civil.Date, error) {
	from, err := civil.ParseDate(q.StartDate)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	to, err := civil.ParseDate(q.EndDate)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return from, to, nil
}

// OccurrenceQuery selects one calendar date for single-occurrence removal.
type OccurrenceQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}
