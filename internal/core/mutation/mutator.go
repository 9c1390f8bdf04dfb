// Package mutation plans the removal of one calendar date's occurrence from a record
// without discarding the rest of its series. Planning is pure; callers apply the plan
// to the record store inside one transaction.
package mutation

import (
	"time"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/samber/mo"
)

// Plan is the rewrite that removes one occurrence.
type Plan struct {
	Action v1.RemovalAction

	// Updated replaces the original record's schedule (shift, truncate, split head).
	Updated mo.Option[v1.Schedule]

	// Created is the schedule of the new record holding the split tail.
	Created mo.Option[v1.Schedule]
}

// Mutator classifies a target date within a series and plans the rewrite.
type Mutator struct {
	expander recurrence.Expander
}

func NewMutator(expander recurrence.Expander) Mutator {
	return Mutator{expander: expander}
}

// PlanRemoval decides how to remove the occurrence starting on target (a local date in
// loc) from s. It fails with a no_occurrence rejection when nothing starts that day.
//
// The target is the first occurrence when it matches the series start and the last when
// nothing follows it, so classification never enumerates the whole series.
func (m Mutator) PlanRemoval(s v1.Schedule, loc *time.Location, target civil.Date) (Plan, error) {
	if !target.IsValid() {
		return Plan{}, coreerr.Malformedf("invalid target date %s", target)
	}
	anchor := s.Anchor

	rule, recurring := s.Recurrence.Get()
	if !recurring {
		if anchor.ValidFrom.Date != target {
			return Plan{}, noOccurrence(target)
		}
		return Plan{Action: v1.RemovalDeleted}, nil
	}

	_, ok, err := m.expander.OnDate(rule, anchor.ValidFrom, loc, target)
	if err != nil {
		return Plan{}, err
	}
	if !ok {
		return Plan{}, noOccurrence(target)
	}

	first, ok, err := m.expander.First(rule, anchor.ValidFrom, loc)
	if err != nil {
		return Plan{}, err
	}
	if !ok {
		return Plan{}, noOccurrence(target)
	}
	isFirst := timeutil.LocalDate(first, loc) == target

	next, hasNext, err := m.expander.Next(rule, anchor.ValidFrom, loc, timeutil.NextDayStart(target, loc))
	if err != nil {
		return Plan{}, err
	}

	switch {
	case isFirst:
		if !hasNext {
			return Plan{Action: v1.RemovalDeleted}, nil
		}
		shifted, err := m.tail(s, rule, loc, next)
		if err != nil {
			return Plan{}, err
		}
		return Plan{Action: v1.RemovalShifted, Updated: mo.Some(shifted)}, nil

	case !hasNext:
		head, err := truncate(s, rule, target)
		if err != nil {
			return Plan{}, err
		}
		return Plan{Action: v1.RemovalTruncated, Updated: mo.Some(head)}, nil

	default:
		head, err := truncate(s, rule, target)
		if err != nil {
			return Plan{}, err
		}
		tail, err := m.tail(s, rule, loc, next)
		if err != nil {
			return Plan{}, err
		}
		return Plan{Action: v1.RemovalSplit, Updated: mo.Some(head), Created: mo.Some(tail)}, nil
	}
}

// truncate ends the series on the day before target. Count is replaced by the
// equivalent until.
func truncate(s v1.Schedule, rule v1.RecurrenceRule, target civil.Date) (v1.Schedule, error) {
	head := rule.Clone()
	head.Until = mo.Some(target.AddDays(-1))
	head.Count = mo.None[int]()
	return v1.Recurring(s.Anchor, head)
}

// tail restarts the series at next, keeping time of day, duration and any until.
// A count is reduced by the occurrences that precede next.
func (m Mutator) tail(s v1.Schedule, rule v1.RecurrenceRule, loc *time.Location, next time.Time) (v1.Schedule, error) {
	rest := rule.Clone()
	if count, ok := rule.Count.Get(); ok {
		idx, err := m.expander.Ordinal(rule, s.Anchor.ValidFrom, loc, next)
		if err != nil {
			return v1.Schedule{}, err
		}
		if idx >= count {
			return v1.Schedule{}, coreerr.Malformedf("next occurrence %s is outside the bounded series", next.Format(time.RFC3339))
		}
		rest.Count = mo.Some(count - idx)
	}
	anchor := s.Anchor.Rebase(timeutil.LocalDate(next, loc), loc)
	return v1.Recurring(anchor, rest)
}

func noOccurrence(target civil.Date) *coreerr.Rejection {
	return coreerr.Reject(coreerr.KindNoOccurrence, "no occurrence on %s", target)
}
