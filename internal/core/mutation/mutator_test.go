package mutation

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

func date(m time.Month, d int) civil.Date {
	return civil.Date{Year: 2025, Month: m, Day: d}
}

func weekly(t *testing.T, configure func(*v1.RecurrenceRule)) v1.Schedule {
	t.Helper()
	rule := v1.RecurrenceRule{
		Frequency: v1.FrequencyWeekly,
		Interval:  1,
		ByWeekday: []v1.Weekday{v1.Monday, v1.Wednesday, v1.Friday},
	}
	if configure != nil {
		configure(&rule)
	}
	anchor := v1.NewAnchor(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), time.Hour, time.UTC)
	s, err := v1.Recurring(anchor, rule)
	require.NoError(t, err)
	return s
}

func occurrenceDates(t *testing.T, s v1.Schedule, r timeutil.DateRange) []string {
	t.Helper()
	rec := &v1.Event{ID: "e", Timezone: "UTC", Rules: s}
	got, err := recurrence.NewMaterializer(recurrence.NewExpander(0)).Materialize(rec, r.In(time.UTC))
	require.NoError(t, err)
	out := make([]string, len(got))
	for i, iv := range got {
		out[i] = timeutil.LocalDate(iv.Start, time.UTC).String()
	}
	return out
}

func newMutator() Mutator {
	return NewMutator(recurrence.NewExpander(0))
}

func TestPlanRemoval_SplitMiddle(t *testing.T) {
	s := weekly(t, func(r *v1.RecurrenceRule) { r.Until = mo.Some(date(1, 10)) })

	plan, err := newMutator().PlanRemoval(s, time.UTC, date(1, 8))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalSplit, plan.Action)

	head := plan.Updated.MustGet()
	require.Equal(t, mo.Some(date(1, 7)), head.Recurrence.MustGet().Until)
	require.Equal(t, s.Anchor, head.Anchor)

	tail := plan.Created.MustGet()
	require.Equal(t, "2025-01-10T09:00:00", tail.Anchor.ValidFrom.String())
	require.Equal(t, s.Anchor.StartTime, tail.Anchor.StartTime)
	require.Equal(t, s.Anchor.DurationMinutes, tail.Anchor.DurationMinutes)
	require.Equal(t, mo.Some(date(1, 10)), tail.Recurrence.MustGet().Until)

	month := timeutil.DateRange{From: date(1, 1), To: date(1, 31)}
	require.Equal(t, []string{"2025-01-06"}, occurrenceDates(t, head, month))
	require.Equal(t, []string{"2025-01-10"}, occurrenceDates(t, tail, month))
}

func TestPlanRemoval_SplitCountedSeriesKeepsRemainingCount(t *testing.T) {
	s := weekly(t, func(r *v1.RecurrenceRule) { r.Count = mo.Some(6) })

	plan, err := newMutator().PlanRemoval(s, time.UTC, date(1, 10))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalSplit, plan.Action)

	head := plan.Updated.MustGet().Recurrence.MustGet()
	require.False(t, head.Count.IsPresent())
	require.Equal(t, mo.Some(date(1, 9)), head.Until)

	tail := plan.Created.MustGet()
	require.Equal(t, mo.Some(3), tail.Recurrence.MustGet().Count)

	month := timeutil.DateRange{From: date(1, 1), To: date(1, 31)}
	require.Equal(t, []string{"2025-01-06", "2025-01-08"}, occurrenceDates(t, plan.Updated.MustGet(), month))
	require.Equal(t, []string{"2025-01-13", "2025-01-15", "2025-01-17"}, occurrenceDates(t, tail, month))
}

func TestPlanRemoval_ShiftFirst(t *testing.T) {
	s := weekly(t, func(r *v1.RecurrenceRule) { r.Count = mo.Some(3) })

	plan, err := newMutator().PlanRemoval(s, time.UTC, date(1, 6))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalShifted, plan.Action)
	require.False(t, plan.Created.IsPresent())

	shifted := plan.Updated.MustGet()
	require.Equal(t, "2025-01-08T09:00:00", shifted.Anchor.ValidFrom.String())
	require.Equal(t, mo.Some(2), shifted.Recurrence.MustGet().Count)

	month := timeutil.DateRange{From: date(1, 1), To: date(1, 31)}
	require.Equal(t, []string{"2025-01-08", "2025-01-10"}, occurrenceDates(t, shifted, month))
}

func TestPlanRemoval_TruncateLast(t *testing.T) {
	s := weekly(t, func(r *v1.RecurrenceRule) { r.Until = mo.Some(date(1, 10)) })

	plan, err := newMutator().PlanRemoval(s, time.UTC, date(1, 10))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalTruncated, plan.Action)
	require.Equal(t, mo.Some(date(1, 9)), plan.Updated.MustGet().Recurrence.MustGet().Until)
}

func TestPlanRemoval_DeleteSoleOccurrence(t *testing.T) {
	s := weekly(t, func(r *v1.RecurrenceRule) { r.Count = mo.Some(1) })

	plan, err := newMutator().PlanRemoval(s, time.UTC, date(1, 6))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalDeleted, plan.Action)
	require.False(t, plan.Updated.IsPresent())
	require.False(t, plan.Created.IsPresent())
}

func TestPlanRemoval_UnboundedFarMiddle(t *testing.T) {
	s := weekly(t, nil)

	plan, err := NewMutator(recurrence.NewExpander(3)).PlanRemoval(s, time.UTC, date(3, 3))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalSplit, plan.Action)

	tail := plan.Created.MustGet()
	require.Equal(t, "2025-03-05T09:00:00", tail.Anchor.ValidFrom.String())
	require.False(t, tail.Recurrence.MustGet().Bounded())
}

func TestPlanRemoval_DecadesLongSeries(t *testing.T) {
	anchor := v1.NewAnchor(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), time.Hour, time.UTC)
	daily := v1.RecurrenceRule{Frequency: v1.FrequencyDaily, Interval: 1}
	until := civil.Date{Year: 2055, Month: time.January, Day: 1}

	tests := []struct {
		name   string
		rule   func(v1.RecurrenceRule) v1.RecurrenceRule
		target civil.Date
		action v1.RemovalAction
	}{
		{
			name:   "middle of until series splits",
			rule:   func(r v1.RecurrenceRule) v1.RecurrenceRule { r.Until = mo.Some(until); return r },
			target: date(1, 8),
			action: v1.RemovalSplit,
		},
		{
			name:   "last day of until series truncates",
			rule:   func(r v1.RecurrenceRule) v1.RecurrenceRule { r.Until = mo.Some(until); return r },
			target: until,
			action: v1.RemovalTruncated,
		},
		{
			name:   "first of until series shifts",
			rule:   func(r v1.RecurrenceRule) v1.RecurrenceRule { r.Until = mo.Some(until); return r },
			target: date(1, 6),
			action: v1.RemovalShifted,
		},
		{
			name:   "counted series beyond the expansion cap splits",
			rule:   func(r v1.RecurrenceRule) v1.RecurrenceRule { r.Count = mo.Some(500); return r },
			target: date(1, 8),
			action: v1.RemovalSplit,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := v1.Recurring(anchor, tc.rule(daily))
			require.NoError(t, err)

			plan, err := NewMutator(recurrence.NewExpander(100)).PlanRemoval(s, time.UTC, tc.target)
			require.NoError(t, err)
			require.Equal(t, tc.action, plan.Action)
		})
	}

	counted, err := v1.Recurring(anchor, v1.RecurrenceRule{Frequency: v1.FrequencyDaily, Interval: 1, Count: mo.Some(500)})
	require.NoError(t, err)
	plan, err := NewMutator(recurrence.NewExpander(100)).PlanRemoval(counted, time.UTC, date(1, 8))
	require.NoError(t, err)
	require.Equal(t, mo.Some(497), plan.Created.MustGet().Recurrence.MustGet().Count)
}

func TestPlanRemoval_NonRecurring(t *testing.T) {
	anchor := v1.NewAnchor(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC), time.Hour, time.UTC)
	s, err := v1.NonRecurring(anchor)
	require.NoError(t, err)

	plan, err := newMutator().PlanRemoval(s, time.UTC, date(1, 6))
	require.NoError(t, err)
	require.Equal(t, v1.RemovalDeleted, plan.Action)

	_, err = newMutator().PlanRemoval(s, time.UTC, date(1, 7))
	require.ErrorIs(t, err, coreerr.ErrMalformed)
	r, ok := coreerr.AsRejection(err)
	require.True(t, ok)
	require.Equal(t, coreerr.KindNoOccurrence, r.Kind)
}

func TestPlanRemoval_NoOccurrenceOnDate(t *testing.T) {
	s := weekly(t, nil)

	_, err := newMutator().PlanRemoval(s, time.UTC, date(1, 7))
	r, ok := coreerr.AsRejection(err)
	require.True(t, ok)
	require.Equal(t, coreerr.KindNoOccurrence, r.Kind)
}
