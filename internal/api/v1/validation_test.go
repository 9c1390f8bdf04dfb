package v1

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newBindingValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, registerOn(v))
	return v
}

func TestRequestValidation(t *testing.T) {
	v := newBindingValidator(t)
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	valid := CreateAvailabilityRequest{
		SpaceID:  "space-1",
		Timezone: "Europe/Berlin",
		Rules: AvailabilityRulesRequest{
			Intervals: []TimeRangeRequest{{StartDate: start, EndDate: start.Add(time.Hour)}},
			RecurrenceRule: &RecurrenceRuleRequest{
				Frequency: "WEEKLY",
				ByWeekday: []string{"MO", "WE"},
			},
		},
	}
	require.NoError(t, v.Struct(valid))

	tests := []struct {
		name   string
		mutate func(r *CreateAvailabilityRequest)
	}{
		{
			name:   "both owners",
			mutate: func(r *CreateAvailabilityRequest) { r.VenueID = "venue-1" },
		},
		{
			name:   "no owner",
			mutate: func(r *CreateAvailabilityRequest) { r.SpaceID = "" },
		},
		{
			name:   "unknown zone",
			mutate: func(r *CreateAvailabilityRequest) { r.Timezone = "Mars/Olympus" },
		},
		{
			name:   "unknown frequency",
			mutate: func(r *CreateAvailabilityRequest) { r.Rules.RecurrenceRule.Frequency = "HOURLY" },
		},
		{
			name:   "unknown weekday",
			mutate: func(r *CreateAvailabilityRequest) { r.Rules.RecurrenceRule.ByWeekday = []string{"XX"} },
		},
		{
			name: "end before start",
			mutate: func(r *CreateAvailabilityRequest) {
				r.Rules.Intervals[0].EndDate = start.Add(-time.Hour)
			},
		},
		{
			name:   "no intervals",
			mutate: func(r *CreateAvailabilityRequest) { r.Rules.Intervals = nil },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			rule := *valid.Rules.RecurrenceRule
			req.Rules.RecurrenceRule = &rule
			req.Rules.Intervals = append([]TimeRangeRequest(nil), valid.Rules.Intervals...)

			tc.mutate(&req)
			require.Error(t, v.Struct(req))
		})
	}
}

func TestRegisterValidations_Idempotent(t *testing.T) {
	require.NoError(t, RegisterValidations())
	require.NoError(t, RegisterValidations())
}
