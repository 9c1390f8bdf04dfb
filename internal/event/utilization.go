package event

import (
	"context"
	"fmt"
	"time"

	"github.com/aevon-lab/project-tempo/internal/availability"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/aevon-lab/project-tempo/internal/metrics"
	"github.com/shopspring/decimal"
)

// Report is how much of a space's availability is booked over a date range.
type Report struct {
	SpaceID          string          `json:"space_id"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	Timezone         string          `json:"timezone"`
	AvailableMinutes int64           `json:"available_minutes"`
	BookedMinutes    int64           `json:"booked_minutes"`
	Occurrences      int             `json:"occurrences"`
	Utilization      decimal.Decimal `json:"utilization"`
}

// Utilization computes the booked share of the space's availability over the local
// dates in dr. Only booked time inside availability counts; cancelled events are ignored.
func (s *Service) Utilization(ctx context.Context, spaceID string, dr timeutil.DateRange) (*Report, error) {
	if err := dr.Validate(); err != nil {
		return nil, coreerr.Malformedf("%v", err)
	}
	if days := dr.Days(); days > s.opts.MaxQueryDays {
		return nil, coreerr.Malformedf("date range spans %d days, maximum is %d", days, s.opts.MaxQueryDays)
	}

	ref := v1.SpaceRef(spaceID)
	zone, err := availability.EntityZone(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	loc, err := timeutil.LoadLocation(zone)
	if err != nil {
		return nil, coreerr.Malformedf("%v", err)
	}
	window := dr.In(loc)

	coverage, err := s.availability.Coverage(ctx, s.store, ref, window)
	if err != nil {
		return nil, err
	}
	coverage = interval.Clip(coverage, window.Start, window.End)

	events, err := s.store.FindEvents(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("find events for space %s: %w", spaceID, err)
	}
	blocking := make([]*v1.Event, 0, len(events))
	for _, ev := range events {
		if ev.Blocking() {
			blocking = append(blocking, ev)
		}
	}
	occ, err := availability.CollectIntervals(ctx, s.materializer, blocking, window, s.opts.WorkerCount)
	if err != nil {
		return nil, err
	}
	occ = interval.Clip(occ, window.Start, window.End)
	booked := interval.Intersect(interval.Merge(occ), coverage)

	metrics.ObserveQueryDays(dr.Days())

	report := &Report{
		SpaceID:          spaceID,
		StartDate:        dr.From.String(),
		EndDate:          dr.To.String(),
		Timezone:         zone,
		AvailableMinutes: int64(interval.TotalDuration(coverage) / time.Minute),
		BookedMinutes:    int64(interval.TotalDuration(booked) / time.Minute),
		Occurrences:      len(occ),
		Utilization:      decimal.Zero,
	}
	if report.AvailableMinutes > 0 {
		report.Utilization = decimal.NewFromInt(report.BookedMinutes).
			Div(decimal.NewFromInt(report.AvailableMinutes)).
			Round(4)
	}
	return report, nil
}
