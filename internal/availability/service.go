// Package availability answers interval queries over venue and space availability and
// manages availability records.
package availability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/mutation"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/aevon-lab/project-tempo/internal/metrics"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

const (
	DefaultHorizonDays  = 365
	DefaultMaxQueryDays = 366
	DefaultWorkerCount  = 8
)

// Options tunes validation horizons and query limits.
type Options struct {
	// HorizonDays bounds overlap validation for open-ended series.
	HorizonDays int

	// MaxQueryDays caps the width of an interval query.
	MaxQueryDays int

	// WorkerCount bounds concurrent materialization per request.
	WorkerCount int
}

func (o Options) withDefaults() Options {
	if o.HorizonDays <= 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	if o.MaxQueryDays <= 0 {
		o.MaxQueryDays = DefaultMaxQueryDays
	}
	if o.WorkerCount <= 0 {
		o.WorkerCount = DefaultWorkerCount
	}
	return o
}

// Service implements the availability query and record operations.
type Service struct {
	store        storage.Store
	materializer recurrence.Materializer
	mutator      mutation.Mutator
	opts         Options
	newID        func() string
	nowFn        func() time.Time
}

// NewService creates a new availability service.
func NewService(store storage.Store, materializer recurrence.Materializer, mutator mutation.Mutator, opts Options) *Service {
	if store == nil {
		panic("availability service requires a non-nil store")
	}

	return &Service{
		store:        store,
		materializer: materializer,
		mutator:      mutator,
		opts:         opts.withDefaults(),
		newID:        uuid.NewString,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Options returns the effective options, defaults applied.
func (s *Service) Options() Options {
	return s.opts
}

// Intervals returns the raw occurrences of every availability record owned by ref over
// the dates in dr, sorted by start. The dates are resolved in the entity's zone and the
// window is widened to whole UTC days. Source ids are kept so callers can attribute
// each occurrence; use Coverage or interval.Merge for containment.
func (s *Service) Intervals(ctx context.Context, ref v1.EntityRef, dr timeutil.DateRange) ([]interval.Interval, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if err := dr.Validate(); err != nil {
		return nil, coreerr.Malformedf("%v", err)
	}
	if days := dr.Days(); days > s.opts.MaxQueryDays {
		return nil, coreerr.Malformedf("date range spans %d days, maximum is %d", days, s.opts.MaxQueryDays)
	}

	zone, err := EntityZone(ctx, s.store, ref)
	if err != nil {
		return nil, err
	}
	loc, err := timeutil.LoadLocation(zone)
	if err != nil {
		return nil, coreerr.Malformedf("%v", err)
	}

	records, err := s.store.FindAvailabilities(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("find availabilities for %s: %w", ref, err)
	}

	metrics.ObserveQueryDays(dr.Days())
	return CollectIntervals(ctx, s.materializer, records, dr.Padded(loc), s.opts.WorkerCount)
}

// Coverage returns the merged availability of ref over window, read through r so that
// callers inside a transaction see their own snapshot.
func (s *Service) Coverage(ctx context.Context, r storage.Reader, ref v1.EntityRef, window timeutil.Window) ([]interval.Interval, error) {
	records, err := r.FindAvailabilities(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("find availabilities for %s: %w", ref, err)
	}
	occ, err := CollectIntervals(ctx, s.materializer, records, window, s.opts.WorkerCount)
	if err != nil {
		return nil, err
	}
	return interval.Merge(occ), nil
}

// Create turns a list of concrete intervals into availability records.
//
// With a recurrence rule, intervals sharing the same local start time, end time and
// duration form one record anchored at the group's earliest start. Without one, every
// interval is its own record. The submission is all-or-nothing: any overlap with
// existing availability of the entity, or between the new records, rejects it.
func (s *Service) Create(ctx context.Context, req v1.CreateAvailabilityRequest) ([]*v1.Availability, error) {
	ref, err := v1.RefOf(req.VenueID, req.SpaceID)
	if err != nil {
		s.observe(err)
		return nil, err
	}
	if len(req.Rules.Intervals) == 0 {
		err := coreerr.Malformedf("at least one interval is required")
		s.observe(err)
		return nil, err
	}
	rule := req.Rules.RecurrenceRule.Rule()

	var created []*v1.Availability
	err = s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.LockEntity(ctx, ref); err != nil {
			return LookupError(err, ref.String())
		}

		zone := req.Timezone
		if zone == "" {
			entityZone, err := EntityZone(ctx, tx, ref)
			if err != nil {
				return err
			}
			zone = entityZone
		}
		loc, err := timeutil.LoadLocation(zone)
		if err != nil {
			return coreerr.Malformedf("%v", err)
		}

		records, err := s.build(ref, zone, loc, req.Rules.Intervals, rule)
		if err != nil {
			return err
		}

		if err := s.validateOverlaps(ctx, tx, ref, records, ""); err != nil {
			return err
		}

		for _, rec := range records {
			if err := tx.CreateAvailability(ctx, rec); err != nil {
				return fmt.Errorf("create availability: %w", err)
			}
		}
		created = records
		return nil
	})
	s.observe(err)
	if err != nil {
		return nil, err
	}

	slog.Info("[Availability] Created records", "owner", ref.String(), "count", len(created))
	return created, nil
}

// anchorGroup collects intervals with identical local wall-clock shape.
type anchorGroup struct {
	anchor v1.AnchorInterval
	first  time.Time
}

func (s *Service) build(
	ref v1.EntityRef,
	zone string,
	loc *time.Location,
	ranges []v1.TimeRangeRequest,
	rule mo.Option[v1.RecurrenceRule],
) ([]*v1.Availability, error) {
	var groups []*anchorGroup
	byKey := make(map[string]*anchorGroup)

	for i, tr := range ranges {
		if !tr.EndDate.After(tr.StartDate) {
			return nil, coreerr.Malformedf("interval %d: end_date must be after start_date", i)
		}
		d := tr.EndDate.Sub(tr.StartDate).Truncate(time.Minute)
		if d < time.Minute {
			return nil, coreerr.Malformedf("interval %d: duration must be at least one minute", i)
		}
		anchor := v1.NewAnchor(tr.StartDate, d, loc)

		if !rule.IsPresent() {
			groups = append(groups, &anchorGroup{anchor: anchor, first: tr.StartDate})
			continue
		}

		key := fmt.Sprintf("%s-%s-%d", anchor.StartTime, anchor.EndTime, anchor.DurationMinutes)
		g, ok := byKey[key]
		if !ok {
			g = &anchorGroup{anchor: anchor, first: tr.StartDate}
			byKey[key] = g
			groups = append(groups, g)
			continue
		}
		if tr.StartDate.Before(g.first) {
			g.anchor = anchor
			g.first = tr.StartDate
		}
	}

	now := s.nowFn()
	out := make([]*v1.Availability, 0, len(groups))
	for _, g := range groups {
		sched, err := v1.NewSchedule(g.anchor, rule)
		if err != nil {
			return nil, err
		}
		rec := &v1.Availability{
			ID:        s.newID(),
			Timezone:  zone,
			Rules:     sched.Clone(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if ref.Kind == v1.EntityVenue {
			rec.VenueID = ref.ID
		} else {
			rec.SpaceID = ref.ID
		}
		out = append(out, rec)
	}
	return out, nil
}

// validateOverlaps rejects candidates whose occurrences overlap, by a positive length,
// the occurrences of another record of the same owner within HorizonDays of the
// candidate's start. Touching occurrences are allowed. The record named by exclude is
// left out of the existing set; it is being replaced by one of the candidates.
func (s *Service) validateOverlaps(
	ctx context.Context,
	r storage.Reader,
	ref v1.EntityRef,
	candidates []*v1.Availability,
	exclude string,
) error {
	if len(candidates) == 0 {
		return nil
	}

	newIDs := make(map[string]bool, len(candidates))
	var window timeutil.Window
	for i, c := range candidates {
		newIDs[c.ID] = true

		loc, err := timeutil.LoadLocation(c.Timezone)
		if err != nil {
			return coreerr.Malformedf("%v", err)
		}
		start := c.Rules.Anchor.Start(loc)
		w := timeutil.Window{Start: start, End: start.AddDate(0, 0, s.opts.HorizonDays)}
		if i == 0 {
			window = w
		} else {
			window = window.Union(w)
		}
	}

	existing, err := r.FindAvailabilities(ctx, ref)
	if err != nil {
		return fmt.Errorf("find availabilities for %s: %w", ref, err)
	}

	all := make([]*v1.Availability, 0, len(existing)+len(candidates))
	for _, rec := range existing {
		if rec.ID == exclude || newIDs[rec.ID] {
			continue
		}
		all = append(all, rec)
	}
	all = append(all, candidates...)

	occ, err := CollectIntervals(ctx, s.materializer, all, window, s.opts.WorkerCount)
	if err != nil {
		return err
	}

	for _, o := range interval.DetectOverlaps(occ) {
		if o.Touching() || o.A.SourceID == o.B.SourceID {
			continue
		}
		if !newIDs[o.A.SourceID] && !newIDs[o.B.SourceID] {
			continue
		}
		return coreerr.Reject(coreerr.KindAvailabilityOverlap,
			"availability intervals overlap: %s and %s", o.A, o.B).WithDetail(o)
	}
	return nil
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id string) (*v1.Availability, error) {
	rec, err := s.store.GetAvailability(ctx, id)
	if err != nil {
		return nil, LookupError(err, "availability "+id)
	}
	return rec, nil
}

// List returns every record, or only those owned by the given venue or space.
func (s *Service) List(ctx context.Context, venueID, spaceID string) ([]*v1.Availability, error) {
	if venueID == "" && spaceID == "" {
		return s.store.ListAvailabilities(ctx)
	}
	ref, err := v1.RefOf(venueID, spaceID)
	if err != nil {
		return nil, err
	}
	return s.store.FindAvailabilities(ctx, ref)
}

// Update replaces the timezone and/or rules of a record and re-validates it against
// the other records of its owner.
func (s *Service) Update(ctx context.Context, id string, req v1.UpdateAvailabilityRequest) (*v1.Availability, error) {
	var updated *v1.Availability
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		cur, err := lockAvailability(ctx, tx, id)
		if err != nil {
			return err
		}

		next := cur.Clone()
		if req.Timezone != nil {
			if _, err := timeutil.LoadLocation(*req.Timezone); err != nil {
				return coreerr.Malformedf("%v", err)
			}
			next.Timezone = *req.Timezone
		}
		if req.Rules != nil {
			sched, err := v1.NewSchedule(req.Rules.Anchor, req.Rules.Recurrence)
			if err != nil {
				return err
			}
			next.Rules = sched.Clone()
		}

		if err := s.validateOverlaps(ctx, tx, cur.Owner(), []*v1.Availability{next}, ""); err != nil {
			return err
		}

		next.UpdatedAt = s.nowFn()
		if err := tx.UpdateAvailability(ctx, next); err != nil {
			return fmt.Errorf("update availability: %w", err)
		}
		updated = next
		return nil
	})
	s.observe(err)
	if err != nil {
		return nil, err
	}

	slog.Info("[Availability] Updated record", "availability_id", id)
	return updated, nil
}

// lockAvailability locks the record's owner and then the record itself. Placement holds
// the owner lock while it reads coverage, so any change that shrinks coverage must
// queue behind it.
func lockAvailability(ctx context.Context, tx storage.Tx, id string) (*v1.Availability, error) {
	peek, err := tx.GetAvailability(ctx, id)
	if err != nil {
		return nil, LookupError(err, "availability "+id)
	}
	if err := tx.LockEntity(ctx, peek.Owner()); err != nil {
		return nil, LookupError(err, peek.Owner().String())
	}
	cur, err := tx.LockAvailability(ctx, id)
	if err != nil {
		return nil, LookupError(err, "availability "+id)
	}
	return cur, nil
}

// Delete removes a record wholesale.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := lockAvailability(ctx, tx, id); err != nil {
			return err
		}
		return tx.DeleteAvailability(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("[Availability] Deleted record", "availability_id", id)
	return nil
}

// RemoveOccurrence removes the occurrence starting on date, a local date in the record's
// zone. The record is deleted, shifted, truncated or split in one transaction.
func (s *Service) RemoveOccurrence(ctx context.Context, id string, date civil.Date) (v1.RemovalResult[v1.Availability], error) {
	var res v1.RemovalResult[v1.Availability]
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		cur, err := lockAvailability(ctx, tx, id)
		if err != nil {
			return err
		}
		loc, err := timeutil.LoadLocation(cur.Timezone)
		if err != nil {
			return coreerr.Malformedf("%v", err)
		}

		plan, err := s.mutator.PlanRemoval(cur.Rules, loc, date)
		if err != nil {
			return recurrence.AsMalformed(err)
		}
		res.Action = plan.Action

		if plan.Action == v1.RemovalDeleted {
			res.DeletedID = cur.ID
			return tx.DeleteAvailability(ctx, cur.ID)
		}

		now := s.nowFn()
		if sched, ok := plan.Updated.Get(); ok {
			head := cur.Clone()
			head.Rules = sched
			head.UpdatedAt = now
			if err := tx.UpdateAvailability(ctx, head); err != nil {
				return fmt.Errorf("update availability: %w", err)
			}
			res.Updated = head
		}
		if sched, ok := plan.Created.Get(); ok {
			tail := cur.Clone()
			tail.ID = s.newID()
			tail.Rules = sched
			tail.CreatedAt = now
			tail.UpdatedAt = now
			if err := tx.CreateAvailability(ctx, tail); err != nil {
				return fmt.Errorf("create availability: %w", err)
			}
			res.Created = tail
		}
		return nil
	})
	if err != nil {
		return v1.RemovalResult[v1.Availability]{}, err
	}

	metrics.ObserveRemoval("availability", string(res.Action))
	slog.Info("[Availability] Removed occurrence",
		"availability_id", id,
		"date", date.String(),
		"action", res.Action)
	return res, nil
}

func (s *Service) observe(err error) {
	switch r, ok := coreerr.AsRejection(err); {
	case err == nil:
		metrics.ObserveAvailabilitySubmission(metrics.OutcomeAccepted, "")
	case ok:
		slog.Warn("[Availability] Rejected", "kind", r.Kind, "reason", r.Message)
		metrics.ObserveAvailabilitySubmission(metrics.OutcomeRejected, string(r.Kind))
	default:
		slog.Error("[Availability] Failed", "error", err)
		metrics.ObserveAvailabilitySubmission(metrics.OutcomeError, "")
	}
}
