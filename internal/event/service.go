// Package event places events inside space availability and manages them afterwards.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aevon-lab/project-tempo/internal/availability"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
	"github.com/aevon-lab/project-tempo/internal/core/interval"
	"github.com/aevon-lab/project-tempo/internal/core/mutation"
	"github.com/aevon-lab/project-tempo/internal/core/recurrence"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
	"github.com/aevon-lab/project-tempo/internal/core/timeutil"
	"github.com/aevon-lab/project-tempo/internal/metrics"
	"github.com/google/uuid"
)

// Service implements event placement and the event record operations.
type Service struct {
	store        storage.Store
	availability *availability.Service
	materializer recurrence.Materializer
	mutator      mutation.Mutator
	opts         availability.Options
	newID        func() string
	nowFn        func() time.Time
}

// NewService creates a new event service. Coverage is read through avail, and the
// horizon, query and worker limits are taken from it.
func NewService(
	store storage.Store,
	avail *availability.Service,
	materializer recurrence.Materializer,
	mutator mutation.Mutator,
) *Service {
	if store == nil {
		panic("event service requires a non-nil store")
	}
	if avail == nil {
		panic("event service requires a non-nil availability service")
	}

	return &Service{
		store:        store,
		availability: avail,
		materializer: materializer,
		mutator:      mutator,
		opts:         avail.Options(),
		newID:        uuid.NewString,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Create validates a candidate event against its space and persists it.
//
// Every occurrence in the event's active window must lie inside a single merged
// availability interval of the space, and must not overlap an occurrence of another
// non-cancelled event there. Open-ended series are only checked up to HorizonDays
// ahead. The space row stays locked from the first read to the insert.
func (s *Service) Create(ctx context.Context, req v1.CreateEventRequest) (*v1.Event, error) {
	if req.SpaceID == "" {
		return nil, s.observe(coreerr.Malformedf("space_id is required"))
	}
	if !req.Interval.EndDate.After(req.Interval.StartDate) {
		return nil, s.observe(coreerr.Malformedf("interval end_date must be after start_date"))
	}
	d := req.Interval.EndDate.Sub(req.Interval.StartDate).Truncate(time.Minute)
	if d < time.Minute {
		return nil, s.observe(coreerr.Malformedf("interval must be at least one minute long"))
	}
	status := v1.EventStatus(req.Status)
	if status == "" {
		status = v1.EventPlanned
	}
	if status == v1.EventCancelled || !status.Valid() {
		return nil, s.observe(coreerr.Malformedf("invalid initial status %q", req.Status))
	}

	var placed *v1.Event
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		ref := v1.SpaceRef(req.SpaceID)
		if err := tx.LockEntity(ctx, ref); err != nil {
			return availability.LookupError(err, ref.String())
		}

		zone := req.Timezone
		if zone == "" {
			entityZone, err := availability.EntityZone(ctx, tx, ref)
			if err != nil {
				return err
			}
			zone = entityZone
		}
		loc, err := timeutil.LoadLocation(zone)
		if err != nil {
			return coreerr.Malformedf("%v", err)
		}

		sched, err := v1.NewSchedule(v1.NewAnchor(req.Interval.StartDate, d, loc), req.RecurrenceRule.Rule())
		if err != nil {
			return err
		}

		now := s.nowFn()
		candidate := &v1.Event{
			ID:          s.newID(),
			SpaceID:     req.SpaceID,
			Title:       req.Title,
			Description: req.Description,
			Timezone:    zone,
			Rules:       sched,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := candidate.Validate(); err != nil {
			return coreerr.Malformedf("%v", err)
		}

		if err := s.validatePlacement(ctx, tx, candidate, loc); err != nil {
			return err
		}

		if err := tx.CreateEvent(ctx, candidate); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		placed = candidate
		return nil
	})
	if err != nil {
		return nil, s.observe(err)
	}
	s.observe(nil)

	slog.Info("[Placement] Event placed",
		"event_id", placed.ID,
		"space_id", placed.SpaceID,
		"recurring", placed.Rules.IsRecurring())
	return placed, nil
}

// validatePlacement runs the containment and conflict checks for ev over its active
// window, reading through r.
func (s *Service) validatePlacement(ctx context.Context, r storage.Reader, ev *v1.Event, loc *time.Location) error {
	window, err := s.materializer.Expander().ActiveWindow(ev.Rules, loc, s.opts.HorizonDays)
	if err != nil {
		return err
	}

	occ, err := s.materializer.Materialize(ev, window)
	if err != nil {
		return recurrence.AsMalformed(err)
	}
	if len(occ) == 0 {
		return coreerr.Malformedf("event has no occurrences in %s", window)
	}
	interval.Sort(occ)

	ref := v1.SpaceRef(ev.SpaceID)
	coverage, err := s.availability.Coverage(ctx, r, ref, window)
	if err != nil {
		return err
	}
	if len(coverage) == 0 {
		return coreerr.Reject(coreerr.KindNoAvailability,
			"space %s has no availability in %s", ev.SpaceID, window)
	}

	if miss, ok := interval.FirstUncovered(occ, coverage); ok {
		return coreerr.Reject(coreerr.KindOutsideAvailability,
			"occurrence %s is not inside the availability of space %s", miss, ev.SpaceID).
			WithDetail(miss)
	}

	events, err := r.FindEvents(ctx, ev.SpaceID)
	if err != nil {
		return fmt.Errorf("find events for space %s: %w", ev.SpaceID, err)
	}
	blocking := make([]*v1.Event, 0, len(events))
	for _, other := range events {
		if other.ID == ev.ID || !other.Blocking() {
			continue
		}
		blocking = append(blocking, other)
	}

	existing, err := availability.CollectIntervals(ctx, s.materializer, blocking, window, s.opts.WorkerCount)
	if err != nil {
		return err
	}
	if conflict, ok := interval.FirstConflict(existing, occ); ok {
		return coreerr.Reject(coreerr.KindEventConflict,
			"occurrence %s conflicts with event %s", conflict.B, conflict.A.SourceID).
			WithDetail(conflict)
	}
	return nil
}

// Get returns one event.
func (s *Service) Get(ctx context.Context, id string) (*v1.Event, error) {
	ev, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, availability.LookupError(err, "event "+id)
	}
	return ev, nil
}

// List returns every event, or the events of one space.
func (s *Service) List(ctx context.Context, spaceID string) ([]*v1.Event, error) {
	if spaceID == "" {
		return s.store.ListEvents(ctx)
	}
	if _, err := s.store.GetSpace(ctx, spaceID); err != nil {
		return nil, availability.LookupError(err, "space:"+spaceID)
	}
	return s.store.FindEvents(ctx, spaceID)
}

// UpdateStatus changes an event's lifecycle status. Moving a cancelled event back to a
// blocking status re-runs placement validation, since its slot may have been taken.
func (s *Service) UpdateStatus(ctx context.Context, id string, status v1.EventStatus) (*v1.Event, error) {
	if !status.Valid() {
		return nil, coreerr.Malformedf("invalid status %q", status)
	}

	var updated *v1.Event
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		cur, err := lockEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.Status == status {
			updated = cur
			return nil
		}

		next := cur.Clone()
		next.Status = status
		if !cur.Blocking() && next.Blocking() {
			loc, err := timeutil.LoadLocation(next.Timezone)
			if err != nil {
				return coreerr.Malformedf("%v", err)
			}
			if err := s.validatePlacement(ctx, tx, next, loc); err != nil {
				return err
			}
		}

		next.UpdatedAt = s.nowFn()
		if err := tx.UpdateEvent(ctx, next); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[Placement] Event status changed", "event_id", id, "status", updated.Status)
	return updated, nil
}

// lockEvent takes the space lock before the event row, the order placement uses.
func lockEvent(ctx context.Context, tx storage.Tx, id string) (*v1.Event, error) {
	peek, err := tx.GetEvent(ctx, id)
	if err != nil {
		return nil, availability.LookupError(err, "event "+id)
	}
	if err := tx.LockEntity(ctx, v1.SpaceRef(peek.SpaceID)); err != nil {
		return nil, availability.LookupError(err, "space:"+peek.SpaceID)
	}
	cur, err := tx.LockEvent(ctx, id)
	if err != nil {
		return nil, availability.LookupError(err, "event "+id)
	}
	return cur, nil
}

// Delete removes an event wholesale.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := lockEvent(ctx, tx, id); err != nil {
			return err
		}
		return tx.DeleteEvent(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("[Placement] Event deleted", "event_id", id)
	return nil
}

// RemoveOccurrence removes the occurrence starting on date, a local date in the event's
// zone, deleting, shifting, truncating or splitting the event in one transaction.
func (s *Service) RemoveOccurrence(ctx context.Context, id string, date civil.Date) (v1.RemovalResult[v1.Event], error) {
	var res v1.RemovalResult[v1.Event]
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		cur, err := lockEvent(ctx, tx, id)
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
			return tx.DeleteEvent(ctx, cur.ID)
		}

		now := s.nowFn()
		if sched, ok := plan.Updated.Get(); ok {
			head := cur.Clone()
			head.Rules = sched
			head.UpdatedAt = now
			if err := tx.UpdateEvent(ctx, head); err != nil {
				return fmt.Errorf("update event: %w", err)
			}
			res.Updated = head
		}
		if sched, ok := plan.Created.Get(); ok {
			tail := cur.Clone()
			tail.ID = s.newID()
			tail.Rules = sched
			tail.CreatedAt = now
			tail.UpdatedAt = now
			if err := tx.CreateEvent(ctx, tail); err != nil {
				return fmt.Errorf("create event: %w", err)
			}
			res.Created = tail
		}
		return nil
	})
	if err != nil {
		return v1.RemovalResult[v1.Event]{}, err
	}

	metrics.ObserveRemoval("event", string(res.Action))
	slog.Info("[Placement] Removed occurrence",
		"event_id", id,
		"date", date.String(),
		"action", res.Action)
	return res, nil
}

// observe records the placement outcome and returns err unchanged.
func (s *Service) observe(err error) error {
	switch r, ok := coreerr.AsRejection(err); {
	case err == nil:
		metrics.ObservePlacement(metrics.OutcomeAccepted, "")
	case ok:
		slog.Warn("[Placement] Rejected", "kind", r.Kind, "reason", r.Message)
		metrics.ObservePlacement(metrics.OutcomeRejected, string(r.Kind))
	default:
		slog.Error("[Placement] Failed", "error", err)
		metrics.ObservePlacement(metrics.OutcomeError, "")
	}
	return err
}
