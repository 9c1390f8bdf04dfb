package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
)

// tx implements storage.Tx on one *sql.Tx.
type tx struct {
	reader
	tx *sql.Tx
}

var _ storage.Tx = (*tx)(nil)

// LockEntity takes SELECT ... FOR UPDATE on the venue or space row.
func (t *tx) LockEntity(ctx context.Context, ref v1.EntityRef) error {
	var query string
	switch ref.Kind {
	case v1.EntityVenue:
		query = queryLockVenue
	case v1.EntitySpace:
		query = queryLockSpace
	default:
		return fmt.Errorf("unknown entity type %q", ref.Kind)
	}

	var id string
	if err := t.tx.QueryRowContext(ctx, query, ref.ID).Scan(&id); err != nil {
		return notFound(string(ref.Kind), ref.ID, err)
	}
	return nil
}

func (t *tx) LockAvailability(ctx context.Context, id string) (*v1.Availability, error) {
	a, err := scanAvailabilityRow(t.tx.QueryRowContext(ctx, queryLockAvailability, id))
	if err != nil {
		return nil, notFound("availability", id, err)
	}
	return a, nil
}

func (t *tx) LockEvent(ctx context.Context, id string) (*v1.Event, error) {
	e, err := scanEventRow(t.tx.QueryRowContext(ctx, queryLockEvent, id))
	if err != nil {
		return nil, notFound("event", id, err)
	}
	return e, nil
}

func (t *tx) CreateAvailability(ctx context.Context, a *v1.Availability) error {
	rules, err := marshalRules(a.Rules)
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, queryInsertAvailability,
		a.ID,
		nullable(a.VenueID),
		nullable(a.SpaceID),
		a.Timezone,
		rules,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert availability %q: %w", a.ID, err)
	}
	if err := expectOneRow(res, "availability", a.ID, storage.ErrDuplicate); err != nil {
		return err
	}
	slog.Debug("[Postgres] Created availability", "availability_id", a.ID, "owner", a.Owner().String())
	return nil
}

func (t *tx) UpdateAvailability(ctx context.Context, a *v1.Availability) error {
	rules, err := marshalRules(a.Rules)
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, queryUpdateAvailability, a.ID, a.Timezone, rules, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update availability %q: %w", a.ID, err)
	}
	return expectOneRow(res, "availability", a.ID, storage.ErrNotFound)
}

func (t *tx) DeleteAvailability(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, queryDeleteAvailability, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability %q: %w", id, err)
	}
	return expectOneRow(res, "availability", id, storage.ErrNotFound)
}

func (t *tx) CreateEvent(ctx context.Context, e *v1.Event) error {
	rules, err := marshalRules(e.Rules)
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, queryInsertEvent,
		e.ID,
		e.SpaceID,
		e.Title,
		e.Description,
		e.Timezone,
		rules,
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event %q: %w", e.ID, err)
	}
	if err := expectOneRow(res, "event", e.ID, storage.ErrDuplicate); err != nil {
		return err
	}
	slog.Debug("[Postgres] Created event", "event_id", e.ID, "space_id", e.SpaceID)
	return nil
}

func (t *tx) UpdateEvent(ctx context.Context, e *v1.Event) error {
	rules, err := marshalRules(e.Rules)
	if err != nil {
		return err
	}
	res, err := t.tx.ExecContext(ctx, queryUpdateEvent,
		e.ID,
		e.Title,
		e.Description,
		e.Timezone,
		rules,
		string(e.Status),
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update event %q: %w", e.ID, err)
	}
	return expectOneRow(res, "event", e.ID, storage.ErrNotFound)
}

func (t *tx) DeleteEvent(ctx context.Context, id string) error {
	res, err := t.tx.ExecContext(ctx, queryDeleteEvent, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %q: %w", id, err)
	}
	return expectOneRow(res, "event", id, storage.ErrNotFound)
}

// expectOneRow maps "no row affected" to sentinel.
func expectOneRow(res sql.Result, kind, id string, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %q: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, sentinel)
	}
	return nil
}
