package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// reader implements storage.Reader over any querier.
type reader struct {
	q querier
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", kind, id, storage.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %q: %w", kind, id, err)
}

func (r reader) GetVenue(ctx context.Context, id string) (*v1.Venue, error) {
	var v v1.Venue
	var org sql.NullString
	err := r.q.QueryRowContext(ctx, queryGetVenue, id).Scan(&v.ID, &org, &v.Name, &v.Timezone)
	if err != nil {
		return nil, notFound("venue", id, err)
	}
	v.OrganizationID = org.String
	return &v, nil
}

func (r reader) GetSpace(ctx context.Context, id string) (*v1.Space, error) {
	var s v1.Space
	err := r.q.QueryRowContext(ctx, queryGetSpace, id).Scan(&s.ID, &s.VenueID, &s.Name)
	if err != nil {
		return nil, notFound("space", id, err)
	}
	return &s, nil
}

func (r reader) GetAvailability(ctx context.Context, id string) (*v1.Availability, error) {
	a, err := scanAvailabilityRow(r.q.QueryRowContext(ctx, queryGetAvailability, id))
	if err != nil {
		return nil, notFound("availability", id, err)
	}
	return a, nil
}

func (r reader) GetEvent(ctx context.Context, id string) (*v1.Event, error) {
	e, err := scanEventRow(r.q.QueryRowContext(ctx, queryGetEvent, id))
	if err != nil {
		return nil, notFound("event", id, err)
	}
	return e, nil
}

// FindAvailabilities returns the records owned directly by ref, oldest first.
func (r reader) FindAvailabilities(ctx context.Context, ref v1.EntityRef) ([]*v1.Availability, error) {
	var query string
	switch ref.Kind {
	case v1.EntityVenue:
		query = queryFindAvailabilitiesByVenue
	case v1.EntitySpace:
		query = queryFindAvailabilitiesBySpace
	default:
		return nil, fmt.Errorf("unknown entity type %q", ref.Kind)
	}
	return r.queryAvailabilities(ctx, query, ref.ID)
}

func (r reader) ListAvailabilities(ctx context.Context) ([]*v1.Availability, error) {
	return r.queryAvailabilities(ctx, queryListAvailabilities)
}

func (r reader) queryAvailabilities(ctx context.Context, query string, args ...interface{}) ([]*v1.Availability, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query availabilities: %w", err)
	}
	defer rows.Close()

	var out []*v1.Availability
	for rows.Next() {
		a, err := scanAvailabilityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availabilities: %w", err)
	}

	return out, nil
}

// FindEvents returns every event of a space, oldest first.
func (r reader) FindEvents(ctx context.Context, spaceID string) ([]*v1.Event, error) {
	return r.queryEvents(ctx, queryFindEventsBySpace, spaceID)
}

func (r reader) ListEvents(ctx context.Context) ([]*v1.Event, error) {
	return r.queryEvents(ctx, queryListEvents)
}

func (r reader) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*v1.Event, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []*v1.Event
	for rows.Next() {
		e, err := scanEventRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return out, nil
}
