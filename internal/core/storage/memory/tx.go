package memory

import (
	"context"
	"fmt"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
)

// tx works on a staged state owned by exactly one WithinTx call. Locking methods only
// check existence: the store lock is already exclusive.
type tx struct {
	*state
}

var _ storage.Tx = (*tx)(nil)

func (t *tx) GetVenue(ctx context.Context, id string) (*v1.Venue, error) {
	return t.getVenue(id)
}

func (t *tx) GetSpace(ctx context.Context, id string) (*v1.Space, error) {
	return t.getSpace(id)
}

func (t *tx) GetAvailability(ctx context.Context, id string) (*v1.Availability, error) {
	return t.getAvailability(id)
}

func (t *tx) GetEvent(ctx context.Context, id string) (*v1.Event, error) {
	return t.getEvent(id)
}

func (t *tx) FindAvailabilities(ctx context.Context, ref v1.EntityRef) ([]*v1.Availability, error) {
	return t.findAvailabilities(ref), nil
}

func (t *tx) FindEvents(ctx context.Context, spaceID string) ([]*v1.Event, error) {
	return t.findEvents(spaceID), nil
}

func (t *tx) ListAvailabilities(ctx context.Context) ([]*v1.Availability, error) {
	return t.findAvailabilities(v1.EntityRef{}), nil
}

func (t *tx) ListEvents(ctx context.Context) ([]*v1.Event, error) {
	return t.findEvents(""), nil
}

func (t *tx) LockEntity(ctx context.Context, ref v1.EntityRef) error {
	var err error
	switch ref.Kind {
	case v1.EntityVenue:
		_, err = t.getVenue(ref.ID)
	case v1.EntitySpace:
		_, err = t.getSpace(ref.ID)
	default:
		err = fmt.Errorf("unknown entity type %q", ref.Kind)
	}
	return err
}

func (t *tx) LockAvailability(ctx context.Context, id string) (*v1.Availability, error) {
	return t.getAvailability(id)
}

func (t *tx) LockEvent(ctx context.Context, id string) (*v1.Event, error) {
	return t.getEvent(id)
}

func (t *tx) CreateAvailability(ctx context.Context, a *v1.Availability) error {
	if _, exists := t.availabilities[a.ID]; exists {
		return fmt.Errorf("availability %q: %w", a.ID, storage.ErrDuplicate)
	}
	if err := t.LockEntity(ctx, a.Owner()); err != nil {
		return err
	}
	t.availabilities[a.ID] = a.Clone()
	return nil
}

func (t *tx) UpdateAvailability(ctx context.Context, a *v1.Availability) error {
	if _, exists := t.availabilities[a.ID]; !exists {
		return fmt.Errorf("availability %q: %w", a.ID, storage.ErrNotFound)
	}
	t.availabilities[a.ID] = a.Clone()
	return nil
}

func (t *tx) DeleteAvailability(ctx context.Context, id string) error {
	if _, exists := t.availabilities[id]; !exists {
		return fmt.Errorf("availability %q: %w", id, storage.ErrNotFound)
	}
	delete(t.availabilities, id)
	return nil
}

func (t *tx) CreateEvent(ctx context.Context, e *v1.Event) error {
	if _, exists := t.events[e.ID]; exists {
		return fmt.Errorf("event %q: %w", e.ID, storage.ErrDuplicate)
	}
	if _, err := t.getSpace(e.SpaceID); err != nil {
		return err
	}
	t.events[e.ID] = e.Clone()
	return nil
}

func (t *tx) UpdateEvent(ctx context.Context, e *v1.Event) error {
	if _, exists := t.events[e.ID]; !exists {
		return fmt.Errorf("event %q: %w", e.ID, storage.ErrNotFound)
	}
	t.events[e.ID] = e.Clone()
	return nil
}

func (t *tx) DeleteEvent(ctx context.Context, id string) error {
	if _, exists := t.events[id]; !exists {
		return fmt.Errorf("event %q: %w", id, storage.ErrNotFound)
	}
	delete(t.events, id)
	return nil
}
