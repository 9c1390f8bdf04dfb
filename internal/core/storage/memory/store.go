// Package memory is an in-process implementation of storage.Store.
// Useful for tests and for running the service without PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
)

type state struct {
	venues         map[string]*v1.Venue
	spaces         map[string]*v1.Space
	availabilities map[string]*v1.Availability
	events         map[string]*v1.Event
}

func newState() *state {
	return &state{
		venues:         make(map[string]*v1.Venue),
		spaces:         make(map[string]*v1.Space),
		availabilities: make(map[string]*v1.Availability),
		events:         make(map[string]*v1.Event),
	}
}

// clone copies the maps. Stored values are never mutated in place, so sharing the
// pointers between states is safe.
func (s *state) clone() *state {
	return &state{
		venues:         maps.Clone(s.venues),
		spaces:         maps.Clone(s.spaces),
		availabilities: maps.Clone(s.availabilities),
		events:         maps.Clone(s.events),
	}
}

// Store keeps all records in memory. Transactions take the write lock for their whole
// duration and work on a staged copy that replaces the live state on commit.
type Store struct {
	mu sync.RWMutex
	st *state
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

func (s *Store) GetVenue(ctx context.Context, id string) (*v1.Venue, error) {
	return s.read().getVenue(id)
}

func (s *Store) GetSpace(ctx context.Context, id string) (*v1.Space, error) {
	return s.read().getSpace(id)
}

func (s *Store) GetAvailability(ctx context.Context, id string) (*v1.Availability, error) {
	return s.read().getAvailability(id)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*v1.Event, error) {
	return s.read().getEvent(id)
}

func (s *Store) FindAvailabilities(ctx context.Context, ref v1.EntityRef) ([]*v1.Availability, error) {
	return s.read().findAvailabilities(ref), nil
}

func (s *Store) FindEvents(ctx context.Context, spaceID string) ([]*v1.Event, error) {
	return s.read().findEvents(spaceID), nil
}

func (s *Store) ListAvailabilities(ctx context.Context) ([]*v1.Availability, error) {
	return s.read().findAvailabilities(v1.EntityRef{}), nil
}

func (s *Store) ListEvents(ctx context.Context) ([]*v1.Event, error) {
	return s.read().findEvents(""), nil
}

func (s *Store) SaveVenue(ctx context.Context, v *v1.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	copy := *v
	next.venues[v.ID] = &copy
	s.st = next
	return nil
}

func (s *Store) SaveSpace(ctx context.Context, sp *v1.Space) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.venues[sp.VenueID]; !ok {
		return fmt.Errorf("space %q: venue %q: %w", sp.ID, sp.VenueID, storage.ErrNotFound)
	}
	next := s.st.clone()
	copy := *sp
	next.spaces[sp.ID] = &copy
	s.st = next
	return nil
}

// WithinTx serializes all transactions. fn sees its own writes; nothing is visible to
// readers until fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	if err := fn(ctx, &tx{state: staged}); err != nil {
		return err
	}
	s.st = staged
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *state) getVenue(id string) (*v1.Venue, error) {
	v, ok := s.venues[id]
	if !ok {
		return nil, fmt.Errorf("venue %q: %w", id, storage.ErrNotFound)
	}
	copy := *v
	return &copy, nil
}

func (s *state) getSpace(id string) (*v1.Space, error) {
	sp, ok := s.spaces[id]
	if !ok {
		return nil, fmt.Errorf("space %q: %w", id, storage.ErrNotFound)
	}
	copy := *sp
	return &copy, nil
}

func (s *state) getAvailability(id string) (*v1.Availability, error) {
	a, ok := s.availabilities[id]
	if !ok {
		return nil, fmt.Errorf("availability %q: %w", id, storage.ErrNotFound)
	}
	return a.Clone(), nil
}

func (s *state) getEvent(id string) (*v1.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %q: %w", id, storage.ErrNotFound)
	}
	return e.Clone(), nil
}

// findAvailabilities filters by owner; a zero ref matches everything.
func (s *state) findAvailabilities(ref v1.EntityRef) []*v1.Availability {
	var out []*v1.Availability
	for _, a := range s.availabilities {
		if ref.ID != "" && a.Owner() != ref {
			continue
		}
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// findEvents filters by space; an empty id matches everything.
func (s *state) findEvents(spaceID string) []*v1.Event {
	var out []*v1.Event
	for _, e := range s.events {
		if spaceID != "" && e.SpaceID != spaceID {
			continue
		}
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
