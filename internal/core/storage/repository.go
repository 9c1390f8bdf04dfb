package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
)

// ErrNotFound is returned when a referenced venue, space or record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a record with the same id already exists.
var ErrDuplicate = errors.New("record already exists")

// Reader is the read side shared by the store and its transactions.
type Reader interface {
	GetVenue(ctx context.Context, id string) (*v1.Venue, error)
	GetSpace(ctx context.Context, id string) (*v1.Space, error)
	GetAvailability(ctx context.Context, id string) (*v1.Availability, error)
	GetEvent(ctx context.Context, id string) (*v1.Event, error)

	// FindAvailabilities returns every availability record owned directly by ref.
	FindAvailabilities(ctx context.Context, ref v1.EntityRef) ([]*v1.Availability, error)

	// FindEvents returns every event of a space, cancelled ones included.
	FindEvents(ctx context.Context, spaceID string) ([]*v1.Event, error)

	ListAvailabilities(ctx context.Context) ([]*v1.Availability, error)
	ListEvents(ctx context.Context) ([]*v1.Event, error)
}

// Tx is a transaction-scoped handle. It is only valid inside the WithinTx callback and
// must not be retained.
type Tx interface {
	Reader

	// LockEntity takes a row lock on the venue or space so that concurrent placements
	// and availability changes for it serialize. Returns ErrNotFound if absent.
	LockEntity(ctx context.Context, ref v1.EntityRef) error

	// LockAvailability and LockEvent read a record under a row lock.
	LockAvailability(ctx context.Context, id string) (*v1.Availability, error)
	LockEvent(ctx context.Context, id string) (*v1.Event, error)

	CreateAvailability(ctx context.Context, a *v1.Availability) error
	UpdateAvailability(ctx context.Context, a *v1.Availability) error
	DeleteAvailability(ctx context.Context, id string) error

	CreateEvent(ctx context.Context, e *v1.Event) error
	UpdateEvent(ctx context.Context, e *v1.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// Store is the record store.
type Store interface {
	Reader

	// SaveVenue and SaveSpace upsert reference data; used by seeding only.
	SaveVenue(ctx context.Context, v *v1.Venue) error
	SaveSpace(ctx context.Context, s *v1.Space) error

	// WithinTx runs fn in one atomic transaction. A non-nil error from fn rolls back.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	Ping(ctx context.Context) error
	Close() error
}
