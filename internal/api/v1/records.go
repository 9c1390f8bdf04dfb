package v1

import (
	"time"

	coreerr "github.com/aevon-lab/project-tempo/internal/core/errors"
)

// Venue is a physical location with a home time zone. Read-only to the engine.
type Venue struct {
	ID             string `json:"id" yaml:"id"`
	OrganizationID string `json:"organization_id" yaml:"organization_id"`
	Name           string `json:"name" yaml:"name"`
	Timezone       string `json:"timezone" yaml:"timezone"`
}

// Space is a bookable area inside a venue. Its zone is the venue's zone.
type Space struct {
	ID      string `json:"id" yaml:"id"`
	VenueID string `json:"venue_id" yaml:"venue_id"`
	Name    string `json:"name" yaml:"name"`
}

// EntityKind names the owner type of an availability record.
type EntityKind string

const (
	EntityVenue EntityKind = "venue"
	EntitySpace EntityKind = "space"
)

// EntityRef points at exactly one venue or space.
type EntityRef struct {
	Kind EntityKind `json:"type"`
	ID   string     `json:"id"`
}

func VenueRef(id string) EntityRef { return EntityRef{Kind: EntityVenue, ID: id} }
func SpaceRef(id string) EntityRef { return EntityRef{Kind: EntitySpace, ID: id} }

// RefOf builds a reference from a venue/space id pair, enforcing that exactly one is set.
func RefOf(venueID, spaceID string) (EntityRef, error) {
	switch {
	case venueID != "" && spaceID != "":
		return EntityRef{}, coreerr.Malformedf("exactly one of venue_id or space_id must be provided, got both")
	case venueID != "":
		return VenueRef(venueID), nil
	case spaceID != "":
		return SpaceRef(spaceID), nil
	default:
		return EntityRef{}, coreerr.Malformedf("exactly one of venue_id or space_id must be provided")
	}
}

func (r EntityRef) Validate() error {
	if r.Kind != EntityVenue && r.Kind != EntitySpace {
		return coreerr.Malformedf("unknown entity type %q", r.Kind)
	}
	if r.ID == "" {
		return coreerr.Malformedf("%s id is required", r.Kind)
	}
	return nil
}

func (r EntityRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// Source is what the engine needs to materialize a record.
type Source struct {
	ID       string
	Timezone string
	Schedule Schedule
}

// Record is implemented by every persisted schedule owner.
type Record interface {
	Source() Source
}

// Availability is bookable time owned by exactly one venue or space.
type Availability struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id,omitempty"`
	SpaceID   string    `json:"space_id,omitempty"`
	Timezone  string    `json:"timezone"`
	Rules     Schedule  `json:"rules"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Availability) Source() Source {
	return Source{ID: a.ID, Timezone: a.Timezone, Schedule: a.Rules}
}

// Owner returns the owning entity reference.
func (a *Availability) Owner() EntityRef {
	if a.VenueID != "" {
		return VenueRef(a.VenueID)
	}
	return SpaceRef(a.SpaceID)
}

// Clone returns a deep copy.
func (a *Availability) Clone() *Availability {
	out := *a
	out.Rules = a.Rules.Clone()
	return &out
}
