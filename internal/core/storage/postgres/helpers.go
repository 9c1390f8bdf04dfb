package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// marshalRules encodes a schedule for the JSONB rules column.
func marshalRules(s v1.Schedule) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules: %w", err)
	}
	return raw, nil
}

func unmarshalRules(raw []byte) (v1.Schedule, error) {
	var s v1.Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return v1.Schedule{}, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	return s, nil
}

// nullable maps "" to SQL NULL for the optional owner columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanAvailabilityRow scans one availabilities row.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanAvailabilityRow(row scanner) (*v1.Availability, error) {
	var a v1.Availability
	var venueID, spaceID sql.NullString
	var rules []byte

	err := row.Scan(
		&a.ID,
		&venueID,
		&spaceID,
		&a.Timezone,
		&rules,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.VenueID = venueID.String
	a.SpaceID = spaceID.String
	if a.Rules, err = unmarshalRules(rules); err != nil {
		return nil, fmt.Errorf("availability %q: %w", a.ID, err)
	}
	return &a, nil
}

// scanEventRow scans one events row.
func scanEventRow(row scanner) (*v1.Event, error) {
	var e v1.Event
	var rules []byte
	var status string

	err := row.Scan(
		&e.ID,
		&e.SpaceID,
		&e.Title,
		&e.Description,
		&e.Timezone,
		&rules,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Status = v1.EventStatus(status)
	if e.Rules, err = unmarshalRules(rules); err != nil {
		return nil, fmt.Errorf("event %q: %w", e.ID, err)
	}
	return &e, nil
}
