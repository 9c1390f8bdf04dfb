package postgres

// SQL queries for venue, space, availability and event storage.
// Schedules are stored as one JSONB "rules" document per record.

const (
	queryUpsertVenue = `
		INSERT INTO venues (id, organization_id, name, timezone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			organization_id = EXCLUDED.organization_id,
			name            = EXCLUDED.name,
			timezone        = EXCLUDED.timezone
	`

	queryUpsertSpace = `
		INSERT INTO spaces (id, venue_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			venue_id = EXCLUDED.venue_id,
			name     = EXCLUDED.name
	`

	queryGetVenue = `SELECT id, organization_id, name, timezone FROM venues WHERE id = $1`

	queryGetSpace = `SELECT id, venue_id, name FROM spaces WHERE id = $1`

	// Row locks used to serialize placements and availability changes per owner.
	queryLockVenue = `SELECT id FROM venues WHERE id = $1 FOR UPDATE`
	queryLockSpace = `SELECT id FROM spaces WHERE id = $1 FOR UPDATE`

	availabilityColumns = `id, venue_id, space_id, timezone, rules, created_at, updated_at`

	queryGetAvailability = `SELECT ` + availabilityColumns + ` FROM availabilities WHERE id = $1`

	queryLockAvailability = queryGetAvailability + ` FOR UPDATE`

	queryFindAvailabilitiesByVenue = `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE venue_id = $1
		ORDER BY created_at ASC, id ASC
	`

	queryFindAvailabilitiesBySpace = `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE space_id = $1
		ORDER BY created_at ASC, id ASC
	`

	queryListAvailabilities = `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		ORDER BY created_at ASC, id ASC
	`

	queryInsertAvailability = `
		INSERT INTO availabilities (id, venue_id, space_id, timezone, rules, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	queryUpdateAvailability = `
		UPDATE availabilities
		SET timezone = $2, rules = $3, updated_at = $4
		WHERE id = $1
	`

	queryDeleteAvailability = `DELETE FROM availabilities WHERE id = $1`

	eventColumns = `id, space_id, title, description, timezone, rules, status, created_at, updated_at`

	queryGetEvent = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	queryLockEvent = queryGetEvent + ` FOR UPDATE`

	queryFindEventsBySpace = `
		SELECT ` + eventColumns + `
		FROM events
		WHERE space_id = $1
		ORDER BY created_at ASC, id ASC
	`

	queryListEvents = `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at ASC, id ASC
	`

	queryInsertEvent = `
		INSERT INTO events (id, space_id, title, description, timezone, rules, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	queryUpdateEvent = `
		UPDATE events
		SET title = $2, description = $3, timezone = $4, rules = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	queryDeleteEvent = `DELETE FROM events WHERE id = $1`
)
