package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/aevon-lab/project-tempo/internal/api/v1"
	"github.com/aevon-lab/project-tempo/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func TestAdapter_GetAvailability(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rules := weeklyRules(t)
	raw, err := marshalRules(rules)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetAvailability)).
		WithArgs("av-1").
		WillReturnRows(sqlmock.NewRows(availabilityRowColumns()).
			AddRow("av-1", nil, "space-1", "Europe/Berlin", raw, now, now))

	got, err := adapter.GetAvailability(context.Background(), "av-1")
	require.NoError(t, err)
	require.Equal(t, "space-1", got.SpaceID)
	require.Empty(t, got.VenueID)
	require.Equal(t, v1.SpaceRef("space-1"), got.Owner())
	require.True(t, got.Rules.IsRecurring())
	require.Equal(t, rules.Anchor, got.Rules.Anchor)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetAvailability_NotFound(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetAvailability)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetAvailability(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FindAvailabilities(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		ref   v1.EntityRef
		query string
	}{
		{name: "venue owner", ref: v1.VenueRef("venue-1"), query: queryFindAvailabilitiesByVenue},
		{name: "space owner", ref: v1.SpaceRef("space-1"), query: queryFindAvailabilitiesBySpace},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			raw, err := marshalRules(weeklyRules(t))
			require.NoError(t, err)

			mock.ExpectQuery(regexp.QuoteMeta(tc.query)).
				WithArgs(tc.ref.ID).
				WillReturnRows(sqlmock.NewRows(availabilityRowColumns()).
					AddRow("av-1", "venue-1", nil, "Europe/Berlin", raw, now, now).
					AddRow("av-2", "venue-1", nil, "Europe/Berlin", raw, now, now))

			got, err := adapter.FindAvailabilities(context.Background(), tc.ref)
			require.NoError(t, err)
			require.Len(t, got, 2)
			require.Equal(t, "av-1", got[0].ID)
			require.Equal(t, "av-2", got[1].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_FindAvailabilities_BadRules(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(queryFindAvailabilitiesBySpace)).
		WithArgs("space-1").
		WillReturnRows(sqlmock.NewRows(availabilityRowColumns()).
			AddRow("av-1", nil, "space-1", "UTC", []byte("{not json"), now, now))

	_, err := adapter.FindAvailabilities(context.Background(), v1.SpaceRef("space-1"))
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to unmarshal rules")
}

func TestAdapter_FindEvents(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	raw, err := marshalRules(weeklyRules(t))
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(queryFindEventsBySpace)).
		WithArgs("space-1").
		WillReturnRows(sqlmock.NewRows(eventRowColumns()).
			AddRow("evt-1", "space-1", "Standup", "", "Europe/Berlin", raw, "CONFIRMED", now, now))

	got, err := adapter.FindEvents(context.Background(), "space-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, v1.EventConfirmed, got[0].Status)
	require.Equal(t, "Standup", got[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_WithinTx_Commit(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	event := &v1.Event{
		ID:        "evt-1",
		SpaceID:   "space-1",
		Title:     "Standup",
		Timezone:  "Europe/Berlin",
		Rules:     weeklyRules(t),
		Status:    v1.EventPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockSpace)).
		WithArgs("space-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("space-1"))
	mock.ExpectExec(regexp.QuoteMeta(queryInsertEvent)).
		WithArgs("evt-1", "space-1", "Standup", "", "Europe/Berlin", sqlmock.AnyArg(), "PLANNED", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := adapter.WithinTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		if err := tx.LockEntity(ctx, v1.SpaceRef("space-1")); err != nil {
			return err
		}
		return tx.CreateEvent(ctx, event)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_WithinTx_RollbackOnError(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	fnErr := errors.New("placement rejected")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockVenue)).
		WithArgs("venue-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("venue-1"))
	mock.ExpectRollback()

	err := adapter.WithinTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		if err := tx.LockEntity(ctx, v1.VenueRef("venue-1")); err != nil {
			return err
		}
		return fnErr
	})
	require.ErrorIs(t, err, fnErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_WithinTx_LockMissingEntity(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(queryLockSpace)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := adapter.WithinTx(context.Background(), func(ctx context.Context, tx storage.Tx) error {
		return tx.LockEntity(ctx, v1.SpaceRef("ghost"))
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Tx_RowsAffected(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expect  func(mock sqlmock.Sqlmock)
		run     func(ctx context.Context, tx storage.Tx) error
		wantErr error
	}{
		{
			name: "duplicate availability insert",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryInsertAvailability)).
					WithArgs("av-1", sql.NullString{String: "venue-1", Valid: true}, sql.NullString{}, "UTC", sqlmock.AnyArg(), now, now).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			run: func(ctx context.Context, tx storage.Tx) error {
				return tx.CreateAvailability(ctx, &v1.Availability{
					ID:        "av-1",
					VenueID:   "venue-1",
					Timezone:  "UTC",
					Rules:     weeklyRules(t),
					CreatedAt: now,
					UpdatedAt: now,
				})
			},
			wantErr: storage.ErrDuplicate,
		},
		{
			name: "update missing availability",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryUpdateAvailability)).
					WithArgs("av-404", "UTC", sqlmock.AnyArg(), now).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			run: func(ctx context.Context, tx storage.Tx) error {
				return tx.UpdateAvailability(ctx, &v1.Availability{
					ID:        "av-404",
					Timezone:  "UTC",
					Rules:     weeklyRules(t),
					UpdatedAt: now,
				})
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "delete missing event",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteEvent)).
					WithArgs("evt-404").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			run: func(ctx context.Context, tx storage.Tx) error {
				return tx.DeleteEvent(ctx, "evt-404")
			},
			wantErr: storage.ErrNotFound,
		},
		{
			name: "delete existing availability",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(queryDeleteAvailability)).
					WithArgs("av-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			run: func(ctx context.Context, tx storage.Tx) error {
				return tx.DeleteAvailability(ctx, "av-1")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			mock.ExpectBegin()
			tc.expect(mock)
			if tc.wantErr != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			err := adapter.WithinTx(context.Background(), tc.run)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_SaveVenue(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(queryUpsertVenue)).
		WithArgs("venue-1", sql.NullString{}, "Main Hall", "Europe/Berlin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.SaveVenue(context.Background(), &v1.Venue{ID: "venue-1", Name: "Main Hall", Timezone: "Europe/Berlin"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbCloseErr := errors.New("close failed")
	mock.ExpectClose().WillReturnError(dbCloseErr)

	adapter := NewAdapterFromDB(db)
	err = adapter.Close()
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to close database")
	require.ErrorIs(t, err, dbCloseErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_VerifySchema(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	for _, table := range []string{"venues", "spaces", "availabilities"} {
		mock.ExpectQuery("information_schema.tables").
			WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}
	mock.ExpectQuery("information_schema.tables").
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := adapter.VerifySchema()
	require.ErrorContains(t, err, "events table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewAdapterFromDB(db), mock, db
}

func weeklyRules(t *testing.T) v1.Schedule {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	anchor := v1.NewAnchor(time.Date(2025, 3, 3, 9, 0, 0, 0, loc), time.Hour, loc)
	s, err := v1.Recurring(anchor, v1.RecurrenceRule{
		Frequency: v1.FrequencyWeekly,
		Interval:  1,
		ByWeekday: []v1.Weekday{v1.Monday},
	})
	require.NoError(t, err)
	return s
}

func availabilityRowColumns() []string {
	return []string{"id", "venue_id", "space_id", "timezone", "rules", "created_at", "updated_at"}
}

func eventRowColumns() []string {
	return []string{"id", "space_id", "title", "description", "timezone", "rules", "status", "created_at", "updated_at"}
}
