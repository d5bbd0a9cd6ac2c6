package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// SQLiteCalendarEventRepository implements domain.CalendarEventRepository
// on the embedded database.
type SQLiteCalendarEventRepository struct {
	db *sql.DB
}

// NewSQLiteCalendarEventRepository creates a new SQLite calendar event
// repository.
func NewSQLiteCalendarEventRepository(db *sql.DB) *SQLiteCalendarEventRepository {
	return &SQLiteCalendarEventRepository{db: db}
}

// Save upserts an event.
func (r *SQLiteCalendarEventRepository) Save(ctx context.Context, event *domain.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, user_id, team_id, title, start_time, end_time, is_busy, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			is_busy = excluded.is_busy,
			updated_at = excluded.updated_at
	`
	userID, teamID := sqliteOwnerRefs(event.Owner())
	_, err := r.db.ExecContext(ctx, query,
		event.ID().String(), userID, teamID, event.Title(),
		event.Start().UTC(), event.End().UTC(), event.IsBusy(), event.Source(),
		event.CreatedAt().UTC(), event.UpdatedAt().UTC(),
	)
	return err
}

// FindBusyOverlapping returns busy events for the user or their team
// overlapping [start, end).
func (r *SQLiteCalendarEventRepository) FindBusyOverlapping(ctx context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT id, user_id, team_id, title, start_time, end_time, is_busy, source, created_at, updated_at
		FROM calendar_events
		WHERE is_busy
		  AND (user_id = ? OR (? != '' AND team_id = ?))
		  AND start_time < ? AND end_time > ?
		ORDER BY start_time
	`
	ref := sqliteTeamRef(teamID)
	rows, err := r.db.QueryContext(ctx, query, userID.String(), ref, ref, end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteEvents(rows)
}

// FindByUserAndRange returns all events, busy or free, for the user or
// their team overlapping [start, end).
func (r *SQLiteCalendarEventRepository) FindByUserAndRange(ctx context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	query := `
		SELECT id, user_id, team_id, title, start_time, end_time, is_busy, source, created_at, updated_at
		FROM calendar_events
		WHERE (user_id = ? OR (? != '' AND team_id = ?))
		  AND start_time < ? AND end_time > ?
		ORDER BY start_time
	`
	ref := sqliteTeamRef(teamID)
	rows, err := r.db.QueryContext(ctx, query, userID.String(), ref, ref, end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteEvents(rows)
}

func sqliteTeamRef(teamID uuid.UUID) string {
	if teamID == uuid.Nil {
		return ""
	}
	return teamID.String()
}

func scanSQLiteEvents(rows *sql.Rows) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	for rows.Next() {
		var (
			id                   string
			rowUserID, rowTeamID sql.NullString
			title, source        string
			eventStart, eventEnd time.Time
			isBusy               bool
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &rowUserID, &rowTeamID, &title, &eventStart, &eventEnd, &isBusy, &source, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		eventID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		owner, err := sqliteOwnerFromRefs(rowUserID, rowTeamID)
		if err != nil {
			return nil, err
		}

		events = append(events, domain.RehydrateCalendarEvent(
			eventID, owner, title, eventStart, eventEnd, isBusy, source, createdAt, updatedAt,
		))
	}
	return events, rows.Err()
}
