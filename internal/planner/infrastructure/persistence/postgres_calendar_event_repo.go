package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const calendarEventColumns = `id, user_id, team_id, title, start_time, end_time, is_busy, source, created_at, updated_at`

// PostgresCalendarEventRepository implements
// domain.CalendarEventRepository using PostgreSQL.
type PostgresCalendarEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCalendarEventRepository creates a new PostgreSQL calendar
// event repository.
func NewPostgresCalendarEventRepository(pool *pgxpool.Pool) *PostgresCalendarEventRepository {
	return &PostgresCalendarEventRepository{pool: pool}
}

// Save upserts an event.
func (r *PostgresCalendarEventRepository) Save(ctx context.Context, event *domain.CalendarEvent) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO calendar_events (` + calendarEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_busy = EXCLUDED.is_busy,
			updated_at = EXCLUDED.updated_at
	`
	userID, teamID := ownerRefs(event.Owner())
	_, err := exec.Exec(ctx, query,
		event.ID(), userID, teamID, event.Title(),
		event.Start(), event.End(), event.IsBusy(), event.Source(),
		event.CreatedAt(), event.UpdatedAt(),
	)
	return err
}

// FindBusyOverlapping returns busy events for the user or their team
// overlapping [start, end).
func (r *PostgresCalendarEventRepository) FindBusyOverlapping(ctx context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + calendarEventColumns + `
		FROM calendar_events
		WHERE is_busy
		  AND start_time < $4 AND end_time > $3
		  AND (user_id = $1 OR ($2::uuid IS NOT NULL AND team_id = $2))
		ORDER BY start_time
	`
	rows, err := exec.Query(ctx, query, userID, teamRef(teamID), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCalendarEvents(rows)
}

// FindByUserAndRange returns all events, busy or free, for the user or
// their team overlapping [start, end).
func (r *PostgresCalendarEventRepository) FindByUserAndRange(ctx context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*domain.CalendarEvent, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + calendarEventColumns + `
		FROM calendar_events
		WHERE start_time < $4 AND end_time > $3
		  AND (user_id = $1 OR ($2::uuid IS NOT NULL AND team_id = $2))
		ORDER BY start_time
	`
	rows, err := exec.Query(ctx, query, userID, teamRef(teamID), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCalendarEvents(rows)
}

func teamRef(teamID uuid.UUID) *uuid.UUID {
	if teamID == uuid.Nil {
		return nil
	}
	return &teamID
}

func scanCalendarEvents(rows pgx.Rows) ([]*domain.CalendarEvent, error) {
	events := make([]*domain.CalendarEvent, 0)
	for rows.Next() {
		var (
			id                 uuid.UUID
			rowUserID          *uuid.UUID
			rowTeamID          *uuid.UUID
			title, source      string
			startTime, endTime time.Time
			isBusy             bool
			createdAt, updated time.Time
		)
		if err := rows.Scan(&id, &rowUserID, &rowTeamID, &title, &startTime, &endTime, &isBusy, &source, &createdAt, &updated); err != nil {
			return nil, err
		}
		events = append(events, domain.RehydrateCalendarEvent(
			id, ownerFromRefs(rowUserID, rowTeamID), title, startTime, endTime, isBusy, source, createdAt, updated))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
