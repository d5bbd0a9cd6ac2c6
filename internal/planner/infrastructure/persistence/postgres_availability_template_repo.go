package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAvailabilityTemplateRepository implements
// domain.AvailabilityTemplateRepository using PostgreSQL.
type PostgresAvailabilityTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAvailabilityTemplateRepository creates a new PostgreSQL
// availability template repository.
func NewPostgresAvailabilityTemplateRepository(pool *pgxpool.Pool) *PostgresAvailabilityTemplateRepository {
	return &PostgresAvailabilityTemplateRepository{pool: pool}
}

// Save upserts a template. Times are persisted as "HH:MM" strings.
func (r *PostgresAvailabilityTemplateRepository) Save(ctx context.Context, template *domain.AvailabilityTemplate) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO availability_templates (id, user_id, team_id, day_of_week, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			day_of_week = EXCLUDED.day_of_week,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = EXCLUDED.updated_at
	`
	userID, teamID := ownerRefs(template.Owner())
	_, err := exec.Exec(ctx, query,
		template.ID(), userID, teamID, template.DayOfWeek(),
		template.StartTime().String(), template.EndTime().String(),
		template.CreatedAt(), template.UpdatedAt(),
	)
	return err
}

// FindByOwnerAndWeekday returns templates ordered by start time.
func (r *PostgresAvailabilityTemplateRepository) FindByOwnerAndWeekday(ctx context.Context, owner domain.Owner, dayOfWeek int) ([]*domain.AvailabilityTemplate, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT id, user_id, team_id, day_of_week, start_time, end_time, created_at, updated_at
		FROM availability_templates
		WHERE day_of_week = $3 AND ((user_id IS NOT NULL AND user_id = $1) OR (team_id IS NOT NULL AND team_id = $2))
		ORDER BY start_time
	`
	userID, teamID := ownerRefs(owner)
	rows, err := exec.Query(ctx, query, userID, teamID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.AvailabilityTemplate, 0)
	for rows.Next() {
		var (
			id                 uuid.UUID
			rowUserID          *uuid.UUID
			rowTeamID          *uuid.UUID
			weekday            int
			startStr, endStr   string
			createdAt, updated time.Time
		)
		if err := rows.Scan(&id, &rowUserID, &rowTeamID, &weekday, &startStr, &endStr, &createdAt, &updated); err != nil {
			return nil, err
		}
		start, err := domain.ParseTimeOfDay(startStr)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseTimeOfDay(endStr)
		if err != nil {
			return nil, err
		}
		templates = append(templates, domain.RehydrateAvailabilityTemplate(
			id, ownerFromRefs(rowUserID, rowTeamID), weekday, start, end, createdAt, updated))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

// Delete removes a template.
func (r *PostgresAvailabilityTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	result, err := exec.Exec(ctx, `DELETE FROM availability_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
