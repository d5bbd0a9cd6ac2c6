package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// SQLiteAvailabilityTemplateRepository implements
// domain.AvailabilityTemplateRepository on the embedded database.
type SQLiteAvailabilityTemplateRepository struct {
	db *sql.DB
}

// NewSQLiteAvailabilityTemplateRepository creates a new SQLite
// availability template repository.
func NewSQLiteAvailabilityTemplateRepository(db *sql.DB) *SQLiteAvailabilityTemplateRepository {
	return &SQLiteAvailabilityTemplateRepository{db: db}
}

// Save upserts a template.
func (r *SQLiteAvailabilityTemplateRepository) Save(ctx context.Context, template *domain.AvailabilityTemplate) error {
	query := `
		INSERT INTO availability_templates (id, user_id, team_id, day_of_week, start_time, end_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day_of_week = excluded.day_of_week,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			updated_at = excluded.updated_at
	`
	userID, teamID := sqliteOwnerRefs(template.Owner())
	_, err := r.db.ExecContext(ctx, query,
		template.ID().String(), userID, teamID, template.DayOfWeek(),
		template.StartTime().String(), template.EndTime().String(),
		template.CreatedAt().UTC(), template.UpdatedAt().UTC(),
	)
	return err
}

// FindByOwnerAndWeekday returns the owner's templates for a weekday.
func (r *SQLiteAvailabilityTemplateRepository) FindByOwnerAndWeekday(ctx context.Context, owner domain.Owner, dayOfWeek int) ([]*domain.AvailabilityTemplate, error) {
	query := `
		SELECT id, user_id, team_id, day_of_week, start_time, end_time, created_at, updated_at
		FROM availability_templates
		WHERE (user_id = ? OR team_id = ?) AND day_of_week = ?
		ORDER BY start_time
	`
	userRef, teamRef := sqliteOwnerRefs(owner)
	rows, err := r.db.QueryContext(ctx, query, userRef, teamRef, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*domain.AvailabilityTemplate
	for rows.Next() {
		var (
			id                   string
			userID, teamID       sql.NullString
			day                  int
			startRaw, endRaw     string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &userID, &teamID, &day, &startRaw, &endRaw, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		templateID, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		rowOwner, err := sqliteOwnerFromRefs(userID, teamID)
		if err != nil {
			return nil, err
		}
		start, err := domain.ParseTimeOfDay(startRaw)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseTimeOfDay(endRaw)
		if err != nil {
			return nil, err
		}

		templates = append(templates, domain.RehydrateAvailabilityTemplate(
			templateID, rowOwner, day, start, end, createdAt, updatedAt,
		))
	}
	return templates, rows.Err()
}

// Delete removes a template.
func (r *SQLiteAvailabilityTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM availability_templates WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
