package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

const sqliteTaskColumns = `t.id, t.title, t.priority, t.due_date, t.is_hard_due,
	t.estimated_minutes, t.estimated_hours, t.is_completed, t.completed_at,
	t.snoozed_until, t.backlog_date, t.start_at, t.work_goal_id, t.dependency_ids,
	(SELECT COUNT(*) FROM tasks d, json_each(t.dependency_ids) j
	 WHERE d.id = j.value AND NOT d.is_completed) AS open_dependencies`

// SQLiteTaskSource implements domain.Source over the local task
// projection kept in the embedded database. Local mode has no teams, so
// the team filter is ignored.
type SQLiteTaskSource struct {
	db *sql.DB
}

// NewSQLiteTaskSource creates a new SQLite task source.
func NewSQLiteTaskSource(db *sql.DB) *SQLiteTaskSource {
	return &SQLiteTaskSource{db: db}
}

// FindCandidates returns scheduling candidates for the user.
func (s *SQLiteTaskSource) FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Task, error) {
	query := `
		SELECT ` + sqliteTaskColumns + `
		FROM tasks t
		WHERE NOT t.is_completed
		  AND (t.owner_id = ?
		       OR t.project_id IN (SELECT id FROM projects WHERE created_by = ?))
		  AND (t.snoozed_until IS NULL OR t.snoozed_until <= ?)
		  AND (t.backlog_date IS NULL OR t.backlog_date <= ?)
		ORDER BY t.created_at
		LIMIT ?
	`
	limit := filter.Limit
	if limit <= 0 || limit > domain.MaxCandidates {
		limit = domain.MaxCandidates
	}

	rows, err := s.db.QueryContext(ctx, query,
		filter.UserID.String(), filter.UserID.String(), filter.ScopeEnd.UTC(), filter.ScopeStart.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteTasks(rows)
}

// FindByIDs loads tasks by ID.
func (s *SQLiteTaskSource) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := ""
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id.String())
	}

	query := `
		SELECT ` + sqliteTaskColumns + `
		FROM tasks t
		WHERE t.id IN (` + placeholders + `)
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteTasks(rows)
}

// FindCompletedBetween returns the user's tasks completed within [start, end).
func (s *SQLiteTaskSource) FindCompletedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	query := `
		SELECT ` + sqliteTaskColumns + `
		FROM tasks t
		WHERE t.is_completed AND t.owner_id = ?
		  AND t.completed_at >= ? AND t.completed_at < ?
		ORDER BY t.completed_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID.String(), start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteTasks(rows)
}

// FindByWorkGoal returns all tasks linked to a work goal.
func (s *SQLiteTaskSource) FindByWorkGoal(ctx context.Context, workGoalID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT ` + sqliteTaskColumns + `
		FROM tasks t
		WHERE t.work_goal_id = ?
		ORDER BY t.created_at
	`
	rows, err := s.db.QueryContext(ctx, query, workGoalID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteTasks(rows)
}

// UpdateStartAt sets the scheduling hint on a task.
func (s *SQLiteTaskSource) UpdateStartAt(ctx context.Context, taskID uuid.UUID, startAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET start_at = ?, updated_at = ? WHERE id = ?",
		startAt.UTC(), time.Now().UTC(), taskID.String())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanSQLiteTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var (
			rec        domain.TaskRecord
			rawID      string
			priority   string
			rawGoalID  sql.NullString
			rawDepIDs  string
		)
		err := rows.Scan(
			&rawID, &rec.Title, &priority, &rec.DueDate, &rec.IsHardDue,
			&rec.EstimatedMinutes, &rec.EstimatedHours, &rec.IsCompleted, &rec.CompletedAt,
			&rec.SnoozedUntil, &rec.BacklogDate, &rec.StartAt, &rawGoalID, &rawDepIDs,
			&rec.OpenDependencies,
		)
		if err != nil {
			return nil, err
		}

		rec.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, err
		}
		rec.Priority, err = domain.ParsePriority(priority)
		if err != nil {
			rec.Priority = domain.PriorityMedium
		}
		if rawGoalID.Valid && rawGoalID.String != "" {
			rec.WorkGoalID, err = uuid.Parse(rawGoalID.String)
			if err != nil {
				return nil, err
			}
		}

		var depIDs []string
		if rawDepIDs != "" {
			if err := json.Unmarshal([]byte(rawDepIDs), &depIDs); err != nil {
				return nil, fmt.Errorf("unmarshal dependency ids: %w", err)
			}
		}
		for _, raw := range depIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			rec.DependencyIDs = append(rec.DependencyIDs, id)
		}

		tasks = append(tasks, domain.FromRecord(rec))
	}
	return tasks, rows.Err()
}
