// Package persistence provides the PostgreSQL projection over the
// external task store.
package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/tasks/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const taskColumns = `t.id, t.title, t.priority, t.due_date, t.is_hard_due,
	t.estimated_minutes, t.estimated_hours, t.is_completed, t.completed_at,
	t.snoozed_until, t.backlog_date, t.start_at, t.work_goal_id, t.dependency_ids,
	(SELECT COUNT(*) FROM tasks d WHERE d.id = ANY(t.dependency_ids) AND NOT d.is_completed) AS open_dependencies`

// PostgresTaskSource implements domain.Source over the tasks table.
type PostgresTaskSource struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskSource creates a new PostgreSQL task source.
func NewPostgresTaskSource(pool *pgxpool.Pool) *PostgresTaskSource {
	return &PostgresTaskSource{pool: pool}
}

// FindCandidates returns scheduling candidates for the user.
func (s *PostgresTaskSource) FindCandidates(ctx context.Context, filter domain.CandidateFilter) ([]*domain.Task, error) {
	exec := sharedPersistence.Executor(ctx, s.pool)
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE NOT t.is_completed
		  AND (t.owner_id = $1 OR t.created_by = $1 OR t.assigned_to = $1
		       OR t.project_id IN (SELECT id FROM projects WHERE created_by = $1)
		       OR ($2::uuid IS NOT NULL AND t.team_id = $2))
		  AND (t.snoozed_until IS NULL OR t.snoozed_until <= $4)
		  AND (t.backlog_date IS NULL OR t.backlog_date <= $3)
		ORDER BY t.created_at
		LIMIT $5
	`
	var teamRef *uuid.UUID
	if filter.TeamID != uuid.Nil {
		id := filter.TeamID
		teamRef = &id
	}
	limit := filter.Limit
	if limit <= 0 || limit > domain.MaxCandidates {
		limit = domain.MaxCandidates
	}

	rows, err := exec.Query(ctx, query, filter.UserID, teamRef, filter.ScopeStart, filter.ScopeEnd, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindByIDs loads tasks by ID.
func (s *PostgresTaskSource) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	exec := sharedPersistence.Executor(ctx, s.pool)
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.id = ANY($1)
	`
	rows, err := exec.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindCompletedBetween returns the user's tasks completed within [start, end).
func (s *PostgresTaskSource) FindCompletedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	exec := sharedPersistence.Executor(ctx, s.pool)
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.is_completed
		  AND (t.owner_id = $1 OR t.assigned_to = $1)
		  AND t.completed_at >= $2 AND t.completed_at < $3
		ORDER BY t.completed_at
	`
	rows, err := exec.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindByWorkGoal returns all tasks linked to a work goal.
func (s *PostgresTaskSource) FindByWorkGoal(ctx context.Context, workGoalID uuid.UUID) ([]*domain.Task, error) {
	exec := sharedPersistence.Executor(ctx, s.pool)
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.work_goal_id = $1
		ORDER BY t.created_at
	`
	rows, err := exec.Query(ctx, query, workGoalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// UpdateStartAt sets the scheduling hint on a task.
func (s *PostgresTaskSource) UpdateStartAt(ctx context.Context, taskID uuid.UUID, startAt time.Time) error {
	exec := sharedPersistence.Executor(ctx, s.pool)
	tag, err := exec.Exec(ctx, "UPDATE tasks SET start_at = $2, updated_at = NOW() WHERE id = $1", taskID, startAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var (
			rec      domain.TaskRecord
			priority string
			depIDs   []string
			goalID   *uuid.UUID
		)
		err := rows.Scan(
			&rec.ID, &rec.Title, &priority, &rec.DueDate, &rec.IsHardDue,
			&rec.EstimatedMinutes, &rec.EstimatedHours, &rec.IsCompleted, &rec.CompletedAt,
			&rec.SnoozedUntil, &rec.BacklogDate, &rec.StartAt, &goalID, pq.Array(&depIDs),
			&rec.OpenDependencies,
		)
		if err != nil {
			return nil, err
		}

		rec.Priority, err = domain.ParsePriority(priority)
		if err != nil {
			rec.Priority = domain.PriorityMedium
		}
		if goalID != nil {
			rec.WorkGoalID = *goalID
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
