package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const workGoalColumns = `id, user_id, team_id, name, project_id, tags,
	progress_percentage, total_tasks, completed_tasks, created_at, updated_at`

// PostgresWorkGoalRepository implements domain.WorkGoalRepository using
// PostgreSQL.
type PostgresWorkGoalRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresWorkGoalRepository creates a new PostgreSQL work goal
// repository.
func NewPostgresWorkGoalRepository(pool *pgxpool.Pool) *PostgresWorkGoalRepository {
	return &PostgresWorkGoalRepository{pool: pool}
}

// Save upserts a goal.
func (r *PostgresWorkGoalRepository) Save(ctx context.Context, goal *domain.WorkGoal) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO work_goals (` + workGoalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			project_id = EXCLUDED.project_id,
			tags = EXCLUDED.tags,
			progress_percentage = EXCLUDED.progress_percentage,
			total_tasks = EXCLUDED.total_tasks,
			completed_tasks = EXCLUDED.completed_tasks,
			updated_at = EXCLUDED.updated_at
	`
	userID, teamID := goalOwnerRefs(goal.Owner())
	var projectID *uuid.UUID
	if goal.ProjectID() != uuid.Nil {
		id := goal.ProjectID()
		projectID = &id
	}

	_, err := exec.Exec(ctx, query,
		goal.ID(), userID, teamID, goal.Name(), projectID, pq.Array(goal.Tags()),
		goal.ProgressPercentage(), goal.TotalTasks(), goal.CompletedTasks(),
		goal.CreatedAt(), goal.UpdatedAt(),
	)
	return err
}

// FindByID returns a goal.
func (r *PostgresWorkGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.WorkGoal, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + workGoalColumns + `
		FROM work_goals
		WHERE id = $1
	`
	return scanWorkGoal(exec.QueryRow(ctx, query, id))
}

// FindByOwner returns the owner's goals ordered by name.
func (r *PostgresWorkGoalRepository) FindByOwner(ctx context.Context, ownerUserID, ownerTeamID uuid.UUID) ([]*domain.WorkGoal, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + workGoalColumns + `
		FROM work_goals
		WHERE (user_id = $1 OR ($2::uuid IS NOT NULL AND team_id = $2))
		ORDER BY name
	`
	var teamRef *uuid.UUID
	if ownerTeamID != uuid.Nil {
		teamRef = &ownerTeamID
	}

	rows, err := exec.Query(ctx, query, ownerUserID, teamRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.WorkGoal
	for rows.Next() {
		goal, err := scanWorkGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func scanWorkGoal(row pgx.Row) (*domain.WorkGoal, error) {
	var (
		id                   uuid.UUID
		userID, teamID       *uuid.UUID
		name                 string
		projectID            *uuid.UUID
		tags                 []string
		progress             float64
		total, completed     int
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &userID, &teamID, &name, &projectID, pq.Array(&tags),
		&progress, &total, &completed, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	owner := plannerDomain.Owner{}
	if userID != nil {
		owner = plannerDomain.UserOwner(*userID)
	} else if teamID != nil {
		owner = plannerDomain.TeamOwner(*teamID)
	}

	pid := uuid.Nil
	if projectID != nil {
		pid = *projectID
	}

	return domain.RehydrateWorkGoal(
		id, owner, name, pid, tags, progress, total, completed, createdAt, updatedAt,
	), nil
}

func goalOwnerRefs(owner plannerDomain.Owner) (*uuid.UUID, *uuid.UUID) {
	var userID, teamID *uuid.UUID
	if owner.IsUser() {
		id := owner.UserID()
		userID = &id
	}
	if owner.IsTeam() {
		id := owner.TeamID()
		teamID = &id
	}
	return userID, teamID
}
