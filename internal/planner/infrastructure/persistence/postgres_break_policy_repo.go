package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	sharedPersistence "github.com/felixgeelhaar/tempo/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBreakPolicyRepository implements domain.BreakPolicyRepository
// using PostgreSQL.
type PostgresBreakPolicyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBreakPolicyRepository creates a new PostgreSQL break policy
// repository.
func NewPostgresBreakPolicyRepository(pool *pgxpool.Pool) *PostgresBreakPolicyRepository {
	return &PostgresBreakPolicyRepository{pool: pool}
}

// Save upserts a policy.
func (r *PostgresBreakPolicyRepository) Save(ctx context.Context, policy *domain.BreakPolicy) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO break_policies (id, user_id, team_id, focus_minutes, break_minutes, long_break_minutes, cycle_count, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			focus_minutes = EXCLUDED.focus_minutes,
			break_minutes = EXCLUDED.break_minutes,
			long_break_minutes = EXCLUDED.long_break_minutes,
			cycle_count = EXCLUDED.cycle_count,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`
	userID, teamID := ownerRefs(policy.Owner())
	_, err := exec.Exec(ctx, query,
		policy.ID(), userID, teamID,
		policy.FocusMinutes(), policy.BreakMinutes(), policy.LongBreakMinutes(),
		policy.CycleCount(), policy.IsActive(),
		policy.CreatedAt(), policy.UpdatedAt(),
	)
	return err
}

// FindActiveByOwner returns the oldest active policy for the owner.
// First match wins when several are active.
func (r *PostgresBreakPolicyRepository) FindActiveByOwner(ctx context.Context, owner domain.Owner) (*domain.BreakPolicy, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT id, user_id, team_id, focus_minutes, break_minutes, long_break_minutes, cycle_count, active, created_at, updated_at
		FROM break_policies
		WHERE active AND (user_id = $1 OR team_id = $2)
		ORDER BY created_at
		LIMIT 1
	`
	userID, teamID := ownerRefs(owner)

	var (
		id                 uuid.UUID
		rowUserID          *uuid.UUID
		rowTeamID          *uuid.UUID
		focus, brk, long   int
		cycles             int
		active             bool
		createdAt, updated time.Time
	)
	err := exec.QueryRow(ctx, query, userID, teamID).Scan(
		&id, &rowUserID, &rowTeamID, &focus, &brk, &long, &cycles, &active, &createdAt, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return domain.RehydrateBreakPolicy(
		id, ownerFromRefs(rowUserID, rowTeamID),
		focus, brk, long, cycles, active, createdAt, updated,
	), nil
}
