package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// SQLiteBreakPolicyRepository implements domain.BreakPolicyRepository on
// the embedded database.
type SQLiteBreakPolicyRepository struct {
	db *sql.DB
}

// NewSQLiteBreakPolicyRepository creates a new SQLite break policy
// repository.
func NewSQLiteBreakPolicyRepository(db *sql.DB) *SQLiteBreakPolicyRepository {
	return &SQLiteBreakPolicyRepository{db: db}
}

// Save upserts a policy.
func (r *SQLiteBreakPolicyRepository) Save(ctx context.Context, policy *domain.BreakPolicy) error {
	query := `
		INSERT INTO break_policies (id, user_id, team_id, focus_minutes, break_minutes, long_break_minutes, cycle_count, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			focus_minutes = excluded.focus_minutes,
			break_minutes = excluded.break_minutes,
			long_break_minutes = excluded.long_break_minutes,
			cycle_count = excluded.cycle_count,
			active = excluded.active,
			updated_at = excluded.updated_at
	`
	userID, teamID := sqliteOwnerRefs(policy.Owner())
	_, err := r.db.ExecContext(ctx, query,
		policy.ID().String(), userID, teamID,
		policy.FocusMinutes(), policy.BreakMinutes(), policy.LongBreakMinutes(),
		policy.CycleCount(), policy.IsActive(),
		policy.CreatedAt().UTC(), policy.UpdatedAt().UTC(),
	)
	return err
}

// FindActiveByOwner returns the oldest active policy for the owner.
func (r *SQLiteBreakPolicyRepository) FindActiveByOwner(ctx context.Context, owner domain.Owner) (*domain.BreakPolicy, error) {
	query := `
		SELECT id, user_id, team_id, focus_minutes, break_minutes, long_break_minutes, cycle_count, active, created_at, updated_at
		FROM break_policies
		WHERE active AND (user_id = ? OR team_id = ?)
		ORDER BY created_at
		LIMIT 1
	`
	userRef, teamRef := sqliteOwnerRefs(owner)

	var (
		id                   string
		userID, teamID       sql.NullString
		focus, brk, long     int
		cycles               int
		active               bool
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query, userRef, teamRef).Scan(
		&id, &userID, &teamID, &focus, &brk, &long, &cycles, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	policyID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	owner, err = sqliteOwnerFromRefs(userID, teamID)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateBreakPolicy(
		policyID, owner, focus, brk, long, cycles, active, createdAt, updatedAt,
	), nil
}

func sqliteOwnerFromRefs(userID, teamID sql.NullString) (domain.Owner, error) {
	if userID.Valid {
		id, err := uuid.Parse(userID.String)
		if err != nil {
			return domain.Owner{}, err
		}
		return domain.UserOwner(id), nil
	}
	if teamID.Valid {
		id, err := uuid.Parse(teamID.String)
		if err != nil {
			return domain.Owner{}, err
		}
		return domain.TeamOwner(id), nil
	}
	return domain.Owner{}, nil
}
