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

// PostgresTimeBlockRepository implements domain.TimeBlockRepository using
// PostgreSQL.
type PostgresTimeBlockRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTimeBlockRepository creates a new PostgreSQL time block
// repository.
func NewPostgresTimeBlockRepository(pool *pgxpool.Pool) *PostgresTimeBlockRepository {
	return &PostgresTimeBlockRepository{pool: pool}
}

type timeBlockRow struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	TeamID    *uuid.UUID
	TaskID    *uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	IsBreak   bool
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const timeBlockColumns = `id, user_id, team_id, task_id, title, start_time, end_time, status, is_break, source, created_at, updated_at`

// SaveAll inserts every block, using the ambient transaction when one is
// in the context.
func (r *PostgresTimeBlockRepository) SaveAll(ctx context.Context, blocks []*domain.TimeBlock) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		INSERT INTO time_blocks (` + timeBlockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, block := range blocks {
		userID, teamID, taskID := blockRefs(block)
		_, err := exec.Exec(ctx, query,
			block.ID(),
			userID,
			teamID,
			taskID,
			block.Title(),
			block.Start(),
			block.End(),
			string(block.Status()),
			block.IsBreak(),
			string(block.Source()),
			block.CreatedAt(),
			block.UpdatedAt(),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByID retrieves a block by its ID.
func (r *PostgresTimeBlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TimeBlock, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE id = $1`

	var row timeBlockRow
	err := exec.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.UserID, &row.TeamID, &row.TaskID, &row.Title,
		&row.StartTime, &row.EndTime, &row.Status, &row.IsBreak, &row.Source,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rowToTimeBlock(row), nil
}

// FindByUserAndRange returns blocks overlapping [start, end) ordered by
// start time.
func (r *PostgresTimeBlockRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.TimeBlock, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + timeBlockColumns + `
		FROM time_blocks
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`
	rows, err := exec.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeBlocks(rows)
}

// FindByStatusInRange returns a user's blocks with the given status
// overlapping [start, end).
func (r *PostgresTimeBlockRepository) FindByStatusInRange(ctx context.Context, userID uuid.UUID, status domain.BlockStatus, start, end time.Time) ([]*domain.TimeBlock, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT ` + timeBlockColumns + `
		FROM time_blocks
		WHERE user_id = $1 AND status = $2 AND start_time < $4 AND end_time > $3
		ORDER BY start_time
	`
	rows, err := exec.Query(ctx, query, userID, string(status), start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeBlocks(rows)
}

// Update persists status and timing changes.
func (r *PostgresTimeBlockRepository) Update(ctx context.Context, block *domain.TimeBlock) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		UPDATE time_blocks
		SET title = $2, start_time = $3, end_time = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := exec.Exec(ctx, query,
		block.ID(), block.Title(), block.Start(), block.End(),
		string(block.Status()), block.UpdatedAt())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeletePlannedAfter removes a user's planned blocks starting at or after
// the instant.
func (r *PostgresTimeBlockRepository) DeletePlannedAfter(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID, after time.Time) (int, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		DELETE FROM time_blocks
		WHERE user_id = $1 AND status = $2 AND task_id = ANY($3) AND start_time >= $4
	`
	result, err := exec.Exec(ctx, query, userID, string(domain.BlockStatusPlanned), taskIDs, after)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func scanTimeBlocks(rows pgx.Rows) ([]*domain.TimeBlock, error) {
	blocks := make([]*domain.TimeBlock, 0)
	for rows.Next() {
		var row timeBlockRow
		err := rows.Scan(
			&row.ID, &row.UserID, &row.TeamID, &row.TaskID, &row.Title,
			&row.StartTime, &row.EndTime, &row.Status, &row.IsBreak, &row.Source,
			&row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, rowToTimeBlock(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ActiveUserIDs returns the users with any time block touching the
// given range. The nightly worker uses it to know whose reviews to
// compute.
func (r *PostgresTimeBlockRepository) ActiveUserIDs(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	exec := sharedPersistence.Executor(ctx, r.pool)
	query := `
		SELECT DISTINCT user_id
		FROM time_blocks
		WHERE user_id IS NOT NULL AND start_time < $2 AND end_time > $1
		ORDER BY user_id
	`
	rows, err := exec.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func rowToTimeBlock(row timeBlockRow) *domain.TimeBlock {
	return domain.RehydrateTimeBlock(
		row.ID,
		ownerFromRefs(row.UserID, row.TeamID),
		derefUUID(row.TaskID),
		row.Title,
		row.StartTime,
		row.EndTime,
		domain.BlockStatus(row.Status),
		row.IsBreak,
		domain.BlockSource(row.Source),
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func blockRefs(block *domain.TimeBlock) (*uuid.UUID, *uuid.UUID, *uuid.UUID) {
	userID, teamID := ownerRefs(block.Owner())
	var taskID *uuid.UUID
	if block.HasTask() {
		id := block.TaskID()
		taskID = &id
	}
	return userID, teamID, taskID
}

func ownerRefs(owner domain.Owner) (*uuid.UUID, *uuid.UUID) {
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

func ownerFromRefs(userID, teamID *uuid.UUID) domain.Owner {
	if userID != nil {
		return domain.UserOwner(*userID)
	}
	if teamID != nil {
		return domain.TeamOwner(*teamID)
	}
	return domain.Owner{}
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
