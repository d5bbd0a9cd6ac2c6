package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// SQLiteTimeBlockRepository implements domain.TimeBlockRepository on the
// embedded database used in local mode.
type SQLiteTimeBlockRepository struct {
	db *sql.DB
}

// NewSQLiteTimeBlockRepository creates a new SQLite time block repository.
func NewSQLiteTimeBlockRepository(db *sql.DB) *SQLiteTimeBlockRepository {
	return &SQLiteTimeBlockRepository{db: db}
}

// SaveAll persists a batch of blocks in one transaction.
func (r *SQLiteTimeBlockRepository) SaveAll(ctx context.Context, blocks []*domain.TimeBlock) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO time_blocks (id, user_id, team_id, task_id, title, start_time, end_time, status, is_break, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, block := range blocks {
		userID, teamID := sqliteOwnerRefs(block.Owner())
		_, err := tx.ExecContext(ctx, query,
			block.ID().String(), userID, teamID, sqliteTaskRef(block.TaskID()),
			block.Title(), block.Start().UTC(), block.End().UTC(),
			string(block.Status()), block.IsBreak(), string(block.Source()),
			block.CreatedAt().UTC(), block.UpdatedAt().UTC(),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindByID finds a block by its ID.
func (r *SQLiteTimeBlockRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TimeBlock, error) {
	query := `
		SELECT id, user_id, team_id, task_id, title, start_time, end_time, status, is_break, source, created_at, updated_at
		FROM time_blocks
		WHERE id = ?
	`
	return scanSQLiteBlock(r.db.QueryRowContext(ctx, query, id.String()))
}

// FindByUserAndRange returns a user's blocks overlapping [start, end).
func (r *SQLiteTimeBlockRepository) FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.TimeBlock, error) {
	query := `
		SELECT id, user_id, team_id, task_id, title, start_time, end_time, status, is_break, source, created_at, updated_at
		FROM time_blocks
		WHERE user_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time
	`
	rows, err := r.db.QueryContext(ctx, query, userID.String(), end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSQLiteBlocks(rows)
}

// FindByStatusInRange returns a user's blocks with the given status
// overlapping [start, end).
func (r *SQLiteTimeBlockRepository) FindByStatusInRange(ctx context.Context, userID uuid.UUID, status domain.BlockStatus, start, end time.Time) ([]*domain.TimeBlock, error) {
	query := `
		SELECT id, user_id, team_id, task_id, title, start_time, end_time, status, is_break, source, created_at, updated_at
		FROM time_blocks
		WHERE user_id = ? AND status = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time
	`
	rows, err := r.db.QueryContext(ctx, query, userID.String(), string(status), end.UTC(), start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSQLiteBlocks(rows)
}

// Update persists status and timing changes to an existing block.
func (r *SQLiteTimeBlockRepository) Update(ctx context.Context, block *domain.TimeBlock) error {
	query := `
		UPDATE time_blocks
		SET start_time = ?, end_time = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		block.Start().UTC(), block.End().UTC(), string(block.Status()),
		block.UpdatedAt().UTC(), block.ID().String(),
	)
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

// DeletePlannedAfter removes the user's planned blocks for the given
// tasks starting at or after the given instant.
func (r *SQLiteTimeBlockRepository) DeletePlannedAfter(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID, after time.Time) (int, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	placeholders := ""
	args := []any{userID.String(), string(domain.BlockStatusPlanned)}
	for i, id := range taskIDs {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args = append(args, id.String())
	}
	args = append(args, after.UTC())

	query := `
		DELETE FROM time_blocks
		WHERE user_id = ? AND status = ? AND task_id IN (` + placeholders + `) AND start_time >= ?
	`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

type sqliteRow interface {
	Scan(dest ...any) error
}

func scanSQLiteBlock(row sqliteRow) (*domain.TimeBlock, error) {
	var (
		id                   string
		userID, teamID       sql.NullString
		taskID               sql.NullString
		title, status, src   string
		start, end           time.Time
		isBreak              bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &userID, &teamID, &taskID, &title, &start, &end, &status, &isBreak, &src, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	blockID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	owner := domain.Owner{}
	if userID.Valid {
		uid, err := uuid.Parse(userID.String)
		if err != nil {
			return nil, err
		}
		owner = domain.UserOwner(uid)
	} else if teamID.Valid {
		tid, err := uuid.Parse(teamID.String)
		if err != nil {
			return nil, err
		}
		owner = domain.TeamOwner(tid)
	}

	task := uuid.Nil
	if taskID.Valid {
		task, err = uuid.Parse(taskID.String)
		if err != nil {
			return nil, err
		}
	}

	return domain.RehydrateTimeBlock(
		blockID, owner, task, title, start, end,
		domain.BlockStatus(status), isBreak, domain.BlockSource(src),
		createdAt, updatedAt,
	), nil
}

func collectSQLiteBlocks(rows *sql.Rows) ([]*domain.TimeBlock, error) {
	var blocks []*domain.TimeBlock
	for rows.Next() {
		block, err := scanSQLiteBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

func sqliteOwnerRefs(owner domain.Owner) (any, any) {
	var userID, teamID any
	if owner.IsUser() {
		userID = owner.UserID().String()
	}
	if owner.IsTeam() {
		teamID = owner.TeamID().String()
	}
	return userID, teamID
}

func sqliteTaskRef(taskID uuid.UUID) any {
	if taskID == uuid.Nil {
		return nil
	}
	return taskID.String()
}
