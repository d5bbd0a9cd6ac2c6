package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrInvalidBlockStatus   = errors.New("invalid time block status transition")
	ErrBreakBlockHasTask    = errors.New("break blocks cannot reference a task")
)

// BlockStatus represents the lifecycle state of a time block.
type BlockStatus string

const (
	BlockStatusPlanned   BlockStatus = "planned"
	BlockStatusCommitted BlockStatus = "committed"
	BlockStatusActive    BlockStatus = "active"
	BlockStatusCompleted BlockStatus = "completed"
	BlockStatusCancelled BlockStatus = "cancelled"
)

// BlockSource records how a block came into existence.
type BlockSource string

const (
	BlockSourceAuto   BlockSource = "auto"
	BlockSourceManual BlockSource = "manual"
)

// TimeBlock is a scheduled slice of time assigned to either a task or a
// rest period.
type TimeBlock struct {
	sharedDomain.BaseEntity
	owner   Owner
	taskID  uuid.UUID // uuid.Nil for break blocks
	title   string
	start   time.Time
	end     time.Time
	status  BlockStatus
	isBreak bool
	source  BlockSource
}

// NewWorkBlock creates a planned work block for a task.
func NewWorkBlock(owner Owner, taskID uuid.UUID, title string, start, end time.Time, source BlockSource) (*TimeBlock, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	return &TimeBlock{
		BaseEntity: sharedDomain.NewBaseEntity(),
		owner:      owner,
		taskID:     taskID,
		title:      title,
		start:      start,
		end:        end,
		status:     BlockStatusPlanned,
		isBreak:    false,
		source:     source,
	}, nil
}

// NewBreakBlock creates a planned break block.
func NewBreakBlock(owner Owner, title string, start, end time.Time, source BlockSource) (*TimeBlock, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	return &TimeBlock{
		BaseEntity: sharedDomain.NewBaseEntity(),
		owner:      owner,
		title:      title,
		start:      start,
		end:        end,
		status:     BlockStatusPlanned,
		isBreak:    true,
		source:     source,
	}, nil
}

// Getters
func (tb *TimeBlock) Owner() Owner        { return tb.owner }
func (tb *TimeBlock) TaskID() uuid.UUID   { return tb.taskID }
func (tb *TimeBlock) Title() string       { return tb.title }
func (tb *TimeBlock) Start() time.Time    { return tb.start }
func (tb *TimeBlock) End() time.Time      { return tb.end }
func (tb *TimeBlock) Status() BlockStatus { return tb.status }
func (tb *TimeBlock) IsBreak() bool       { return tb.isBreak }
func (tb *TimeBlock) Source() BlockSource { return tb.source }

// DurationMinutes returns the block length in whole minutes.
func (tb *TimeBlock) DurationMinutes() int {
	return int(tb.end.Sub(tb.start) / time.Minute)
}

// HasTask reports whether the block references a task.
func (tb *TimeBlock) HasTask() bool {
	return tb.taskID != uuid.Nil
}

// Commit marks a planned block as committed to the schedule.
func (tb *TimeBlock) Commit() error {
	if tb.status != BlockStatusPlanned {
		return ErrInvalidBlockStatus
	}
	tb.status = BlockStatusCommitted
	tb.Touch()
	return nil
}

// Activate marks a committed block as in progress.
func (tb *TimeBlock) Activate() error {
	if tb.status != BlockStatusCommitted {
		return ErrInvalidBlockStatus
	}
	tb.status = BlockStatusActive
	tb.Touch()
	return nil
}

// Complete marks an active or committed block as done.
func (tb *TimeBlock) Complete() error {
	if tb.status != BlockStatusActive && tb.status != BlockStatusCommitted {
		return ErrInvalidBlockStatus
	}
	tb.status = BlockStatusCompleted
	tb.Touch()
	return nil
}

// Cancel removes the block from the active schedule. Completed blocks
// cannot be cancelled.
func (tb *TimeBlock) Cancel() error {
	if tb.status == BlockStatusCompleted {
		return ErrInvalidBlockStatus
	}
	tb.status = BlockStatusCancelled
	tb.Touch()
	return nil
}

// OverlapsWith checks if this block overlaps another in time.
func (tb *TimeBlock) OverlapsWith(other *TimeBlock) bool {
	return tb.start.Before(other.end) && tb.end.After(other.start)
}

// RehydrateTimeBlock recreates a time block from persisted state.
func RehydrateTimeBlock(
	id uuid.UUID,
	owner Owner,
	taskID uuid.UUID,
	title string,
	start, end time.Time,
	status BlockStatus,
	isBreak bool,
	source BlockSource,
	createdAt, updatedAt time.Time,
) *TimeBlock {
	return &TimeBlock{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		owner:      owner,
		taskID:     taskID,
		title:      title,
		start:      start,
		end:        end,
		status:     status,
		isBreak:    isBreak,
		source:     source,
	}
}
