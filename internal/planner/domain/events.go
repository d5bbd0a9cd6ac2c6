package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

// ScheduleCommittedEvent is raised when a previewed schedule is persisted.
type ScheduleCommittedEvent struct {
	sharedDomain.BaseEvent
	UserID         uuid.UUID
	Scope          string
	Date           time.Time
	BlockCount     int
	PlannedMinutes int
}

// NewScheduleCommittedEvent creates a schedule committed event.
func NewScheduleCommittedEvent(userID uuid.UUID, scope string, date time.Time, blockCount, plannedMinutes int) *ScheduleCommittedEvent {
	return &ScheduleCommittedEvent{
		BaseEvent:      sharedDomain.NewBaseEvent(userID, "schedule", "schedule.committed"),
		UserID:         userID,
		Scope:          scope,
		Date:           date,
		BlockCount:     blockCount,
		PlannedMinutes: plannedMinutes,
	}
}

// BlocksRescheduledEvent is raised when incomplete work is replanned onto
// a new period.
type BlocksRescheduledEvent struct {
	sharedDomain.BaseEvent
	UserID      uuid.UUID
	FromDate    time.Time
	ToDate      time.Time
	TaskCount   int
	Reschedules int
}

// NewBlocksRescheduledEvent creates a blocks rescheduled event.
func NewBlocksRescheduledEvent(userID uuid.UUID, fromDate, toDate time.Time, taskCount, reschedules int) *BlocksRescheduledEvent {
	return &BlocksRescheduledEvent{
		BaseEvent:   sharedDomain.NewBaseEvent(userID, "schedule", "schedule.rescheduled"),
		UserID:      userID,
		FromDate:    fromDate,
		ToDate:      toDate,
		TaskCount:   taskCount,
		Reschedules: reschedules,
	}
}
