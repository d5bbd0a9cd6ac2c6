package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// MaxCandidates bounds how many eligible tasks a single scheduling run
// considers.
const MaxCandidates = 500

// CandidateFilter narrows the task set returned by the store. The store
// applies ownership, completion, snooze and backlog filtering; dependency
// checks happen via OpenDependencies on the returned records.
type CandidateFilter struct {
	UserID     uuid.UUID
	TeamID     uuid.UUID // uuid.Nil when the user has no team
	ScopeStart time.Time
	ScopeEnd   time.Time
	Limit      int // 0 means MaxCandidates
}

// Source is the engine's read interface over the external task store. The
// only write it permits is the startAt scheduling hint set during replan.
type Source interface {
	// FindCandidates returns incomplete tasks owned by, created by or
	// assigned to the user or their team, not snoozed beyond ScopeEnd,
	// with backlog date at or before ScopeStart.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]*Task, error)

	// FindByIDs loads tasks by ID.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Task, error)

	// FindCompletedBetween returns the user's tasks completed within
	// [start, end).
	FindCompletedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*Task, error)

	// FindByWorkGoal returns all tasks linked to a work goal, complete
	// or not.
	FindByWorkGoal(ctx context.Context, workGoalID uuid.UUID) ([]*Task, error)

	// UpdateStartAt sets the scheduling hint on a task.
	UpdateStartAt(ctx context.Context, taskID uuid.UUID, startAt time.Time) error
}
