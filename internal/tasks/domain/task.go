// Package domain holds the read model over tasks that scheduling and
// analytics consume. Task lifecycle and CRUD live in an external system;
// this package only mirrors the fields the engine needs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEstimateMinutes is assumed when a task carries no estimate.
const DefaultEstimateMinutes = 60

// Task is a read-only projection of an externally owned task.
type Task struct {
	id               uuid.UUID
	title            string
	priority         Priority
	dueDate          *time.Time
	isHardDue        bool
	estimatedMinutes int // 0 when unknown
	estimatedHours   float64
	isCompleted      bool
	completedAt      *time.Time
	snoozedUntil     *time.Time
	backlogDate      *time.Time
	startAt          *time.Time
	workGoalID       uuid.UUID // uuid.Nil when not linked to a goal
	dependencyIDs    []uuid.UUID
	openDependencies int
}

// TaskRecord carries the raw field values a task store returns.
type TaskRecord struct {
	ID               uuid.UUID
	Title            string
	Priority         Priority
	DueDate          *time.Time
	IsHardDue        bool
	EstimatedMinutes int
	EstimatedHours   float64
	IsCompleted      bool
	CompletedAt      *time.Time
	SnoozedUntil     *time.Time
	BacklogDate      *time.Time
	StartAt          *time.Time
	WorkGoalID       uuid.UUID
	DependencyIDs    []uuid.UUID
	OpenDependencies int
}

// FromRecord builds the read model from raw store fields.
func FromRecord(r TaskRecord) *Task {
	return &Task{
		id:               r.ID,
		title:            r.Title,
		priority:         r.Priority,
		dueDate:          r.DueDate,
		isHardDue:        r.IsHardDue,
		estimatedMinutes: r.EstimatedMinutes,
		estimatedHours:   r.EstimatedHours,
		isCompleted:      r.IsCompleted,
		completedAt:      r.CompletedAt,
		snoozedUntil:     r.SnoozedUntil,
		backlogDate:      r.BacklogDate,
		startAt:          r.StartAt,
		workGoalID:       r.WorkGoalID,
		dependencyIDs:    r.DependencyIDs,
		openDependencies: r.OpenDependencies,
	}
}

// Getters
func (t *Task) ID() uuid.UUID            { return t.id }
func (t *Task) Title() string            { return t.title }
func (t *Task) Priority() Priority       { return t.priority }
func (t *Task) DueDate() *time.Time      { return t.dueDate }
func (t *Task) IsHardDue() bool          { return t.isHardDue }
func (t *Task) IsCompleted() bool        { return t.isCompleted }
func (t *Task) CompletedAt() *time.Time  { return t.completedAt }
func (t *Task) SnoozedUntil() *time.Time { return t.snoozedUntil }
func (t *Task) BacklogDate() *time.Time  { return t.backlogDate }
func (t *Task) StartAt() *time.Time      { return t.startAt }
func (t *Task) WorkGoalID() uuid.UUID    { return t.workGoalID }

// HasWorkGoal reports whether the task is linked to a work goal.
func (t *Task) HasWorkGoal() bool {
	return t.workGoalID != uuid.Nil
}

// HasEstimate reports whether the task carries any duration estimate.
func (t *Task) HasEstimate() bool {
	return t.estimatedMinutes > 0 || t.estimatedHours > 0
}

// EstimatedDuration returns the task's estimate in minutes, preferring
// the minute field, falling back to hours, then to the default.
func (t *Task) EstimatedDuration() int {
	if t.estimatedMinutes > 0 {
		return t.estimatedMinutes
	}
	if t.estimatedHours > 0 {
		return int(t.estimatedHours * 60)
	}
	return DefaultEstimateMinutes
}

// EstimatedMinutes returns the raw minute estimate, 0 when unknown.
func (t *Task) EstimatedMinutes() int {
	return t.estimatedMinutes
}

// DependenciesSatisfied reports whether every dependency is complete.
func (t *Task) DependenciesSatisfied() bool {
	return t.openDependencies == 0
}
