package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("entity not found")

// TimeBlockRepository defines persistence for time blocks.
type TimeBlockRepository interface {
	// SaveAll persists a batch of blocks inside the ambient transaction.
	SaveAll(ctx context.Context, blocks []*TimeBlock) error

	// FindByID finds a block by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*TimeBlock, error)

	// FindByUserAndRange returns a user's blocks overlapping [start, end)
	// in chronological order.
	FindByUserAndRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*TimeBlock, error)

	// FindByStatusInRange returns a user's blocks with the given status
	// overlapping [start, end).
	FindByStatusInRange(ctx context.Context, userID uuid.UUID, status BlockStatus, start, end time.Time) ([]*TimeBlock, error)

	// Update persists status and timing changes to an existing block.
	Update(ctx context.Context, block *TimeBlock) error

	// DeletePlannedAfter removes the user's planned blocks for the
	// given tasks starting at or after the given instant. Blocks for
	// other tasks are left alone. Returns the number of deleted rows.
	DeletePlannedAfter(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID, after time.Time) (int, error)
}

// BreakPolicyRepository defines persistence for break policies.
type BreakPolicyRepository interface {
	// Save persists a policy (create or update).
	Save(ctx context.Context, policy *BreakPolicy) error

	// FindActiveByOwner returns the first active policy for the owner,
	// or ErrNotFound.
	FindActiveByOwner(ctx context.Context, owner Owner) (*BreakPolicy, error)
}

// AvailabilityTemplateRepository defines persistence for availability
// templates.
type AvailabilityTemplateRepository interface {
	// Save persists a template.
	Save(ctx context.Context, template *AvailabilityTemplate) error

	// FindByOwnerAndWeekday returns the owner's templates for a weekday
	// ordered by start time.
	FindByOwnerAndWeekday(ctx context.Context, owner Owner, dayOfWeek int) ([]*AvailabilityTemplate, error)

	// Delete removes a template.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CalendarEventRepository defines persistence for calendar events.
type CalendarEventRepository interface {
	// Save persists an event.
	Save(ctx context.Context, event *CalendarEvent) error

	// FindBusyOverlapping returns busy events for the user or their team
	// overlapping [start, end), ordered by start time. teamID may be
	// uuid.Nil when the user has no team.
	FindBusyOverlapping(ctx context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*CalendarEvent, error)

	// FindByUserAndRange returns all events, busy or free, overlapping
	// [start, end), ordered by start time.
	FindByUserAndRange(ctx context.Context, userID, teamID uuid.UUID, start, end time.Time) ([]*CalendarEvent, error)
}
