package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("entity not found")

// DailyReviewRepository defines persistence for daily reviews.
type DailyReviewRepository interface {
	// Save persists a review (create or update). Creating a second
	// review for the same (user, date) fails.
	Save(ctx context.Context, review *DailyReview) error

	// FindByUserAndDate returns the review for a date, or ErrNotFound.
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyReview, error)

	// FindLatestBefore returns the most recent review strictly before
	// the date, or ErrNotFound.
	FindLatestBefore(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyReview, error)

	// FindByUserSince returns reviews on or after the date, oldest
	// first.
	FindByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*DailyReview, error)

	// CountByUser returns how many reviews the user has.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// ProductivityInsightRepository defines persistence for insights.
type ProductivityInsightRepository interface {
	// Upsert creates or replaces the insight for its (user, type) key.
	Upsert(ctx context.Context, insight *ProductivityInsight) error

	// FindActiveByUser returns the user's active insights.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*ProductivityInsight, error)

	// FindByUserAndType returns one insight, or ErrNotFound.
	FindByUserAndType(ctx context.Context, userID uuid.UUID, insightType InsightType) (*ProductivityInsight, error)

	// PurgeExpired removes insights whose validity ended before the
	// cutoff. Returns the number of purged rows.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// WorkGoalRepository defines persistence for work goals.
type WorkGoalRepository interface {
	// Save persists a goal (create or update).
	Save(ctx context.Context, goal *WorkGoal) error

	// FindByID returns a goal, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*WorkGoal, error)

	// FindByOwner returns the owner's goals ordered by name.
	FindByOwner(ctx context.Context, ownerUserID, ownerTeamID uuid.UUID) ([]*WorkGoal, error)
}
