package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	analyticsDomain "github.com/felixgeelhaar/tempo/internal/analytics/domain"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

// ReviewCalculator computes a user's daily review from committed time
// blocks and task completion records.
type ReviewCalculator struct {
	reviews analyticsDomain.DailyReviewRepository
	blocks  plannerDomain.TimeBlockRepository
	tasks   tasksDomain.Source
	logger  *slog.Logger
}

// NewReviewCalculator creates a review calculator.
func NewReviewCalculator(
	reviews analyticsDomain.DailyReviewRepository,
	blocks plannerDomain.TimeBlockRepository,
	tasks tasksDomain.Source,
	logger *slog.Logger,
) *ReviewCalculator {
	return &ReviewCalculator{
		reviews: reviews,
		blocks:  blocks,
		tasks:   tasks,
		logger:  logger,
	}
}

// Compute gets or creates the review for (user, date) and recomputes its
// metrics from that day's blocks. Calling it again with unchanged data
// yields the same result and never creates a second row.
func (c *ReviewCalculator) Compute(ctx context.Context, userID uuid.UUID, date time.Time) (*analyticsDomain.DailyReview, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	review, err := c.reviews.FindByUserAndDate(ctx, userID, dayStart)
	if err != nil {
		if !errors.Is(err, analyticsDomain.ErrNotFound) {
			return nil, fmt.Errorf("load review for %s: %w", dayStart.Format("2006-01-02"), err)
		}
		review = analyticsDomain.NewDailyReview(userID, dayStart)
	}

	blocks, err := c.blocks.FindByUserAndRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load blocks for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	planned, focusMinutes, breakMinutes := summarizeBlocks(blocks)

	completed, err := c.countCompleted(ctx, planned, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	previousStreak := 0
	if prior, err := c.reviews.FindLatestBefore(ctx, userID, dayStart); err == nil {
		previousStreak = prior.CurrentStreak()
	} else if !errors.Is(err, analyticsDomain.ErrNotFound) {
		return nil, fmt.Errorf("load prior review: %w", err)
	}

	review.ApplyMetrics(len(planned), completed, focusMinutes, breakMinutes, previousStreak)

	if err := c.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("save review for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	c.logger.Info("daily review computed",
		"user_id", userID,
		"date", dayStart.Format("2006-01-02"),
		"tasks_planned", len(planned),
		"tasks_completed", completed,
		"score", review.ProductivityScore(),
		"streak", review.CurrentStreak())
	return review, nil
}

// summarizeBlocks extracts the distinct scheduled task IDs and sums
// focus and break minutes over completed and active blocks.
func summarizeBlocks(blocks []*plannerDomain.TimeBlock) ([]uuid.UUID, int, int) {
	seen := make(map[uuid.UUID]bool)
	var planned []uuid.UUID
	focusMinutes := 0
	breakMinutes := 0

	for _, block := range blocks {
		if !block.IsBreak() && block.HasTask() && !seen[block.TaskID()] {
			seen[block.TaskID()] = true
			planned = append(planned, block.TaskID())
		}
		if block.Status() != plannerDomain.BlockStatusCompleted && block.Status() != plannerDomain.BlockStatusActive {
			continue
		}
		if block.IsBreak() {
			breakMinutes += block.DurationMinutes()
		} else {
			focusMinutes += block.DurationMinutes()
		}
	}
	return planned, focusMinutes, breakMinutes
}

func (c *ReviewCalculator) countCompleted(ctx context.Context, taskIDs []uuid.UUID, dayStart, dayEnd time.Time) (int, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	tasks, err := c.tasks.FindByIDs(ctx, taskIDs)
	if err != nil {
		return 0, fmt.Errorf("load scheduled tasks: %w", err)
	}
	completed := 0
	for _, task := range tasks {
		if task.IsCompleted() && task.CompletedAt() != nil &&
			!task.CompletedAt().Before(dayStart) && task.CompletedAt().Before(dayEnd) {
			completed++
		}
	}
	return completed, nil
}
