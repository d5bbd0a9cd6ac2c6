package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

// WriteJournalCommand records the reflective part of a daily review.
type WriteJournalCommand struct {
	UserID      uuid.UUID
	Date        time.Time
	Summary     string
	Mood        string
	Highlights  []string
	Lessons     []string
	TomorrowTop []string
}

// WriteJournalHandler handles the WriteJournalCommand.
type WriteJournalHandler struct {
	reviews domain.DailyReviewRepository
}

// NewWriteJournalHandler creates a new WriteJournalHandler.
func NewWriteJournalHandler(reviews domain.DailyReviewRepository) *WriteJournalHandler {
	return &WriteJournalHandler{reviews: reviews}
}

// Handle executes the WriteJournalCommand. A review is created when the
// day has none yet, so journaling works before metrics are computed.
func (h *WriteJournalHandler) Handle(ctx context.Context, cmd WriteJournalCommand) (*domain.DailyReview, error) {
	review, err := h.reviews.FindByUserAndDate(ctx, cmd.UserID, cmd.Date)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("load review: %w", err)
		}
		review = domain.NewDailyReview(cmd.UserID, cmd.Date)
	}

	if err := review.WriteJournal(cmd.Summary, cmd.Mood, cmd.Highlights, cmd.Lessons, cmd.TomorrowTop); err != nil {
		return nil, err
	}
	if err := h.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}
	return review, nil
}
