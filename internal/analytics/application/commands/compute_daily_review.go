package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/application/services"
	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

// ComputeDailyReviewCommand requests (re)computing the review for a date.
type ComputeDailyReviewCommand struct {
	UserID uuid.UUID
	Date   time.Time
}

// ComputeDailyReviewHandler handles the ComputeDailyReviewCommand.
type ComputeDailyReviewHandler struct {
	calculator *services.ReviewCalculator
}

// NewComputeDailyReviewHandler creates a new ComputeDailyReviewHandler.
func NewComputeDailyReviewHandler(calculator *services.ReviewCalculator) *ComputeDailyReviewHandler {
	return &ComputeDailyReviewHandler{calculator: calculator}
}

// Handle executes the ComputeDailyReviewCommand.
func (h *ComputeDailyReviewHandler) Handle(ctx context.Context, cmd ComputeDailyReviewCommand) (*domain.DailyReview, error) {
	return h.calculator.Compute(ctx, cmd.UserID, cmd.Date)
}
