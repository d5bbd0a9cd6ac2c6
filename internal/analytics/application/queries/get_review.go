package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

// GetReviewQuery requests one day's review.
type GetReviewQuery struct {
	UserID uuid.UUID
	Date   time.Time
}

// ReviewDTO is the read model for a daily review.
type ReviewDTO struct {
	Date              time.Time `json:"date"`
	TasksPlanned      int       `json:"tasks_planned"`
	TasksCompleted    int       `json:"tasks_completed"`
	CompletionRate    float64   `json:"completion_rate"`
	FocusMinutes      int       `json:"focus_minutes"`
	BreakMinutes      int       `json:"break_minutes"`
	ProductivityScore float64   `json:"productivity_score"`
	CurrentStreak     int       `json:"current_streak"`
	Summary           string    `json:"summary,omitempty"`
	Mood              string    `json:"mood,omitempty"`
	Highlights        []string  `json:"highlights,omitempty"`
	Lessons           []string  `json:"lessons,omitempty"`
	TomorrowTop       []string  `json:"tomorrow_top,omitempty"`
}

// GetReviewHandler handles the GetReviewQuery.
type GetReviewHandler struct {
	reviews domain.DailyReviewRepository
}

// NewGetReviewHandler creates a new GetReviewHandler.
func NewGetReviewHandler(reviews domain.DailyReviewRepository) *GetReviewHandler {
	return &GetReviewHandler{reviews: reviews}
}

// Handle executes the GetReviewQuery. Returns domain.ErrNotFound when the
// day has no review yet.
func (h *GetReviewHandler) Handle(ctx context.Context, query GetReviewQuery) (*ReviewDTO, error) {
	review, err := h.reviews.FindByUserAndDate(ctx, query.UserID, query.Date)
	if err != nil {
		return nil, err
	}
	return &ReviewDTO{
		Date:              review.Date(),
		TasksPlanned:      review.TasksPlanned(),
		TasksCompleted:    review.TasksCompleted(),
		CompletionRate:    review.CompletionRate(),
		FocusMinutes:      review.FocusTimeMinutes(),
		BreakMinutes:      review.BreakTimeMinutes(),
		ProductivityScore: review.ProductivityScore(),
		CurrentStreak:     review.CurrentStreak(),
		Summary:           review.Summary(),
		Mood:              review.Mood(),
		Highlights:        review.Highlights(),
		Lessons:           review.Lessons(),
		TomorrowTop:       review.TomorrowTop(),
	}, nil
}
