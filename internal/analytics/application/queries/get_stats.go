package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

// Trend labels for productivity over the queried period.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
	TrendNoData    = "no_data"
)

// trendMargin is how far apart the half averages must be before the
// trend stops being stable.
const trendMargin = 5.0

// GetStatsQuery requests aggregate productivity statistics over a
// trailing number of days.
type GetStatsQuery struct {
	UserID uuid.UUID
	Days   int // 0 means 30
}

// StatsDTO is the aggregated productivity read model.
type StatsDTO struct {
	Days               int     `json:"days"`
	ReviewCount        int     `json:"review_count"`
	AvgProductivity    float64 `json:"avg_productivity"`
	AvgCompletionRate  float64 `json:"avg_completion_rate"`
	TotalFocusMinutes  int     `json:"total_focus_minutes"`
	TotalBreakMinutes  int     `json:"total_break_minutes"`
	BestDayScore       float64 `json:"best_day_score"`
	CurrentStreak      int     `json:"current_streak"`
	Trend              string  `json:"trend"`
}

// GetStatsHandler handles the GetStatsQuery.
type GetStatsHandler struct {
	reviews domain.DailyReviewRepository
}

// NewGetStatsHandler creates a new GetStatsHandler.
func NewGetStatsHandler(reviews domain.DailyReviewRepository) *GetStatsHandler {
	return &GetStatsHandler{reviews: reviews}
}

// Handle executes the GetStatsQuery.
func (h *GetStatsHandler) Handle(ctx context.Context, query GetStatsQuery) (*StatsDTO, error) {
	days := query.Days
	if days <= 0 {
		days = 30
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	reviews, err := h.reviews.FindByUserSince(ctx, query.UserID, since)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	stats := &StatsDTO{Days: days, ReviewCount: len(reviews), Trend: TrendNoData}
	if len(reviews) == 0 {
		return stats, nil
	}

	var scoreSum, rateSum float64
	for _, review := range reviews {
		scoreSum += review.ProductivityScore()
		rateSum += review.CompletionRate()
		stats.TotalFocusMinutes += review.FocusTimeMinutes()
		stats.TotalBreakMinutes += review.BreakTimeMinutes()
		if review.ProductivityScore() > stats.BestDayScore {
			stats.BestDayScore = review.ProductivityScore()
		}
	}
	stats.AvgProductivity = scoreSum / float64(len(reviews))
	stats.AvgCompletionRate = rateSum / float64(len(reviews))
	stats.CurrentStreak = reviews[len(reviews)-1].CurrentStreak()
	stats.Trend = trend(reviews)
	return stats, nil
}

// trend compares the average score of the older half of the period with
// the newer half.
func trend(reviews []*domain.DailyReview) string {
	if len(reviews) < 4 {
		return TrendNoData
	}

	mid := len(reviews) / 2
	older := averageScore(reviews[:mid])
	newer := averageScore(reviews[mid:])

	switch {
	case newer > older+trendMargin:
		return TrendImproving
	case newer < older-trendMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func averageScore(reviews []*domain.DailyReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0.0
	for _, review := range reviews {
		sum += review.ProductivityScore()
	}
	return sum / float64(len(reviews))
}
