package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	analyticsDomain "github.com/felixgeelhaar/tempo/internal/analytics/domain"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

// MinReviewsForInsights is how many daily reviews a user needs before
// insight generation produces anything.
const MinReviewsForInsights = 7

// Analysis horizons.
const (
	blockLookbackDays  = 30
	trendLookbackWeeks = 8
)

// DefaultPeakHours is assumed when no completed work exists to learn from.
var DefaultPeakHours = []int{9, 10, 11, 14, 15}

// InsightGenerator derives confidence-scored scheduling parameters from
// a user's execution history.
type InsightGenerator struct {
	reviews  analyticsDomain.DailyReviewRepository
	insights analyticsDomain.ProductivityInsightRepository
	blocks   plannerDomain.TimeBlockRepository
	tasks    tasksDomain.Source
	logger   *slog.Logger
}

// NewInsightGenerator creates an insight generator.
func NewInsightGenerator(
	reviews analyticsDomain.DailyReviewRepository,
	insights analyticsDomain.ProductivityInsightRepository,
	blocks plannerDomain.TimeBlockRepository,
	tasks tasksDomain.Source,
	logger *slog.Logger,
) *InsightGenerator {
	return &InsightGenerator{
		reviews:  reviews,
		insights: insights,
		blocks:   blocks,
		tasks:    tasks,
		logger:   logger,
	}
}

// Generate recomputes every insight type for the user. With fewer than
// MinReviewsForInsights reviews it returns an empty map, not an error.
func (g *InsightGenerator) Generate(ctx context.Context, userID uuid.UUID) (map[analyticsDomain.InsightType]*analyticsDomain.ProductivityInsight, error) {
	count, err := g.reviews.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	if count < MinReviewsForInsights {
		g.logger.Debug("insufficient history for insights",
			"user_id", userID, "reviews", count)
		return map[analyticsDomain.InsightType]*analyticsDomain.ProductivityInsight{}, nil
	}

	now := time.Now().UTC()
	result := make(map[analyticsDomain.InsightType]*analyticsDomain.ProductivityInsight)

	completedBlocks, err := g.blocks.FindByStatusInRange(ctx, userID, plannerDomain.BlockStatusCompleted,
		now.AddDate(0, 0, -blockLookbackDays), now)
	if err != nil {
		return nil, fmt.Errorf("load completed blocks: %w", err)
	}
	result[analyticsDomain.InsightPeakHours] = g.peakHours(userID, completedBlocks)

	completedTasks, err := g.tasks.FindCompletedBetween(ctx, userID, now.AddDate(0, 0, -blockLookbackDays), now)
	if err != nil {
		return nil, fmt.Errorf("load completed tasks: %w", err)
	}
	result[analyticsDomain.InsightTaskDuration] = g.taskDuration(userID, completedTasks)

	recentReviews, err := g.reviews.FindByUserSince(ctx, userID, now.AddDate(0, 0, -trendLookbackWeeks*7))
	if err != nil {
		return nil, fmt.Errorf("load recent reviews: %w", err)
	}
	result[analyticsDomain.InsightBreakPattern] = g.breakPattern(userID, recentReviews)
	result[analyticsDomain.InsightWeeklyTrend] = g.weeklyTrend(userID, recentReviews)
	result[analyticsDomain.InsightCompletionPattern] = g.completionPattern(userID, recentReviews)

	for _, insight := range result {
		if err := g.insights.Upsert(ctx, insight); err != nil {
			return nil, fmt.Errorf("upsert %s insight: %w", insight.Type(), err)
		}
	}

	g.logger.Info("insights generated", "user_id", userID, "types", len(result))
	return result, nil
}

// peakHours finds the hours holding the top 40% of completed work block
// counts over the lookback window.
func (g *InsightGenerator) peakHours(userID uuid.UUID, blocks []*plannerDomain.TimeBlock) *analyticsDomain.ProductivityInsight {
	counts := make(map[int]int)
	samples := 0
	for _, block := range blocks {
		if block.IsBreak() {
			continue
		}
		counts[block.Start().Hour()]++
		samples++
	}

	hours := DefaultPeakHours
	if len(counts) > 0 {
		type hourCount struct {
			hour  int
			count int
		}
		ranked := make([]hourCount, 0, len(counts))
		for h, c := range counts {
			ranked = append(ranked, hourCount{h, c})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].count != ranked[j].count {
				return ranked[i].count > ranked[j].count
			}
			return ranked[i].hour < ranked[j].hour
		})

		take := len(ranked) * 2 / 5 // top 40%, at least one hour
		if take < 1 {
			take = 1
		}
		hours = make([]int, 0, take)
		for _, hc := range ranked[:take] {
			hours = append(hours, hc.hour)
		}
		sort.Ints(hours)
	}

	return analyticsDomain.NewProductivityInsight(userID, analyticsDomain.InsightPeakHours,
		map[string]any{"hours": hours},
		float64(min(100, samples*2)), samples)
}

// taskDuration computes the mean estimate of recently completed tasks
// that carried one.
func (g *InsightGenerator) taskDuration(userID uuid.UUID, tasks []*tasksDomain.Task) *analyticsDomain.ProductivityInsight {
	total := 0
	samples := 0
	for _, task := range tasks {
		if task.EstimatedMinutes() > 0 {
			total += task.EstimatedMinutes()
			samples++
		}
	}

	mean := 0.0
	if samples > 0 {
		mean = float64(total) / float64(samples)
	}
	return analyticsDomain.NewProductivityInsight(userID, analyticsDomain.InsightTaskDuration,
		map[string]any{"optimal_minutes": mean},
		float64(min(100, samples*5)), samples)
}

// breakPattern picks the break:focus ratio of the single best-scoring
// review, clamped to a sane range.
func (g *InsightGenerator) breakPattern(userID uuid.UUID, reviews []*analyticsDomain.DailyReview) *analyticsDomain.ProductivityInsight {
	bestScore := -1.0
	bestRatio := 0.2
	samples := 0
	for _, review := range reviews {
		if review.FocusTimeMinutes() == 0 || review.BreakTimeMinutes() == 0 {
			continue
		}
		samples++
		if review.ProductivityScore() > bestScore {
			bestScore = review.ProductivityScore()
			bestRatio = review.BreakRatio()
		}
	}

	if bestRatio < 0.1 {
		bestRatio = 0.1
	}
	if bestRatio > 0.4 {
		bestRatio = 0.4
	}
	return analyticsDomain.NewProductivityInsight(userID, analyticsDomain.InsightBreakPattern,
		map[string]any{"ratio": bestRatio},
		float64(min(100, samples*3)), samples)
}

// weeklyTrend averages productivity scores per weekday over the trend
// window.
func (g *InsightGenerator) weeklyTrend(userID uuid.UUID, reviews []*analyticsDomain.DailyReview) *analyticsDomain.ProductivityInsight {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, review := range reviews {
		weekday := plannerDomain.Weekday(review.Date())
		sums[weekday] += review.ProductivityScore()
		counts[weekday]++
	}

	means := make(map[string]any, len(sums))
	for weekday, sum := range sums {
		means[fmt.Sprintf("%d", weekday)] = sum / float64(counts[weekday])
	}
	return analyticsDomain.NewProductivityInsight(userID, analyticsDomain.InsightWeeklyTrend,
		map[string]any{"scores": means},
		float64(min(100, len(reviews))), len(reviews))
}

// completionPattern tracks the mean completion rate and the weekday it
// peaks on.
func (g *InsightGenerator) completionPattern(userID uuid.UUID, reviews []*analyticsDomain.DailyReview) *analyticsDomain.ProductivityInsight {
	if len(reviews) == 0 {
		return analyticsDomain.NewProductivityInsight(userID, analyticsDomain.InsightCompletionPattern,
			map[string]any{"mean_rate": 0.0}, 0, 0)
	}

	total := 0.0
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, review := range reviews {
		total += review.CompletionRate()
		weekday := plannerDomain.Weekday(review.Date())
		sums[weekday] += review.CompletionRate()
		counts[weekday]++
	}

	bestDay := 0
	bestRate := -1.0
	for weekday, sum := range sums {
		rate := sum / float64(counts[weekday])
		if rate > bestRate {
			bestRate = rate
			bestDay = weekday
		}
	}

	return analyticsDomain.NewProductivityInsight(userID, analyticsDomain.InsightCompletionPattern,
		map[string]any{
			"mean_rate":    total / float64(len(reviews)),
			"best_weekday": bestDay,
		},
		float64(min(100, len(reviews)*2)), len(reviews))
}
