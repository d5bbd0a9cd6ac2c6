package services

import (
	"context"
	"fmt"

	analyticsDomain "github.com/felixgeelhaar/tempo/internal/analytics/domain"
	plannerServices "github.com/felixgeelhaar/tempo/internal/planner/application/services"
	"github.com/google/uuid"
)

// InsightProvider adapts stored insights into the parameters the
// scheduler consumes. It satisfies the planner's InsightProvider
// interface.
type InsightProvider struct {
	insights analyticsDomain.ProductivityInsightRepository
}

// NewInsightProvider creates an insight provider.
func NewInsightProvider(insights analyticsDomain.ProductivityInsightRepository) *InsightProvider {
	return &InsightProvider{insights: insights}
}

// SchedulingParams returns the user's learned peak hours and optimal
// task duration. Missing insights leave zero values, which the scheduler
// treats as "use defaults".
func (p *InsightProvider) SchedulingParams(ctx context.Context, userID uuid.UUID) (plannerServices.SchedulingParams, error) {
	var params plannerServices.SchedulingParams

	active, err := p.insights.FindActiveByUser(ctx, userID)
	if err != nil {
		return params, fmt.Errorf("load insights for user %s: %w", userID, err)
	}

	for _, insight := range active {
		switch insight.Type() {
		case analyticsDomain.InsightPeakHours:
			params.PeakHours = intSlice(insight.Data()["hours"])
		case analyticsDomain.InsightTaskDuration:
			if minutes := asFloat(insight.Data()["optimal_minutes"]); minutes > 0 {
				params.OptimalDuration = int(minutes)
			}
		}
	}
	return params, nil
}

// intSlice coerces the JSON round-tripped hour list back to ints. JSONB
// decoding yields []any of float64.
func intSlice(v any) []int {
	switch vals := v.(type) {
	case []int:
		return vals
	case []any:
		out := make([]int, 0, len(vals))
		for _, item := range vals {
			if f := asFloat(item); f >= 0 {
				out = append(out, int(f))
			}
		}
		return out
	default:
		return nil
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return -1
	}
}
