package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/google/uuid"
)

// GetInsightsQuery requests a user's active insights.
type GetInsightsQuery struct {
	UserID uuid.UUID
}

// InsightDTO is the read model for one insight.
type InsightDTO struct {
	Type            string         `json:"type"`
	Data            map[string]any `json:"data"`
	ConfidenceScore float64        `json:"confidence_score"`
	SampleSize      int            `json:"sample_size"`
	ValidUntil      time.Time      `json:"valid_until"`
}

// GetInsightsHandler handles the GetInsightsQuery.
type GetInsightsHandler struct {
	insights domain.ProductivityInsightRepository
}

// NewGetInsightsHandler creates a new GetInsightsHandler.
func NewGetInsightsHandler(insights domain.ProductivityInsightRepository) *GetInsightsHandler {
	return &GetInsightsHandler{insights: insights}
}

// Handle executes the GetInsightsQuery.
func (h *GetInsightsHandler) Handle(ctx context.Context, query GetInsightsQuery) (map[string]InsightDTO, error) {
	active, err := h.insights.FindActiveByUser(ctx, query.UserID)
	if err != nil {
		return nil, fmt.Errorf("load insights: %w", err)
	}

	out := make(map[string]InsightDTO, len(active))
	for _, insight := range active {
		out[string(insight.Type())] = InsightDTO{
			Type:            string(insight.Type()),
			Data:            insight.Data(),
			ConfidenceScore: insight.ConfidenceScore(),
			SampleSize:      insight.SampleSize(),
			ValidUntil:      insight.ValidUntil(),
		}
	}
	return out, nil
}
