package commands

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/felixgeelhaar/tempo/internal/analytics/application/services"
	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// GenerateInsightsCommand requests regenerating a user's insights.
type GenerateInsightsCommand struct {
	UserID uuid.UUID
}

// GenerateInsightsHandler handles the GenerateInsightsCommand.
type GenerateInsightsHandler struct {
	generator *services.InsightGenerator
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewGenerateInsightsHandler creates a new GenerateInsightsHandler.
func NewGenerateInsightsHandler(generator *services.InsightGenerator, publisher eventbus.Publisher, logger *slog.Logger) *GenerateInsightsHandler {
	return &GenerateInsightsHandler{
		generator: generator,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the GenerateInsightsCommand. An empty result means the
// user lacks the review history to learn from.
func (h *GenerateInsightsHandler) Handle(ctx context.Context, cmd GenerateInsightsCommand) (map[domain.InsightType]*domain.ProductivityInsight, error) {
	insights, err := h.generator.Generate(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if len(insights) > 0 {
		h.publishGenerated(ctx, cmd.UserID, insights)
	}
	return insights, nil
}

func (h *GenerateInsightsHandler) publishGenerated(ctx context.Context, userID uuid.UUID, insights map[domain.InsightType]*domain.ProductivityInsight) {
	event := sharedDomain.NewBaseEvent(userID, "insights", "insights.generated")
	types := make([]string, 0, len(insights))
	for insightType := range insights {
		types = append(types, string(insightType))
	}
	payload, err := json.Marshal(map[string]any{
		"event_id":    event.EventID(),
		"user_id":     userID,
		"types":       types,
		"occurred_at": event.OccurredAt(),
	})
	if err != nil {
		h.logger.Error("failed to encode insights event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		h.logger.Warn("failed to publish insights event",
			"user_id", userID, "error", err)
	}
}
