package queries

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// ListTemplatesQuery requests an owner's availability templates for the
// whole week.
type ListTemplatesQuery struct {
	Owner domain.Owner
}

// TemplateDTO is the read model for one availability window.
type TemplateDTO struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

// ListTemplatesHandler handles the ListTemplatesQuery.
type ListTemplatesHandler struct {
	templates domain.AvailabilityTemplateRepository
}

// NewListTemplatesHandler creates a new ListTemplatesHandler.
func NewListTemplatesHandler(templates domain.AvailabilityTemplateRepository) *ListTemplatesHandler {
	return &ListTemplatesHandler{templates: templates}
}

// Handle executes the ListTemplatesQuery, ordered Monday through Sunday.
func (h *ListTemplatesHandler) Handle(ctx context.Context, query ListTemplatesQuery) ([]TemplateDTO, error) {
	var dtos []TemplateDTO
	for day := 0; day < 7; day++ {
		templates, err := h.templates.FindByOwnerAndWeekday(ctx, query.Owner, day)
		if err != nil {
			return nil, err
		}
		for _, template := range templates {
			dtos = append(dtos, TemplateDTO{
				ID:        template.ID(),
				DayOfWeek: template.DayOfWeek(),
				StartTime: template.StartTime().String(),
				EndTime:   template.EndTime().String(),
			})
		}
	}
	return dtos, nil
}
