package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// AddAvailabilityTemplateCommand declares a recurring working window for
// one weekday.
type AddAvailabilityTemplateCommand struct {
	Owner     domain.Owner
	DayOfWeek int    // 0=Monday .. 6=Sunday
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// AddAvailabilityTemplateHandler handles the AddAvailabilityTemplateCommand.
type AddAvailabilityTemplateHandler struct {
	templates domain.AvailabilityTemplateRepository
}

// NewAddAvailabilityTemplateHandler creates a new AddAvailabilityTemplateHandler.
func NewAddAvailabilityTemplateHandler(templates domain.AvailabilityTemplateRepository) *AddAvailabilityTemplateHandler {
	return &AddAvailabilityTemplateHandler{templates: templates}
}

// Handle executes the AddAvailabilityTemplateCommand.
func (h *AddAvailabilityTemplateHandler) Handle(ctx context.Context, cmd AddAvailabilityTemplateCommand) (*domain.AvailabilityTemplate, error) {
	start, err := domain.ParseTimeOfDay(cmd.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseTimeOfDay(cmd.EndTime)
	if err != nil {
		return nil, err
	}

	template, err := domain.NewAvailabilityTemplate(cmd.Owner, cmd.DayOfWeek, start, end)
	if err != nil {
		return nil, err
	}
	if err := h.templates.Save(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// RemoveAvailabilityTemplateHandler deletes a template by ID.
type RemoveAvailabilityTemplateHandler struct {
	templates domain.AvailabilityTemplateRepository
}

// NewRemoveAvailabilityTemplateHandler creates a new RemoveAvailabilityTemplateHandler.
func NewRemoveAvailabilityTemplateHandler(templates domain.AvailabilityTemplateRepository) *RemoveAvailabilityTemplateHandler {
	return &RemoveAvailabilityTemplateHandler{templates: templates}
}

// Handle deletes the template.
func (h *RemoveAvailabilityTemplateHandler) Handle(ctx context.Context, id uuid.UUID) error {
	return h.templates.Delete(ctx, id)
}
