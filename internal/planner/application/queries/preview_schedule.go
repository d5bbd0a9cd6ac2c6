package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/application/services"
	"github.com/google/uuid"
)

// PreviewScheduleQuery requests a schedule preview without persisting
// anything.
type PreviewScheduleQuery struct {
	UserID uuid.UUID
	Scope  services.Scope
	Date   time.Time
}

// PreviewScheduleHandler handles the PreviewScheduleQuery.
type PreviewScheduleHandler struct {
	scheduler *services.Scheduler
}

// NewPreviewScheduleHandler creates a new PreviewScheduleHandler.
func NewPreviewScheduleHandler(scheduler *services.Scheduler) *PreviewScheduleHandler {
	return &PreviewScheduleHandler{scheduler: scheduler}
}

// Handle executes the PreviewScheduleQuery.
func (h *PreviewScheduleHandler) Handle(ctx context.Context, query PreviewScheduleQuery) (*services.ScheduleResult, error) {
	return h.scheduler.Preview(ctx, query.UserID, query.Scope, query.Date)
}
