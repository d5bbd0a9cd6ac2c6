package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/application/services"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/tempo/internal/shared/application"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// CommitScheduleCommand requests persisting the previewed schedule for a
// scope and date.
type CommitScheduleCommand struct {
	UserID uuid.UUID
	Scope  services.Scope
	Date   time.Time
}

// CommitScheduleResult reports what was persisted.
type CommitScheduleResult struct {
	BlockIDs       []uuid.UUID
	BlockCount     int
	PlannedMinutes int
	CapacityUsage  float64
}

// CommitScheduleHandler handles the CommitScheduleCommand.
type CommitScheduleHandler struct {
	scheduler *services.Scheduler
	blocks    domain.TimeBlockRepository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewCommitScheduleHandler creates a new CommitScheduleHandler.
func NewCommitScheduleHandler(
	scheduler *services.Scheduler,
	blocks domain.TimeBlockRepository,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *CommitScheduleHandler {
	return &CommitScheduleHandler{
		scheduler: scheduler,
		blocks:    blocks,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle computes the schedule, persists every block as committed inside
// one transaction, and publishes a committed event afterwards. A failure
// rolls the whole batch back.
func (h *CommitScheduleHandler) Handle(ctx context.Context, cmd CommitScheduleCommand) (*CommitScheduleResult, error) {
	preview, err := h.scheduler.Preview(ctx, cmd.UserID, cmd.Scope, cmd.Date)
	if err != nil {
		return nil, err
	}

	blocks, err := services.MaterializeBlocks(preview)
	if err != nil {
		return nil, err
	}
	for _, block := range blocks {
		if err := block.Commit(); err != nil {
			return nil, err
		}
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.blocks.SaveAll(txCtx, blocks)
	})
	if err != nil {
		h.logger.Error("schedule commit failed",
			"user_id", cmd.UserID, "scope", cmd.Scope,
			"date", cmd.Date.Format("2006-01-02"), "error", err)
		return nil, fmt.Errorf("commit schedule: %w", err)
	}

	h.publishCommitted(ctx, cmd, preview)

	ids := make([]uuid.UUID, 0, len(blocks))
	for _, block := range blocks {
		ids = append(ids, block.ID())
	}
	return &CommitScheduleResult{
		BlockIDs:       ids,
		BlockCount:     len(blocks),
		PlannedMinutes: preview.PlannedMinutes,
		CapacityUsage:  preview.CapacityUsage,
	}, nil
}

func (h *CommitScheduleHandler) publishCommitted(ctx context.Context, cmd CommitScheduleCommand, preview *services.ScheduleResult) {
	event := domain.NewScheduleCommittedEvent(cmd.UserID, string(cmd.Scope), preview.Date, len(preview.Blocks), preview.PlannedMinutes)
	payload, err := json.Marshal(map[string]any{
		"event_id":        event.EventID(),
		"user_id":         event.UserID,
		"scope":           event.Scope,
		"date":            event.Date.Format("2006-01-02"),
		"block_count":     event.BlockCount,
		"planned_minutes": event.PlannedMinutes,
		"occurred_at":     event.OccurredAt(),
	})
	if err != nil {
		h.logger.Error("failed to encode committed event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		h.logger.Warn("failed to publish committed event",
			"user_id", cmd.UserID, "error", err)
	}
}
