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
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

// DefaultReplanDays is how far ahead a replan reaches when no target date
// is given.
const DefaultReplanDays = 7

// ReplanCommand moves incomplete work from a date onto a fresh schedule.
type ReplanCommand struct {
	UserID   uuid.UUID
	FromDate time.Time
	ToDate   *time.Time // nil means FromDate + DefaultReplanDays
}

// ReplanResult reports the outcome of a replan run.
type ReplanResult struct {
	Reschedules int
	TaskIDs     []uuid.UUID
	Blocks      []services.PlannedBlock
}

// ReplanHandler handles the ReplanCommand.
type ReplanHandler struct {
	scheduler *services.Scheduler
	blocks    domain.TimeBlockRepository
	tasks     tasksDomain.Source
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewReplanHandler creates a new ReplanHandler.
func NewReplanHandler(
	scheduler *services.Scheduler,
	blocks domain.TimeBlockRepository,
	tasks tasksDomain.Source,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *ReplanHandler {
	return &ReplanHandler{
		scheduler: scheduler,
		blocks:    blocks,
		tasks:     tasks,
		uow:       uow,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle finds tasks with planned but incomplete blocks on FromDate,
// drops those tasks' future planned blocks, regenerates a week at the
// target date and records each affected task's new start hint. No
// incomplete work yields an empty result, not an error.
func (h *ReplanHandler) Handle(ctx context.Context, cmd ReplanCommand) (*ReplanResult, error) {
	dayStart := time.Date(cmd.FromDate.Year(), cmd.FromDate.Month(), cmd.FromDate.Day(), 0, 0, 0, 0, cmd.FromDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	toDate := dayStart.AddDate(0, 0, DefaultReplanDays)
	if cmd.ToDate != nil {
		toDate = time.Date(cmd.ToDate.Year(), cmd.ToDate.Month(), cmd.ToDate.Day(), 0, 0, 0, 0, cmd.ToDate.Location())
	}

	taskIDs, err := h.incompleteTaskIDs(ctx, cmd.UserID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if len(taskIDs) == 0 {
		return &ReplanResult{}, nil
	}

	var result *ReplanResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		deleted, err := h.blocks.DeletePlannedAfter(txCtx, cmd.UserID, taskIDs, dayStart)
		if err != nil {
			return fmt.Errorf("delete planned blocks: %w", err)
		}

		schedule, err := h.scheduler.Generate(txCtx, cmd.UserID, services.ScopeWeek, toDate)
		if err != nil {
			return fmt.Errorf("regenerate schedule: %w", err)
		}

		blocks, err := services.MaterializeBlocks(schedule)
		if err != nil {
			return err
		}
		if err := h.blocks.SaveAll(txCtx, blocks); err != nil {
			return fmt.Errorf("persist replanned blocks: %w", err)
		}

		for _, taskID := range taskIDs {
			if start, ok := firstBlockStart(schedule.Blocks, taskID); ok {
				if err := h.tasks.UpdateStartAt(txCtx, taskID, start); err != nil {
					return fmt.Errorf("update start hint for task %s: %w", taskID, err)
				}
			}
		}

		h.logger.Info("replanned schedule",
			"user_id", cmd.UserID,
			"from", dayStart.Format("2006-01-02"),
			"to", toDate.Format("2006-01-02"),
			"deleted_blocks", deleted,
			"tasks", len(taskIDs))

		result = &ReplanResult{
			Reschedules: len(taskIDs),
			TaskIDs:     taskIDs,
			Blocks:      schedule.Blocks,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.publishRescheduled(ctx, cmd.UserID, dayStart, toDate, result)
	return result, nil
}

// incompleteTaskIDs collects tasks that had planned or committed work on
// the source date and are still incomplete.
func (h *ReplanHandler) incompleteTaskIDs(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]uuid.UUID, error) {
	blocks, err := h.blocks.FindByUserAndRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load blocks for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, block := range blocks {
		if block.IsBreak() || !block.HasTask() {
			continue
		}
		if block.Status() != domain.BlockStatusPlanned && block.Status() != domain.BlockStatusCommitted {
			continue
		}
		if !seen[block.TaskID()] {
			seen[block.TaskID()] = true
			ids = append(ids, block.TaskID())
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Drop tasks completed since the blocks were laid down.
	tasks, err := h.tasks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	var open []uuid.UUID
	for _, task := range tasks {
		if !task.IsCompleted() {
			open = append(open, task.ID())
		}
	}
	return open, nil
}

func (h *ReplanHandler) publishRescheduled(ctx context.Context, userID uuid.UUID, from, to time.Time, result *ReplanResult) {
	event := domain.NewBlocksRescheduledEvent(userID, from, to, len(result.TaskIDs), result.Reschedules)
	payload, err := json.Marshal(map[string]any{
		"event_id":    event.EventID(),
		"user_id":     event.UserID,
		"from_date":   from.Format("2006-01-02"),
		"to_date":     to.Format("2006-01-02"),
		"task_count":  event.TaskCount,
		"reschedules": event.Reschedules,
		"occurred_at": event.OccurredAt(),
	})
	if err != nil {
		h.logger.Error("failed to encode rescheduled event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.RoutingKey(), payload); err != nil {
		h.logger.Warn("failed to publish rescheduled event",
			"user_id", userID, "error", err)
	}
}

func firstBlockStart(blocks []services.PlannedBlock, taskID uuid.UUID) (time.Time, bool) {
	for _, b := range blocks {
		if !b.IsBreak && b.TaskID == taskID {
			return b.Start, true
		}
	}
	return time.Time{}, false
}
