package commands

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	tasksDomain "github.com/felixgeelhaar/tempo/internal/tasks/domain"
	"github.com/google/uuid"
)

// RecalcGoalProgressCommand requests refreshing a work goal's progress
// counters from its linked tasks.
type RecalcGoalProgressCommand struct {
	GoalID uuid.UUID
}

// RecalcGoalProgressHandler handles the RecalcGoalProgressCommand.
type RecalcGoalProgressHandler struct {
	goals domain.WorkGoalRepository
	tasks tasksDomain.Source
}

// NewRecalcGoalProgressHandler creates a new RecalcGoalProgressHandler.
func NewRecalcGoalProgressHandler(goals domain.WorkGoalRepository, tasks tasksDomain.Source) *RecalcGoalProgressHandler {
	return &RecalcGoalProgressHandler{goals: goals, tasks: tasks}
}

// Handle executes the RecalcGoalProgressCommand.
func (h *RecalcGoalProgressHandler) Handle(ctx context.Context, cmd RecalcGoalProgressCommand) (*domain.WorkGoal, error) {
	goal, err := h.goals.FindByID(ctx, cmd.GoalID)
	if err != nil {
		return nil, fmt.Errorf("load goal %s: %w", cmd.GoalID, err)
	}

	linked, err := h.tasks.FindByWorkGoal(ctx, cmd.GoalID)
	if err != nil {
		return nil, fmt.Errorf("load tasks for goal %s: %w", cmd.GoalID, err)
	}

	completed := 0
	for _, task := range linked {
		if task.IsCompleted() {
			completed++
		}
	}
	goal.RecomputeProgress(len(linked), completed)

	if err := h.goals.Save(ctx, goal); err != nil {
		return nil, fmt.Errorf("save goal %s: %w", cmd.GoalID, err)
	}
	return goal, nil
}
