package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// CreateWorkGoalCommand creates a named objective tasks can link to.
type CreateWorkGoalCommand struct {
	Owner     plannerDomain.Owner
	Name      string
	ProjectID uuid.UUID // uuid.Nil when not linked to a project
	Tags      []string
}

// CreateWorkGoalHandler handles the CreateWorkGoalCommand.
type CreateWorkGoalHandler struct {
	goals domain.WorkGoalRepository
}

// NewCreateWorkGoalHandler creates a new CreateWorkGoalHandler.
func NewCreateWorkGoalHandler(goals domain.WorkGoalRepository) *CreateWorkGoalHandler {
	return &CreateWorkGoalHandler{goals: goals}
}

// Handle executes the CreateWorkGoalCommand.
func (h *CreateWorkGoalHandler) Handle(ctx context.Context, cmd CreateWorkGoalCommand) (*domain.WorkGoal, error) {
	goal, err := domain.NewWorkGoal(cmd.Owner, cmd.Name, cmd.ProjectID, cmd.Tags)
	if err != nil {
		return nil, err
	}
	if err := h.goals.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}
