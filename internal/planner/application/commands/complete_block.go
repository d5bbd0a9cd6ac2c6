package commands

import (
	"context"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// CompleteBlockCommand marks a committed or active block as done.
type CompleteBlockCommand struct {
	BlockID uuid.UUID
}

// CompleteBlockHandler handles the CompleteBlockCommand.
type CompleteBlockHandler struct {
	blocks domain.TimeBlockRepository
}

// NewCompleteBlockHandler creates a new CompleteBlockHandler.
func NewCompleteBlockHandler(blocks domain.TimeBlockRepository) *CompleteBlockHandler {
	return &CompleteBlockHandler{blocks: blocks}
}

// Handle executes the CompleteBlockCommand.
func (h *CompleteBlockHandler) Handle(ctx context.Context, cmd CompleteBlockCommand) (*domain.TimeBlock, error) {
	block, err := h.blocks.FindByID(ctx, cmd.BlockID)
	if err != nil {
		return nil, err
	}
	if err := block.Complete(); err != nil {
		return nil, err
	}
	if err := h.blocks.Update(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}
