package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// ListBlocksQuery requests a user's blocks within a date range.
type ListBlocksQuery struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
	Status string // optional filter
}

// BlockDTO is the read model for a single time block.
type BlockDTO struct {
	ID              uuid.UUID  `json:"id"`
	TaskID          *uuid.UUID `json:"task_id,omitempty"`
	Title           string     `json:"title"`
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	IsBreak         bool       `json:"is_break"`
	Source          string     `json:"source"`
}

// ListBlocksHandler handles the ListBlocksQuery.
type ListBlocksHandler struct {
	blocks domain.TimeBlockRepository
}

// NewListBlocksHandler creates a new ListBlocksHandler.
func NewListBlocksHandler(blocks domain.TimeBlockRepository) *ListBlocksHandler {
	return &ListBlocksHandler{blocks: blocks}
}

// Handle executes the ListBlocksQuery.
func (h *ListBlocksHandler) Handle(ctx context.Context, query ListBlocksQuery) ([]BlockDTO, error) {
	var (
		blocks []*domain.TimeBlock
		err    error
	)
	if query.Status != "" {
		blocks, err = h.blocks.FindByStatusInRange(ctx, query.UserID, domain.BlockStatus(query.Status), query.From, query.To)
	} else {
		blocks, err = h.blocks.FindByUserAndRange(ctx, query.UserID, query.From, query.To)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]BlockDTO, 0, len(blocks))
	for _, block := range blocks {
		dto := BlockDTO{
			ID:              block.ID(),
			Title:           block.Title(),
			Start:           block.Start(),
			End:             block.End(),
			DurationMinutes: block.DurationMinutes(),
			Status:          string(block.Status()),
			IsBreak:         block.IsBreak(),
			Source:          string(block.Source()),
		}
		if block.HasTask() {
			taskID := block.TaskID()
			dto.TaskID = &taskID
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
