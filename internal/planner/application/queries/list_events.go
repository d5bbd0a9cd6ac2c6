package queries

import (
	"context"
	"time"

	identityDomain "github.com/felixgeelhaar/tempo/internal/identity/domain"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// ListEventsQuery requests a user's calendar events within a range,
// including events owned by their team.
type ListEventsQuery struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// EventDTO is the read model for a single calendar event.
type EventDTO struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	IsBusy bool      `json:"is_busy"`
	Source string    `json:"source"`
}

// ListEventsHandler handles the ListEventsQuery.
type ListEventsHandler struct {
	events domain.CalendarEventRepository
	teams  identityDomain.TeamResolver
}

// NewListEventsHandler creates a new ListEventsHandler.
func NewListEventsHandler(events domain.CalendarEventRepository, teams identityDomain.TeamResolver) *ListEventsHandler {
	return &ListEventsHandler{events: events, teams: teams}
}

// Handle executes the ListEventsQuery.
func (h *ListEventsHandler) Handle(ctx context.Context, query ListEventsQuery) ([]EventDTO, error) {
	teamID, _, err := h.teams.TeamFor(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	events, err := h.events.FindByUserAndRange(ctx, query.UserID, teamID, query.From, query.To)
	if err != nil {
		return nil, err
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, EventDTO{
			ID:     event.ID(),
			Title:  event.Title(),
			Start:  event.Start(),
			End:    event.End(),
			IsBusy: event.IsBusy(),
			Source: event.Source(),
		})
	}
	return dtos, nil
}
