package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/domain"
)

// AddCalendarEventCommand records a calendar event that blocks (or, when
// not busy, merely annotates) part of the owner's day.
type AddCalendarEventCommand struct {
	Owner  domain.Owner
	Title  string
	Start  time.Time
	End    time.Time
	IsBusy bool
	Source string
}

// AddCalendarEventHandler handles the AddCalendarEventCommand.
type AddCalendarEventHandler struct {
	events domain.CalendarEventRepository
}

// NewAddCalendarEventHandler creates a new AddCalendarEventHandler.
func NewAddCalendarEventHandler(events domain.CalendarEventRepository) *AddCalendarEventHandler {
	return &AddCalendarEventHandler{events: events}
}

// Handle executes the AddCalendarEventCommand.
func (h *AddCalendarEventHandler) Handle(ctx context.Context, cmd AddCalendarEventCommand) (*domain.CalendarEvent, error) {
	source := cmd.Source
	if source == "" {
		source = "manual"
	}
	event, err := domain.NewCalendarEvent(cmd.Owner, cmd.Title, cmd.Start, cmd.End, cmd.IsBusy, source)
	if err != nil {
		return nil, err
	}
	if err := h.events.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
