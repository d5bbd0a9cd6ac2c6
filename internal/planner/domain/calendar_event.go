package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
	"github.com/google/uuid"
)

// CalendarEvent is an external commitment on an owner's calendar. Only
// busy events subtract from availability.
type CalendarEvent struct {
	sharedDomain.BaseEntity
	owner  Owner
	title  string
	start  time.Time
	end    time.Time
	isBusy bool
	source string
}

// NewCalendarEvent creates a calendar event.
func NewCalendarEvent(owner Owner, title string, start, end time.Time, isBusy bool, source string) (*CalendarEvent, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}
	return &CalendarEvent{
		BaseEntity: sharedDomain.NewBaseEntity(),
		owner:      owner,
		title:      title,
		start:      start,
		end:        end,
		isBusy:     isBusy,
		source:     source,
	}, nil
}

// Getters
func (ce *CalendarEvent) Owner() Owner     { return ce.owner }
func (ce *CalendarEvent) Title() string    { return ce.title }
func (ce *CalendarEvent) Start() time.Time { return ce.start }
func (ce *CalendarEvent) End() time.Time   { return ce.end }
func (ce *CalendarEvent) IsBusy() bool     { return ce.isBusy }
func (ce *CalendarEvent) Source() string   { return ce.source }

// Span returns the event's interval as a window.
func (ce *CalendarEvent) Span() Window {
	return Window{start: ce.start, end: ce.end}
}

// RehydrateCalendarEvent recreates a calendar event from persisted state.
func RehydrateCalendarEvent(
	id uuid.UUID,
	owner Owner,
	title string,
	start, end time.Time,
	isBusy bool,
	source string,
	createdAt, updatedAt time.Time,
) *CalendarEvent {
	return &CalendarEvent{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		owner:      owner,
		title:      title,
		start:      start,
		end:        end,
		isBusy:     isBusy,
		source:     source,
	}
}
