package services

import (
	"context"
	"fmt"
	"time"

	identityDomain "github.com/felixgeelhaar/tempo/internal/identity/domain"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
)

// AvailabilityResolver turns availability templates and calendar events
// into concrete free windows for a date or date range.
type AvailabilityResolver struct {
	templates plannerDomain.AvailabilityTemplateRepository
	events    plannerDomain.CalendarEventRepository
	teams     identityDomain.TeamResolver
	location  *time.Location
}

// NewAvailabilityResolver creates an availability resolver.
func NewAvailabilityResolver(
	templates plannerDomain.AvailabilityTemplateRepository,
	events plannerDomain.CalendarEventRepository,
	teams identityDomain.TeamResolver,
	location *time.Location,
) *AvailabilityResolver {
	if location == nil {
		location = time.UTC
	}
	return &AvailabilityResolver{
		templates: templates,
		events:    events,
		teams:     teams,
		location:  location,
	}
}

// ResolveDay returns the user's free windows on a single date, template
// windows minus busy calendar events, in chronological order.
func (r *AvailabilityResolver) ResolveDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]plannerDomain.Window, error) {
	teamID, _, err := r.teams.TeamFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve team for user %s: %w", userID, err)
	}

	windows, err := r.templateWindows(ctx, userID, teamID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	dayStart := windows[0].Start()
	dayEnd := windows[len(windows)-1].End()
	busyEvents, err := r.events.FindBusyOverlapping(ctx, userID, teamID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load busy events for user %s: %w", userID, err)
	}

	busy := make([]plannerDomain.Window, 0, len(busyEvents))
	for _, ev := range busyEvents {
		busy = append(busy, ev.Span())
	}

	return plannerDomain.SubtractBusy(windows, busy), nil
}

// ResolveRange resolves each day in [from, to) and concatenates the
// results in date order.
func (r *AvailabilityResolver) ResolveRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]plannerDomain.Window, error) {
	var all []plannerDomain.Window
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		windows, err := r.ResolveDay(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		all = append(all, windows...)
	}
	return all, nil
}

// templateWindows materializes the owner's templates for the date's
// weekday. User templates win over team templates; with neither, a single
// default workday window applies.
func (r *AvailabilityResolver) templateWindows(ctx context.Context, userID, teamID uuid.UUID, date time.Time) ([]plannerDomain.Window, error) {
	weekday := plannerDomain.Weekday(date)

	userTemplates, err := r.templates.FindByOwnerAndWeekday(ctx, plannerDomain.UserOwner(userID), weekday)
	if err != nil {
		return nil, fmt.Errorf("load templates for user %s: %w", userID, err)
	}
	templates := userTemplates

	if len(templates) == 0 && teamID != uuid.Nil {
		teamTemplates, err := r.templates.FindByOwnerAndWeekday(ctx, plannerDomain.TeamOwner(teamID), weekday)
		if err != nil {
			return nil, fmt.Errorf("load templates for team %s: %w", teamID, err)
		}
		templates = teamTemplates
	}

	if len(templates) == 0 {
		return []plannerDomain.Window{plannerDomain.DefaultWindow(date, r.location)}, nil
	}

	windows := make([]plannerDomain.Window, 0, len(templates))
	for _, tmpl := range templates {
		windows = append(windows, tmpl.Materialize(date, r.location))
	}
	return plannerDomain.MergeWindows(windows), nil
}
