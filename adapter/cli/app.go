package cli

import (
	analyticsCommands "github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	analyticsQueries "github.com/felixgeelhaar/tempo/internal/analytics/application/queries"
	"github.com/felixgeelhaar/tempo/internal/app"
	plannerCommands "github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	plannerQueries "github.com/felixgeelhaar/tempo/internal/planner/application/queries"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Planner
	PreviewScheduleHandler  *plannerQueries.PreviewScheduleHandler
	ListBlocksHandler       *plannerQueries.ListBlocksHandler
	ListEventsHandler       *plannerQueries.ListEventsHandler
	ListTemplatesHandler    *plannerQueries.ListTemplatesHandler
	CommitScheduleHandler   *plannerCommands.CommitScheduleHandler
	ReplanHandler           *plannerCommands.ReplanHandler
	CompleteBlockHandler    *plannerCommands.CompleteBlockHandler
	SetBreakPolicyHandler   *plannerCommands.SetBreakPolicyHandler
	AddTemplateHandler      *plannerCommands.AddAvailabilityTemplateHandler
	RemoveTemplateHandler   *plannerCommands.RemoveAvailabilityTemplateHandler
	AddCalendarEventHandler *plannerCommands.AddCalendarEventHandler

	// Analytics
	ComputeDailyReviewHandler *analyticsCommands.ComputeDailyReviewHandler
	WriteJournalHandler       *analyticsCommands.WriteJournalHandler
	GenerateInsightsHandler   *analyticsCommands.GenerateInsightsHandler
	CreateWorkGoalHandler     *analyticsCommands.CreateWorkGoalHandler
	RecalcGoalProgressHandler *analyticsCommands.RecalcGoalProgressHandler
	GetReviewHandler          *analyticsQueries.GetReviewHandler
	GetStatsHandler           *analyticsQueries.GetStatsHandler
	GetInsightsHandler        *analyticsQueries.GetInsightsHandler

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// NewApp creates a CLI application from the container.
func NewApp(c *app.Container) *App {
	return &App{
		PreviewScheduleHandler:    c.PreviewScheduleHandler,
		ListBlocksHandler:         c.ListBlocksHandler,
		ListEventsHandler:         c.ListEventsHandler,
		ListTemplatesHandler:      c.ListTemplatesHandler,
		CommitScheduleHandler:     c.CommitScheduleHandler,
		ReplanHandler:             c.ReplanHandler,
		CompleteBlockHandler:      c.CompleteBlockHandler,
		SetBreakPolicyHandler:     c.SetBreakPolicyHandler,
		AddTemplateHandler:        c.AddTemplateHandler,
		RemoveTemplateHandler:     c.RemoveTemplateHandler,
		AddCalendarEventHandler:   c.AddCalendarEventHandler,
		ComputeDailyReviewHandler: c.ComputeDailyReviewHandler,
		WriteJournalHandler:       c.WriteJournalHandler,
		GenerateInsightsHandler:   c.GenerateInsightsHandler,
		CreateWorkGoalHandler:     c.CreateWorkGoalHandler,
		RecalcGoalProgressHandler: c.RecalcGoalProgressHandler,
		GetReviewHandler:          c.GetReviewHandler,
		GetStatsHandler:           c.GetStatsHandler,
		GetInsightsHandler:        c.GetInsightsHandler,
	}
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

var globalApp *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	globalApp = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return globalApp
}
