package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	"github.com/felixgeelhaar/tempo/internal/planner/application/queries"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/spf13/cobra"
)

var (
	eventTitle string
	eventDate  string
	eventStart string
	eventEnd   string
	eventFree  bool
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a calendar event",
	Long: `Add a calendar event. Busy events block scheduling; pass --free for
events the scheduler may plan over.

Examples:
  tempo event add --title "Standup" --date 2026-09-01 --start 09:30 --end 09:45
  tempo event add --title "Focus reminder" --start 14:00 --end 15:00 --free`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.AddCalendarEventHandler == nil {
			fmt.Println("Event commands require a database connection.")
			return nil
		}

		date, err := ParseDate(eventDate)
		if err != nil {
			return err
		}
		start, err := atTimeOfDay(date, eventStart)
		if err != nil {
			return err
		}
		end, err := atTimeOfDay(date, eventEnd)
		if err != nil {
			return err
		}

		event, err := app.AddCalendarEventHandler.Handle(cmd.Context(), commands.AddCalendarEventCommand{
			Owner:  domain.UserOwner(app.CurrentUserID),
			Title:  eventTitle,
			Start:  start,
			End:    end,
			IsBusy: !eventFree,
		})
		if err != nil {
			return fmt.Errorf("failed to add event: %w", err)
		}

		kind := "busy"
		if eventFree {
			kind = "free"
		}
		fmt.Printf("Added %s event %q %s-%s (%s)\n",
			kind,
			event.Title(),
			event.Start().Format("15:04"),
			event.End().Format("15:04"),
			event.ID())
		return nil
	},
}

var (
	eventListDate string
	eventListDays int
)

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendar events",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.ListEventsHandler == nil {
			fmt.Println("Event commands require a database connection.")
			return nil
		}

		date, err := ParseDate(eventListDate)
		if err != nil {
			return err
		}
		from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		to := from.AddDate(0, 0, eventListDays)

		events, err := app.ListEventsHandler.Handle(cmd.Context(), queries.ListEventsQuery{
			UserID: app.CurrentUserID,
			From:   from,
			To:     to,
		})
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events in that range.")
			return nil
		}

		for _, event := range events {
			kind := "busy"
			if !event.IsBusy {
				kind = "free"
			}
			fmt.Printf("%s %s - %s  [%s] %s (%s)\n",
				event.Start.Format("2006-01-02"),
				event.Start.Format("15:04"),
				event.End.Format("15:04"),
				kind,
				event.Title,
				event.ID)
		}
		return nil
	},
}

// atTimeOfDay combines a date with an HH:MM clock time in the date's
// location.
func atTimeOfDay(date time.Time, clock string) (time.Time, error) {
	tod, err := domain.ParseTimeOfDay(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, date.Location()), nil
}

func init() {
	eventAddCmd.Flags().StringVarP(&eventTitle, "title", "t", "", "event title")
	eventAddCmd.Flags().StringVarP(&eventDate, "date", "d", "", "date (YYYY-MM-DD), defaults to today")
	eventAddCmd.Flags().StringVar(&eventStart, "start", "", "event start (HH:MM)")
	eventAddCmd.Flags().StringVar(&eventEnd, "end", "", "event end (HH:MM)")
	eventAddCmd.Flags().BoolVar(&eventFree, "free", false, "mark the event as free time")
	_ = eventAddCmd.MarkFlagRequired("title")
	_ = eventAddCmd.MarkFlagRequired("start")
	_ = eventAddCmd.MarkFlagRequired("end")

	eventListCmd.Flags().StringVarP(&eventListDate, "date", "d", "", "start date (YYYY-MM-DD), defaults to today")
	eventListCmd.Flags().IntVarP(&eventListDays, "days", "n", 7, "number of days to list")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	rootCmd.AddCommand(eventCmd)
}
