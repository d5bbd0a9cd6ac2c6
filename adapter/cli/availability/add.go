package availability

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/spf13/cobra"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var (
	addDay   int
	addStart string
	addEnd   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a working-hours window",
	Long: `Add a recurring availability window for one weekday. Days are numbered
0 (Monday) through 6 (Sunday).

Examples:
  tempo availability add --day 0 --start 09:00 --end 12:00
  tempo availability add --day 0 --start 13:00 --end 17:30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddTemplateHandler == nil {
			fmt.Println("Availability commands require a database connection.")
			return nil
		}

		if addDay < 0 || addDay > 6 {
			return fmt.Errorf("day must be between 0 (Monday) and 6 (Sunday), got %d", addDay)
		}

		template, err := app.AddTemplateHandler.Handle(cmd.Context(), commands.AddAvailabilityTemplateCommand{
			Owner:     domain.UserOwner(app.CurrentUserID),
			DayOfWeek: addDay,
			StartTime: addStart,
			EndTime:   addEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to add availability: %w", err)
		}

		fmt.Printf("Added %s %s-%s (%s)\n", weekdayNames[addDay], addStart, addEnd, template.ID())
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addDay, "day", "d", 0, "weekday, 0=Monday .. 6=Sunday")
	addCmd.Flags().StringVar(&addStart, "start", "09:00", "window start (HH:MM)")
	addCmd.Flags().StringVar(&addEnd, "end", "17:00", "window end (HH:MM)")
	_ = addCmd.MarkFlagRequired("day")
}
