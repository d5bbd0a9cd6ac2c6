package schedule

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	"github.com/spf13/cobra"
)

var (
	replanFrom string
	replanTo   string
)

var replanCmd = &cobra.Command{
	Use:   "replan",
	Short: "Move unfinished work to the coming days",
	Long: `Find tasks whose blocks on a day were not completed, drop their
future planned blocks and pack them into the following week.

Examples:
  tempo schedule replan
  tempo schedule replan --from 2026-08-28
  tempo schedule replan --from 2026-08-28 --to 2026-09-05`,
	Aliases: []string{"reschedule"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ReplanHandler == nil {
			fmt.Println("Schedule commands require a database connection.")
			return nil
		}

		from, err := cli.ParseDate(replanFrom)
		if err != nil {
			return err
		}

		var to *time.Time
		if replanTo != "" {
			parsed, err := time.Parse("2006-01-02", replanTo)
			if err != nil {
				return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
			}
			to = &parsed
		}

		result, err := app.ReplanHandler.Handle(cmd.Context(), commands.ReplanCommand{
			UserID:   app.CurrentUserID,
			FromDate: from,
			ToDate:   to,
		})
		if err != nil {
			return fmt.Errorf("failed to replan: %w", err)
		}

		if result.Reschedules == 0 {
			fmt.Println("Nothing to replan: no unfinished work on that day.")
			return nil
		}
		fmt.Printf("Rescheduled %d tasks into %d blocks\n", result.Reschedules, len(result.Blocks))
		return nil
	},
}

func init() {
	replanCmd.Flags().StringVar(&replanFrom, "from", "", "day with unfinished work (YYYY-MM-DD), defaults to today")
	replanCmd.Flags().StringVar(&replanTo, "to", "", "replan horizon end (YYYY-MM-DD), defaults to from+7d")
}
