package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	"github.com/felixgeelhaar/tempo/internal/planner/application/services"
	"github.com/spf13/cobra"
)

var (
	commitScope string
	commitDate  string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Persist the previewed schedule as committed blocks",
	Long: `Compute the schedule and save every block as committed, all or
nothing.

Examples:
  tempo schedule commit
  tempo schedule commit --scope week --date 2026-09-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CommitScheduleHandler == nil {
			fmt.Println("Schedule commands require a database connection.")
			return nil
		}

		scope, err := services.ParseScope(commitScope)
		if err != nil {
			return err
		}
		date, err := cli.ParseDate(commitDate)
		if err != nil {
			return err
		}

		result, err := app.CommitScheduleHandler.Handle(cmd.Context(), commands.CommitScheduleCommand{
			UserID: app.CurrentUserID,
			Scope:  scope,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to commit schedule: %w", err)
		}

		if result.BlockCount == 0 {
			fmt.Println("Nothing to commit: the preview was empty.")
			return nil
		}
		fmt.Printf("Committed %d blocks, %d planned minutes (%.0f%% capacity)\n",
			result.BlockCount, result.PlannedMinutes, result.CapacityUsage*100)
		return nil
	},
}

func init() {
	commitCmd.Flags().StringVarP(&commitScope, "scope", "s", "day", "planning scope (day or week)")
	commitCmd.Flags().StringVarP(&commitDate, "date", "d", "", "date (YYYY-MM-DD), defaults to today")
}
