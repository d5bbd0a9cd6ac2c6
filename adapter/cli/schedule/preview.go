package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/queries"
	"github.com/felixgeelhaar/tempo/internal/planner/application/services"
	"github.com/spf13/cobra"
)

var (
	previewScope string
	previewDate  string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the packed schedule without saving it",
	Long: `Compute the schedule for a day or week from your availability, tasks
and break policy. Nothing is persisted.

Examples:
  tempo schedule preview
  tempo schedule preview --scope week
  tempo schedule preview --date 2026-09-01`,
	Aliases: []string{"plan"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PreviewScheduleHandler == nil {
			fmt.Println("Schedule commands require a database connection.")
			return nil
		}

		scope, err := services.ParseScope(previewScope)
		if err != nil {
			return err
		}
		date, err := cli.ParseDate(previewDate)
		if err != nil {
			return err
		}

		result, err := app.PreviewScheduleHandler.Handle(cmd.Context(), queries.PreviewScheduleQuery{
			UserID: app.CurrentUserID,
			Scope:  scope,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to preview schedule: %w", err)
		}

		printSchedule(result)
		return nil
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewScope, "scope", "s", "day", "planning scope (day or week)")
	previewCmd.Flags().StringVarP(&previewDate, "date", "d", "", "date (YYYY-MM-DD), defaults to today")
}

func printSchedule(result *services.ScheduleResult) {
	if len(result.Blocks) == 0 {
		fmt.Println("Nothing to schedule: no free time or no eligible tasks.")
		return
	}

	source := "computed"
	if result.FromCache {
		source = "cached"
	}
	fmt.Printf("Schedule for %s (%s, %s)\n\n", result.Date.Format("2006-01-02"), result.Scope, source)

	currentDay := ""
	for _, block := range result.Blocks {
		day := block.Start.Format("Mon 2006-01-02")
		if day != currentDay {
			if currentDay != "" {
				fmt.Println()
			}
			fmt.Printf("%s\n", day)
			currentDay = day
		}

		marker := " "
		if block.IsBreak {
			marker = "~"
		}
		fmt.Printf("  %s %s - %s  %s\n", marker,
			block.Start.Format("15:04"), block.End.Format("15:04"), block.Title)
	}

	fmt.Printf("\nPlanned %d of %d available minutes (%.0f%% capacity)\n",
		result.PlannedMinutes, result.WindowMinutes, result.CapacityUsage*100)
}
