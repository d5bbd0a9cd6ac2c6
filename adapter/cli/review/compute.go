package review

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	"github.com/spf13/cobra"
)

var computeDate string

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute (or recompute) a day's metrics",
	Long: `Derive completion rate, focus time, productivity score and streak
from the day's blocks and tasks. Safe to run repeatedly.

Examples:
  tempo review compute
  tempo review compute --date 2026-08-28`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ComputeDailyReviewHandler == nil {
			fmt.Println("Review commands require a database connection.")
			return nil
		}

		date, err := cli.ParseDate(computeDate)
		if err != nil {
			return err
		}

		review, err := app.ComputeDailyReviewHandler.Handle(cmd.Context(), commands.ComputeDailyReviewCommand{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			return fmt.Errorf("failed to compute review: %w", err)
		}

		fmt.Printf("Review for %s\n", review.Date().Format("2006-01-02"))
		fmt.Printf("  Tasks:       %d/%d completed (%.0f%%)\n",
			review.TasksCompleted(), review.TasksPlanned(), review.CompletionRate())
		fmt.Printf("  Focus time:  %d min (breaks %d min)\n",
			review.FocusTimeMinutes(), review.BreakTimeMinutes())
		fmt.Printf("  Score:       %.1f\n", review.ProductivityScore())
		fmt.Printf("  Streak:      %d days\n", review.CurrentStreak())
		return nil
	},
}

func init() {
	computeCmd.Flags().StringVarP(&computeDate, "date", "d", "", "date (YYYY-MM-DD), defaults to today")
}
