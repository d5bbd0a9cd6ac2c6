package review

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/analytics/application/queries"
	"github.com/felixgeelhaar/tempo/internal/analytics/domain"
	"github.com/spf13/cobra"
)

var showDate string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's review",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetReviewHandler == nil {
			fmt.Println("Review commands require a database connection.")
			return nil
		}

		date, err := cli.ParseDate(showDate)
		if err != nil {
			return err
		}

		review, err := app.GetReviewHandler.Handle(cmd.Context(), queries.GetReviewQuery{
			UserID: app.CurrentUserID,
			Date:   date,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Println("No review for that date. Run: tempo review compute")
				return nil
			}
			return fmt.Errorf("failed to load review: %w", err)
		}

		fmt.Printf("Review for %s\n", review.Date.Format("2006-01-02"))
		fmt.Printf("  Tasks:       %d/%d completed (%.0f%%)\n",
			review.TasksCompleted, review.TasksPlanned, review.CompletionRate)
		fmt.Printf("  Focus time:  %d min (breaks %d min)\n",
			review.FocusMinutes, review.BreakMinutes)
		fmt.Printf("  Score:       %.1f\n", review.ProductivityScore)
		fmt.Printf("  Streak:      %d days\n", review.CurrentStreak)

		if review.Summary != "" {
			fmt.Printf("\n  %s", review.Summary)
			if review.Mood != "" {
				fmt.Printf(" (feeling %s)", review.Mood)
			}
			fmt.Println()
		}
		printList("Highlights", review.Highlights)
		printList("Lessons", review.Lessons)
		printList("Tomorrow", review.TomorrowTop)
		return nil
	},
}

func printList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n  %s:\n", label)
	for _, item := range items {
		fmt.Printf("    - %s\n", item)
	}
}

func init() {
	showCmd.Flags().StringVarP(&showDate, "date", "d", "", "date (YYYY-MM-DD), defaults to today")
}
