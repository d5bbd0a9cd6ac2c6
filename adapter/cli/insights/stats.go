package insights

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate productivity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetStatsHandler == nil {
			fmt.Println("Insight commands require a database connection.")
			return nil
		}

		stats, err := app.GetStatsHandler.Handle(cmd.Context(), queries.GetStatsQuery{
			UserID: app.CurrentUserID,
			Days:   statsDays,
		})
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		fmt.Printf("Last %d days (%d reviews)\n", stats.Days, stats.ReviewCount)
		if stats.ReviewCount == 0 {
			fmt.Println("No reviews yet. Run: tempo review compute")
			return nil
		}

		fmt.Printf("  Avg productivity:   %.1f\n", stats.AvgProductivity)
		fmt.Printf("  Avg completion:     %.0f%%\n", stats.AvgCompletionRate)
		fmt.Printf("  Focus time:         %dh %dm\n", stats.TotalFocusMinutes/60, stats.TotalFocusMinutes%60)
		fmt.Printf("  Break time:         %dh %dm\n", stats.TotalBreakMinutes/60, stats.TotalBreakMinutes%60)
		fmt.Printf("  Best day score:     %.1f\n", stats.BestDayScore)
		fmt.Printf("  Current streak:     %d\n", stats.CurrentStreak)
		fmt.Printf("  Trend:              %s\n", stats.Trend)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsDays, "days", "n", 30, "number of trailing days to aggregate")
}
