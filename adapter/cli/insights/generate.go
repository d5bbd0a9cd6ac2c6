package insights

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate insights from your review history",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GenerateInsightsHandler == nil {
			fmt.Println("Insight commands require a server database connection.")
			return nil
		}

		generated, err := app.GenerateInsightsHandler.Handle(cmd.Context(), commands.GenerateInsightsCommand{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to generate insights: %w", err)
		}

		if len(generated) == 0 {
			fmt.Println("Not enough review history yet. Keep computing daily reviews for at least a week.")
			return nil
		}

		fmt.Printf("Generated %d insights:\n", len(generated))
		for insightType := range generated {
			fmt.Printf("  - %s\n", insightType)
		}
		return nil
	},
}
