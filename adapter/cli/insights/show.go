package insights

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your active insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetInsightsHandler == nil {
			fmt.Println("Insight commands require a server database connection.")
			return nil
		}

		active, err := app.GetInsightsHandler.Handle(cmd.Context(), queries.GetInsightsQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to load insights: %w", err)
		}

		if len(active) == 0 {
			fmt.Println("No active insights. Run: tempo insights generate")
			return nil
		}

		types := make([]string, 0, len(active))
		for insightType := range active {
			types = append(types, insightType)
		}
		sort.Strings(types)

		for _, insightType := range types {
			insight := active[insightType]
			fmt.Printf("%s (confidence %.0f%%, %d reviews, valid until %s)\n",
				insightType,
				insight.ConfidenceScore*100,
				insight.SampleSize,
				insight.ValidUntil.Format("2006-01-02"))
			printData(insight.Data)
		}
		return nil
	},
}

func printData(data map[string]any) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %s: %v\n", key, data[key])
	}
}
