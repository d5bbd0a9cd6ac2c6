package availability

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/queries"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your working-hours windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTemplatesHandler == nil {
			fmt.Println("Availability commands require a database connection.")
			return nil
		}

		templates, err := app.ListTemplatesHandler.Handle(cmd.Context(), queries.ListTemplatesQuery{
			Owner: domain.UserOwner(app.CurrentUserID),
		})
		if err != nil {
			return fmt.Errorf("failed to list availability: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No availability templates. The scheduler falls back to 09:00-17:00 every day.")
			return nil
		}

		for _, template := range templates {
			fmt.Printf("%-9s %s - %s  (%s)\n",
				weekdayNames[template.DayOfWeek],
				template.StartTime,
				template.EndTime,
				template.ID)
		}
		return nil
	},
}
