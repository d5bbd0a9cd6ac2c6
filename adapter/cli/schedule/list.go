package schedule

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/queries"
	"github.com/spf13/cobra"
)

var (
	listDate   string
	listDays   int
	listStatus string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved time blocks",
	Long: `Show the blocks stored for a date range.

Examples:
  tempo schedule list
  tempo schedule list --days 7
  tempo schedule list --status committed`,
	Aliases: []string{"show", "ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListBlocksHandler == nil {
			fmt.Println("Schedule commands require a database connection.")
			return nil
		}

		date, err := cli.ParseDate(listDate)
		if err != nil {
			return err
		}
		days := listDays
		if days <= 0 {
			days = 1
		}

		from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		blocks, err := app.ListBlocksHandler.Handle(cmd.Context(), queries.ListBlocksQuery{
			UserID: app.CurrentUserID,
			From:   from,
			To:     from.AddDate(0, 0, days),
			Status: listStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to list blocks: %w", err)
		}

		if len(blocks) == 0 {
			fmt.Println("No blocks in that range.")
			return nil
		}

		for _, block := range blocks {
			marker := " "
			if block.IsBreak {
				marker = "~"
			}
			fmt.Printf("%s %s  %s - %s  [%s]  %s  (%s)\n", marker,
				block.Start.Format("2006-01-02"),
				block.Start.Format("15:04"), block.End.Format("15:04"),
				block.Status, block.Title, block.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "start date (YYYY-MM-DD), defaults to today")
	listCmd.Flags().IntVar(&listDays, "days", 1, "number of days to show")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (planned, committed, active, completed, cancelled)")
}
