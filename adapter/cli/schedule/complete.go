package schedule

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete <block-id>",
	Short: "Mark a time block as completed",
	Args:  cobra.ExactArgs(1),
	Aliases: []string{"done"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteBlockHandler == nil {
			fmt.Println("Schedule commands require a database connection.")
			return nil
		}

		blockID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid block ID: %w", err)
		}

		block, err := app.CompleteBlockHandler.Handle(cmd.Context(), commands.CompleteBlockCommand{
			BlockID: blockID,
		})
		if err != nil {
			return fmt.Errorf("failed to complete block: %w", err)
		}

		fmt.Printf("Completed %q (%s - %s)\n", block.Title(),
			block.Start().Format("15:04"), block.End().Format("15:04"))
		return nil
	},
}
