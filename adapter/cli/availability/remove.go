package availability

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <template-id>",
	Short: "Remove a working-hours window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RemoveTemplateHandler == nil {
			fmt.Println("Availability commands require a database connection.")
			return nil
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid template ID %q: %w", args[0], err)
		}

		if err := app.RemoveTemplateHandler.Handle(cmd.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Println("No availability template with that ID.")
				return nil
			}
			return fmt.Errorf("failed to remove availability: %w", err)
		}

		fmt.Println("Availability window removed.")
		return nil
	},
}
