// Package availability provides working-hours template commands.
package availability

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for availability template operations.
var Cmd = &cobra.Command{
	Use:   "availability",
	Short: "Manage your weekly working hours",
	Long: `Availability templates define the recurring windows the scheduler may
plan work into, one or more per weekday.`,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
}
