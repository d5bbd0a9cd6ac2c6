// Package schedule holds the schedule command group.
package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Plan and manage your time blocks",
	Long:  `Preview, commit and replan the automatically packed schedule.`,
}

func init() {
	Cmd.AddCommand(previewCmd)
	Cmd.AddCommand(commitCmd)
	Cmd.AddCommand(replanCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(completeCmd)
}
