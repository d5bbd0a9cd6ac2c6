// Package review holds the daily review command group.
package review

import (
	"github.com/spf13/cobra"
)

// Cmd is the review command group
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "Daily review metrics and journal",
	Long:  `Compute a day's productivity metrics, read them back, and journal.`,
}

func init() {
	Cmd.AddCommand(computeCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(journalCmd)
}
