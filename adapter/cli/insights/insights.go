// Package insights provides productivity insight commands.
package insights

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for insight operations.
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Learn from your review history",
	Long:  `Generate and inspect productivity insights derived from past daily reviews.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(statsCmd)
}
