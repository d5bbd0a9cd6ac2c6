package cli

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/internal/planner/application/commands"
	"github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/spf13/cobra"
)

var (
	policyFocus     int
	policyBreak     int
	policyLongBreak int
	policyCycles    int
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Manage your break policy",
}

var policySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set your focus and break rhythm",
	Long: `Set the pomodoro-style rhythm the scheduler packs work with: focus
block length, short break, long break, and how many focus blocks make a
cycle.

Example:
  tempo policy set --focus 50 --break 10 --long-break 30 --cycles 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.SetBreakPolicyHandler == nil {
			fmt.Println("Policy commands require a database connection.")
			return nil
		}

		policy, err := app.SetBreakPolicyHandler.Handle(cmd.Context(), commands.SetBreakPolicyCommand{
			Owner:            domain.UserOwner(app.CurrentUserID),
			FocusMinutes:     policyFocus,
			BreakMinutes:     policyBreak,
			LongBreakMinutes: policyLongBreak,
			CycleCount:       policyCycles,
		})
		if err != nil {
			return fmt.Errorf("failed to set break policy: %w", err)
		}

		fmt.Printf("Break policy set: %dm focus, %dm break, %dm long break every %d blocks.\n",
			policy.FocusMinutes(),
			policy.BreakMinutes(),
			policy.LongBreakMinutes(),
			policy.CycleCount())
		return nil
	},
}

func init() {
	policySetCmd.Flags().IntVar(&policyFocus, "focus", 25, "focus block length in minutes")
	policySetCmd.Flags().IntVar(&policyBreak, "break", 5, "short break length in minutes")
	policySetCmd.Flags().IntVar(&policyLongBreak, "long-break", 15, "long break length in minutes")
	policySetCmd.Flags().IntVar(&policyCycles, "cycles", 4, "focus blocks per long break")

	policyCmd.AddCommand(policySetCmd)
	rootCmd.AddCommand(policyCmd)
}
