package cli

import (
	"fmt"

	analyticsCommands "github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	plannerDomain "github.com/felixgeelhaar/tempo/internal/planner/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	goalName    string
	goalProject string
	goalTags    []string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage work goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a work goal",
	Long: `Create a named objective. Tasks linked to a goal raise their
scheduling priority and feed the goal's progress.

Example:
  tempo goal add --name "Ship the importer" --tag q3 --tag backend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.CreateWorkGoalHandler == nil {
			fmt.Println("Goal commands require a server database connection.")
			return nil
		}

		projectID := uuid.Nil
		if goalProject != "" {
			parsed, err := uuid.Parse(goalProject)
			if err != nil {
				return fmt.Errorf("invalid project ID %q: %w", goalProject, err)
			}
			projectID = parsed
		}

		goal, err := app.CreateWorkGoalHandler.Handle(cmd.Context(), analyticsCommands.CreateWorkGoalCommand{
			Owner:     plannerDomain.UserOwner(app.CurrentUserID),
			Name:      goalName,
			ProjectID: projectID,
			Tags:      goalTags,
		})
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		fmt.Printf("Created goal %q (%s)\n", goal.Name(), goal.ID())
		return nil
	},
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress <goal-id>",
	Short: "Recompute a goal's progress from its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.RecalcGoalProgressHandler == nil {
			fmt.Println("Goal commands require a server database connection.")
			return nil
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid goal ID %q: %w", args[0], err)
		}

		goal, err := app.RecalcGoalProgressHandler.Handle(cmd.Context(), analyticsCommands.RecalcGoalProgressCommand{
			GoalID: id,
		})
		if err != nil {
			return fmt.Errorf("failed to recompute goal progress: %w", err)
		}

		fmt.Printf("%s: %d of %d tasks done (%.0f%%)\n",
			goal.Name(),
			goal.CompletedTasks(),
			goal.TotalTasks(),
			goal.ProgressPercentage())
		return nil
	},
}

func init() {
	goalAddCmd.Flags().StringVarP(&goalName, "name", "n", "", "goal name")
	goalAddCmd.Flags().StringVar(&goalProject, "project", "", "project ID to link the goal to")
	goalAddCmd.Flags().StringArrayVar(&goalTags, "tag", nil, "tag (repeatable)")
	_ = goalAddCmd.MarkFlagRequired("name")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalProgressCmd)
	rootCmd.AddCommand(goalCmd)
}
