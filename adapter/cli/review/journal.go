package review

import (
	"fmt"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/analytics/application/commands"
	"github.com/spf13/cobra"
)

var (
	journalDate       string
	journalSummary    string
	journalMood       string
	journalHighlights []string
	journalLessons    []string
	journalTomorrow   []string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write the reflective part of a day's review",
	Long: `Record a summary, mood, highlights, lessons and up to three top
tasks for tomorrow.

Examples:
  tempo review journal --summary "Shipped the importer" --mood good
  tempo review journal --highlight "demo went well" --tomorrow "fix flaky test"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.WriteJournalHandler == nil {
			fmt.Println("Review commands require a database connection.")
			return nil
		}

		date, err := cli.ParseDate(journalDate)
		if err != nil {
			return err
		}

		_, err = app.WriteJournalHandler.Handle(cmd.Context(), commands.WriteJournalCommand{
			UserID:      app.CurrentUserID,
			Date:        date,
			Summary:     journalSummary,
			Mood:        journalMood,
			Highlights:  journalHighlights,
			Lessons:     journalLessons,
			TomorrowTop: journalTomorrow,
		})
		if err != nil {
			return fmt.Errorf("failed to write journal: %w", err)
		}

		fmt.Println("Journal saved.")
		return nil
	},
}

func init() {
	journalCmd.Flags().StringVarP(&journalDate, "date", "d", "", "date (YYYY-MM-DD), defaults to today")
	journalCmd.Flags().StringVar(&journalSummary, "summary", "", "short summary of the day")
	journalCmd.Flags().StringVar(&journalMood, "mood", "", "how the day felt")
	journalCmd.Flags().StringArrayVar(&journalHighlights, "highlight", nil, "highlight (repeatable)")
	journalCmd.Flags().StringArrayVar(&journalLessons, "lesson", nil, "lesson learned (repeatable)")
	journalCmd.Flags().StringArrayVar(&journalTomorrow, "tomorrow", nil, "top task for tomorrow (repeatable, max 3)")
}
