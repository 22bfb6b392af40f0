package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nootencorp/worklog/internal/cli"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry without the interactive menu",
	Long: `Add a work log entry dated today.

Each flag is checked the same way the interactive menu checks its prompts:
  --name       letters and spaces only
  --title      must not be empty
  --duration   whole number of minutes
  --notes      optional, stored as "None" when empty

Examples:
  worklog add --name Ann --title "Code review" --duration 45
  worklog add --name "Jeremy N" --title Deploy --duration 90 --notes "Rolled back once"`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addEntry(cmd)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("name", "", "employee name")
	addCmd.Flags().String("title", "", "task title")
	addCmd.Flags().String("duration", "", "time spent in minutes")
	addCmd.Flags().String("notes", "", "task notes (optional)")
}

// fieldFlag names the flag whose value a validator rejected
func fieldFlag(err error) string {
	switch {
	case errors.Is(err, entry.ErrInvalidName):
		return "--name"
	case errors.Is(err, entry.ErrEmptyTitle):
		return "--title"
	case errors.Is(err, entry.ErrInvalidTimeSpent):
		return "--duration"
	}
	return ""
}

// addEntry validates the flags and stores a new entry
func addEntry(cmd *cobra.Command) {
	name, _ := cmd.Flags().GetString("name")
	title, _ := cmd.Flags().GetString("title")
	duration, _ := cmd.Flags().GetString("duration")
	notes, _ := cmd.Flags().GetString("notes")

	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	created, err := e.services.Entry.Add(entry.Fields{
		EmployeeName: strings.TrimSpace(name),
		TaskTitle:    strings.TrimSpace(title),
		TimeSpent:    strings.TrimSpace(duration),
		TaskNotes:    strings.TrimSpace(notes),
	})
	if entry.IsInvalidInput(err) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid value for %s\n", fieldFlag(err))
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: worklog add --name <name> --title <title> --duration <minutes> [--notes <notes>]")
		e.exit(1)
		return
	}
	if err != nil {
		e.reportStoreError("save entry", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", cli.FormatEntryLine(created))
}
