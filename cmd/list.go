package cmd

import (
	"fmt"
	"strings"

	"github.com/nootencorp/worklog/internal/cli"
	"github.com/nootencorp/worklog/internal/timeutil"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entries",
	Long: `List every entry in the order it was added.

  --employees   list the employees who have entries instead
  --dates       list the dates that have entries instead`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listEntries(cmd)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("employees", false, "list employees with entries")
	listCmd.Flags().Bool("dates", false, "list dates with entries")
	listCmd.MarkFlagsMutuallyExclusive("employees", "dates")
}

// listEntries prints all entries, or the distinct employees or dates
func listEntries(cmd *cobra.Command) {
	employees, _ := cmd.Flags().GetBool("employees")
	dates, _ := cmd.Flags().GetBool("dates")

	if employees && dates {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Use either --employees or --dates, not both")
		deps.Exit(1)
		return
	}

	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	switch {
	case employees:
		names, err := e.services.Search.Employees()
		if err != nil {
			e.reportStoreError("read employees", err)
			return
		}
		if len(names) == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries found")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEmployeesFound(names))
		for _, name := range names {
			_, _ = fmt.Fprintln(deps.Stdout, name)
		}

	case dates:
		days, err := e.services.Search.Dates()
		if err != nil {
			e.reportStoreError("read dates", err)
			return
		}
		if len(days) == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries found")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatDatesFound(days))
		for _, day := range days {
			_, _ = fmt.Fprintln(deps.Stdout, timeutil.FormatDate(day))
		}

	default:
		entries, err := e.services.Entry.List()
		if err != nil {
			e.reportStoreError("read entries", err)
			return
		}
		if len(entries) == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No entries found")
			return
		}

		totalMinutes := 0
		maxIndexWidth := len(fmt.Sprintf("%d", len(entries)))
		_, _ = fmt.Fprintln(deps.Stdout, "All entries:")
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		for i, en := range entries {
			_, _ = fmt.Fprintf(deps.Stdout, "[%*d] %s\n", maxIndexWidth, i+1, cli.FormatEntryLine(en))
			totalMinutes += en.TimeSpent
		}
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n", cli.FormatDuration(totalMinutes), len(entries), cli.Pluralize("entry", len(entries)))
	}
}
