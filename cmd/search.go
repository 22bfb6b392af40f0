package cmd

import (
	"fmt"
	"strings"

	"github.com/nootencorp/worklog/internal/cli"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entries by employee, date, duration or term",
	Long: `Search the work log with exactly one criterion.

  --employee   entries written by exactly this employee
  --date       entries logged on this MM/DD/YYYY date
  --duration   entries that took exactly this many minutes
  --term       entries whose employee name or notes contain the term
               (case-insensitive; task titles are not searched)

Examples:
  worklog search --employee Ann
  worklog search --date 12/30/1991
  worklog search --duration 90
  worklog search --term review`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		searchEntries(cmd)
	},
}

// searchCriteria lists the search flags in the order they are described
var searchCriteria = []string{"employee", "date", "duration", "term"}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("employee", "", "employee name to match exactly")
	searchCmd.Flags().String("date", "", "date in MM/DD/YYYY format")
	searchCmd.Flags().String("duration", "", "time spent in minutes")
	searchCmd.Flags().String("term", "", "text to find in employee names and notes")
}

// searchEntries runs the single criterion given and prints the matching entries
func searchEntries(cmd *cobra.Command) {
	var criterion, raw string
	count := 0
	for _, name := range searchCriteria {
		if cmd.Flags().Changed(name) {
			criterion = name
			raw, _ = cmd.Flags().GetString(name)
			count++
		}
	}

	if count != 1 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Exactly one search criterion is required")
		_, _ = fmt.Fprintf(deps.Stderr, "Usage: worklog search --%s <value>\n", strings.Join(searchCriteria, " | --"))
		deps.Exit(1)
		return
	}
	raw = strings.TrimSpace(raw)

	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	var query func(string) (*storage.Cursor, error)
	switch criterion {
	case "employee":
		query = e.services.Search.ByEmployee
	case "date":
		query = e.services.Search.ByDate
	case "duration":
		query = e.services.Search.ByTimeSpent
	case "term":
		query = e.services.Search.ByTerm
	}

	c, err := query(raw)
	if entry.IsInvalidInput(err) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid value for --%s\n", criterion)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		e.exit(1)
		return
	}
	if err != nil {
		e.reportStoreError("search entries", err)
		return
	}

	shown, err := printResults(c)
	if err != nil {
		e.reportStoreError("read entries", err)
		return
	}
	if shown == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found matching %s '%s'\n", criterion, raw)
	}
}

// printResults writes every entry in c as a result block and returns how many
// were written. Nothing is written for an empty cursor.
func printResults(c *storage.Cursor) (int, error) {
	defer func() { _ = c.Close() }()

	shown := 0
	for c.Next() {
		if shown == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, cli.MatchedHeader)
		}
		_, _ = fmt.Fprintf(deps.Stdout, "\n%s\n", cli.FormatEntry(c.Entry()))
		shown++
	}
	return shown, c.Err()
}
