package cmd

import (
	"fmt"
	"strings"

	"github.com/nootencorp/worklog/internal/cli"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for all entries",
	Long: `Show totals across the whole work log.

Displays:
  - Total time logged
  - Number of entries and of days with entries
  - Average time per day with entries
  - Time and entry count per employee, most time first`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runStats(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats prints the statistics summary
func runStats(cmd *cobra.Command) {
	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	result, err := e.services.Stats.Summary()
	if err != nil {
		e.reportStoreError("calculate statistics", err)
		return
	}

	s := result.Statistics
	if s.EntryCount == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries found")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Statistics for all entries")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total time:       %s\n", cli.FormatDuration(s.TotalMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Entries:          %d\n", s.EntryCount)
	_, _ = fmt.Fprintf(deps.Stdout, "Days with work:   %d %s\n", s.DaysWithEntries, cli.Pluralize("day", s.DaysWithEntries))
	_, _ = fmt.Fprintf(deps.Stdout, "Average per day:  %s\n", cli.FormatDuration(int(s.AverageMinutesPerDay)))

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "By employee:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, es := range result.Employees {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-20s %10s  (%d %s)\n",
			es.Employee,
			cli.FormatDuration(es.TotalMinutes),
			es.EntryCount,
			cli.Pluralize("entry", es.EntryCount))
	}
}
