package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the full-screen entry browser",
	Long: `Browse the work log in a full-screen terminal interface.

Views available:
  - Entries: every entry in a table, with term search
  - Stats: totals and per-employee time

Keyboard shortcuts:
  - Tab/Shift+Tab or 1-2: switch views
  - j/k or arrows: move through the table
  - /: search employee names and notes, Esc: show all again
  - t/T: cycle color themes
  - ?: show help
  - q: quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI opens the store and runs the TUI application
func runTUI(cmd *cobra.Command) {
	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	if err := deps.RunTUI(e.services); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to run the terminal interface")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		e.exit(1)
		return
	}
}
