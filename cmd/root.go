// Package cmd implements the worklog command line.
package cmd

import (
	"fmt"

	"github.com/nootencorp/worklog/internal/cli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "A terminal work log",
	Long: `worklog records what employees worked on and how long it took.

Run without arguments to open the interactive menu:
  a) Add new entry              Prompts for name, title, minutes and notes
  b) Search in existing entries Search by employee, date, duration or term
  c) Quit program

Entries are kept in a local SQLite database (work_log.db in the
worklog config directory, or the path given with --db).

Usage:
  worklog                                          Interactive menu
  worklog add --name Ann --title Review --duration 30
  worklog search --employee Ann                    Exact employee match
  worklog search --date 03/01/2024                 Entries for one day
  worklog search --duration 30                     Exact minutes
  worklog search --term review                     Name or notes contain term
  worklog list                                     All entries
  worklog tui                                      Full-screen browser`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runShell(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the work log database (overrides config)")
	rootCmd.PersistentFlags().Bool("verbose", false, "write debug logs")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"worklog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// runShell runs the interactive menu until the user quits or input ends
func runShell(cmd *cobra.Command) {
	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	shell := cli.NewShell(e.services, deps.Stdin, deps.Stdout,
		cli.WithLogger(e.logger),
		cli.WithClearScreen(deps.IsTerminal()),
	)

	e.logger.Info("shell started", zap.String("db", e.store.Path()))
	if err := shell.Run(); err != nil {
		e.logger.Error("shell failed", zap.Error(err))
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The work log stopped unexpectedly")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Run 'worklog validate' to check the database: %s\n", e.store.Path())
		e.exit(1)
		return
	}
	e.logger.Info("shell finished")
}
