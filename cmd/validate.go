package cmd

import (
	"fmt"
	"strings"

	"github.com/nootencorp/worklog/internal/cli"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check database health",
	Long:  `Run SQLite's integrity check on the work log database and report the number of entries.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateStorage checks the database health and reports status
func validateStorage(cmd *cobra.Command) {
	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	health, err := e.store.Health()
	if err != nil {
		e.reportStoreError("validate database", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Database file: %s\n", health.Path)
	_, _ = fmt.Fprintf(deps.Stdout, "Driver:        %s\n", health.Driver)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Entries:       %d\n", health.Entries)

	if len(health.Problems) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Integrity problems:")
		for _, p := range health.Problems {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", p)
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.IntegrityOK {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Database is healthy")
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Database has %d integrity %s\n", len(health.Problems), cli.Pluralize("problem", len(health.Problems)))
		e.exit(1)
	}
}

