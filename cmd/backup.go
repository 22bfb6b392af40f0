package cmd

import (
	"fmt"

	"github.com/nootencorp/worklog/internal/storage"
	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the database",
	Long: fmt.Sprintf(`Write a consistent copy of the work log database next to it.

Backups are named work_log.db.bak.1 (newest) to work_log.db.bak.%d (oldest);
older snapshots are rotated out.

Examples:
  worklog backup           Create a new backup
  worklog backup --list    Show existing backups`, storage.MaxBackupCount),
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBackup(cmd)
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().Bool("list", false, "list existing backups")
}

// runBackup creates a backup or lists the existing ones
func runBackup(cmd *cobra.Command) {
	list, _ := cmd.Flags().GetBool("list")

	e, ok := openEnv(cmd)
	if !ok {
		return
	}
	defer e.close()

	if list {
		backups, err := storage.ListBackups(e.store.Path())
		if err != nil {
			e.reportStoreError("list backups", err)
			return
		}
		if len(backups) == 0 {
			_, _ = fmt.Fprintln(deps.Stdout, "No backups found")
			return
		}
		for _, b := range backups {
			_, _ = fmt.Fprintf(deps.Stdout, "[%d] %s (%d bytes)\n", b.Number, b.Path, b.Size)
		}
		return
	}

	path, err := e.store.Backup()
	if err != nil {
		e.reportStoreError("create backup", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Backup written: %s\n", path)
}
