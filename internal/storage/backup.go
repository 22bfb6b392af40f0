package storage

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path of backup number n for the database at storagePath.
// Backup files are named work_log.db.bak.N; lower numbers are more recent.
func BackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backups to make room for a new .bak.1,
// dropping the oldest so only MaxBackupCount remain.
// Missing files are not an error.
func rotateBackups(storagePath string) error {
	if err := os.Remove(BackupPath(storagePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(storagePath, i), BackupPath(storagePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Backup writes a consistent snapshot of the database to .bak.1, rotating
// older snapshots. It returns the path of the new backup.
func (s *Store) Backup() (string, error) {
	if s.db == nil {
		return "", ErrClosed
	}

	if err := rotateBackups(s.path); err != nil {
		return "", fmt.Errorf("failed to rotate backups: %w", err)
	}

	dest := BackupPath(s.path, 1)
	if _, err := s.db.Exec(`VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", dest, err)
	}

	s.logger.Info("backup created", zap.String("path", dest))
	return dest, nil
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // 1 is the most recent
	Path   string
	Size   int64
}

// ListBackups returns the backups of the database at storagePath, most recent first.
// Returns an empty slice if no backups exist.
func ListBackups(storagePath string) ([]BackupInfo, error) {
	backups := []BackupInfo{}

	for i := 1; i <= MaxBackupCount; i++ {
		path := BackupPath(storagePath, i)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: path, Size: info.Size()})
	}

	return backups, nil
}
