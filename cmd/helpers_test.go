package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/logging"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/spf13/cobra"
)

// testDeps captures command output and exit status in a temp dir
type testDeps struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	dir      string
	exited   bool
	exitCode int
	tui      *service.Services
	terminal bool
}

func setupDeps(t *testing.T, stdin string) *testDeps {
	t.Helper()
	t.Setenv(config.EnvDatabase, "")
	t.Setenv(config.EnvLogLevel, "")

	td := &testDeps{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		dir:    t.TempDir(),
	}
	SetDeps(&Deps{
		Stdout: td.stdout,
		Stderr: td.stderr,
		Stdin:  strings.NewReader(stdin),
		Exit: func(code int) {
			if !td.exited {
				td.exited = true
				td.exitCode = code
			}
		},
		StoragePath: func() (string, error) {
			return td.storagePath(), nil
		},
		ConfigPath: func() (string, error) {
			return td.configPath(), nil
		},
		LogPath: func() (string, error) {
			return filepath.Join(td.dir, logging.LogFile), nil
		},
		IsTerminal: func() bool {
			return td.terminal
		},
		RunTUI: func(services *service.Services) error {
			td.tui = services
			return nil
		},
	})
	t.Cleanup(ResetDeps)
	return td
}

func (td *testDeps) storagePath() string {
	return filepath.Join(td.dir, storage.DatabaseFile)
}

func (td *testDeps) configPath() string {
	return filepath.Join(td.dir, config.ConfigFile)
}

// expectError fails unless the command exited with code 1 and wrote want to stderr
func (td *testDeps) expectError(t *testing.T, want string) {
	t.Helper()
	if !td.exited || td.exitCode != 1 {
		t.Errorf("Expected exit code 1, got exited=%v code=%d", td.exited, td.exitCode)
	}
	if !strings.Contains(td.stderr.String(), want) {
		t.Errorf("Expected stderr to contain %q, got: %s", want, td.stderr.String())
	}
}

// expectSuccess fails if the command exited or wrote to stderr
func (td *testDeps) expectSuccess(t *testing.T) {
	t.Helper()
	if td.exited {
		t.Errorf("Expected no exit, got code %d", td.exitCode)
	}
	if td.stderr.Len() > 0 {
		t.Errorf("Expected no errors, got: %s", td.stderr.String())
	}
}

// setFlags sets name/value pairs on cmd and restores the defaults after the test
func setFlags(t *testing.T, cmd *cobra.Command, pairs ...string) {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		f := cmd.Flag(pairs[i])
		if f == nil {
			t.Fatalf("unknown flag %q on %s", pairs[i], cmd.Name())
		}
		if err := f.Value.Set(pairs[i+1]); err != nil {
			t.Fatalf("failed to set --%s: %v", pairs[i], err)
		}
		f.Changed = true
		t.Cleanup(func() {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

// seedStore writes entries to the database at path
func seedStore(t *testing.T, path string, entries ...entry.Entry) {
	t.Helper()
	store, err := storage.Open(storage.DefaultDriver, path, nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	for _, e := range entries {
		if _, err := store.Create(e); err != nil {
			t.Fatalf("Failed to create test entry: %v", err)
		}
	}
}

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{Timestamp: day(1991, time.December, 30), EmployeeName: "Jeremy", TaskTitle: "Task", TimeSpent: 90, TaskNotes: "None"},
		{Timestamp: day(2024, time.March, 1), EmployeeName: "Ann", TaskTitle: "Review", TimeSpent: 30, TaskNotes: "Reviewed Jeremy's code"},
	}
}

// readStore returns every entry in the database at path
func readStore(t *testing.T, path string) []entry.Entry {
	t.Helper()
	store, err := storage.Open(storage.DefaultDriver, path, nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	c, err := store.All()
	if err != nil {
		t.Fatalf("Failed to query store: %v", err)
	}
	entries, err := storage.Collect(c)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	return entries
}

var errBoom = errors.New("boom")
