package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errStoreDown = errors.New("store down")

// testEnv is an open store in a temp dir plus services logging to an observer
type testEnv struct {
	store    *storage.Store
	services *Services
	logs     *observer.ObservedLogs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	tmpDir := t.TempDir()
	store, err := storage.Open(storage.DefaultDriver, filepath.Join(tmpDir, storage.DatabaseFile), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	services := NewServices(store, filepath.Join(tmpDir, config.ConfigFile), config.DefaultConfig(), logger)
	return &testEnv{store: store, services: services, logs: logs}
}

// seed stores entries directly so their dates can be chosen
func (env *testEnv) seed(t *testing.T, entries ...entry.Entry) {
	t.Helper()
	for _, e := range entries {
		_, err := env.store.Create(e)
		require.NoError(t, err)
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func sample(name string, date time.Time, minutes int, notes string) entry.Entry {
	return entry.Entry{
		Timestamp:    date,
		EmployeeName: name,
		TaskTitle:    "Task",
		TimeSpent:    minutes,
		TaskNotes:    notes,
	}
}

func drain(t *testing.T) func(*storage.Cursor, error) []entry.Entry {
	t.Helper()
	return func(c *storage.Cursor, err error) []entry.Entry {
		t.Helper()
		require.NoError(t, err)
		entries, err := storage.Collect(c)
		require.NoError(t, err)
		return entries
	}
}

// failingStore fails every operation
type failingStore struct{}

func (failingStore) Create(entry.Entry) (entry.Entry, error) { return entry.Entry{}, errStoreDown }
func (failingStore) All() (*storage.Cursor, error) { return nil, errStoreDown }
func (failingStore) ByEmployee(string) (*storage.Cursor, error) { return nil, errStoreDown }
func (failingStore) ByDate(time.Time) (*storage.Cursor, error) { return nil, errStoreDown }
func (failingStore) ByTimeSpent(int) (*storage.Cursor, error) { return nil, errStoreDown }
func (failingStore) ByTerm(string) (*storage.Cursor, error) { return nil, errStoreDown }
