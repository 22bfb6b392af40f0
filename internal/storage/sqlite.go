package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/osutil"
	"github.com/nootencorp/worklog/internal/timeutil"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	// DatabaseFile is the default database file name inside the application directory
	DatabaseFile = "work_log.db"

	// DefaultDriver is the pure Go driver registered by modernc.org/sqlite
	DefaultDriver = "sqlite"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store is closed")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS entries (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     TEXT    NOT NULL,
		employee_name TEXT    NOT NULL,
		task_title    TEXT    NOT NULL,
		time_spent    INTEGER NOT NULL,
		task_notes    TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_employee_name ON entries(employee_name)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp)`,
}

const selectEntries = `SELECT id, timestamp, employee_name, task_title, time_spent, task_notes FROM entries`

// LIKE wildcards in user input are matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// row is the database shape of an entry
type row struct {
	ID           int64  `db:"id"`
	Timestamp    string `db:"timestamp"`
	EmployeeName string `db:"employee_name"`
	TaskTitle    string `db:"task_title"`
	TimeSpent    int    `db:"time_spent"`
	TaskNotes    string `db:"task_notes"`
}

func toRow(e entry.Entry) row {
	return row{
		ID:           e.ID,
		Timestamp:    timeutil.FormatStorageDate(e.Timestamp),
		EmployeeName: e.EmployeeName,
		TaskTitle:    e.TaskTitle,
		TimeSpent:    e.TimeSpent,
		TaskNotes:    e.TaskNotes,
	}
}

func (r row) toEntry() (entry.Entry, error) {
	ts, err := timeutil.ParseStorageDate(r.Timestamp)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("entry %d has invalid timestamp %q: %w", r.ID, r.Timestamp, err)
	}
	return entry.Entry{
		ID:           r.ID,
		Timestamp:    ts,
		EmployeeName: r.EmployeeName,
		TaskTitle:    r.TaskTitle,
		TimeSpent:    r.TimeSpent,
		TaskNotes:    r.TaskNotes,
	}, nil
}

// Store is the SQLite-backed record store for work log entries.
// A Store is used from one goroutine at a time; Close must not race with queries.
type Store struct {
	db     *sqlx.DB
	path   string
	driver string
	logger *zap.Logger
	now    func() time.Time
}

// GetStoragePath returns the default database path.
// Creates the application directory if it doesn't exist.
func GetStoragePath() (string, error) {
	return osutil.AppFile(DatabaseFile)
}

// Open opens the database at path with the given driver and makes sure the
// schema exists. Opening an existing database never alters its entries.
func Open(driver, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if driver == "" {
		driver = DefaultDriver
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}

	s := &Store{
		db:     db,
		path:   path,
		driver: driver,
		logger: logger.Named("storage"),
		now:    time.Now,
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.logger.Debug("database opened", zap.String("path", path), zap.String("driver", driver))
	return s, nil
}

func (s *Store) initSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Driver returns the database/sql driver name in use.
func (s *Store) Driver() string {
	return s.driver
}

// Close releases the database handle. Closing twice is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.logger.Debug("database closed", zap.String("path", s.path))
	return nil
}

// Create persists e and returns it with its assigned ID.
// A zero timestamp is replaced by today's date; any time of day is dropped.
func (s *Store) Create(e entry.Entry) (entry.Entry, error) {
	if s.db == nil {
		return entry.Entry{}, ErrClosed
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	e.Timestamp = timeutil.LocalDate(e.Timestamp)

	res, err := s.db.NamedExec(
		`INSERT INTO entries (timestamp, employee_name, task_title, time_spent, task_notes)
		 VALUES (:timestamp, :employee_name, :task_title, :time_spent, :task_notes)`,
		toRow(e),
	)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to read new entry id: %w", err)
	}
	e.ID = id

	s.logger.Info("entry created",
		zap.Int64("id", e.ID),
		zap.String("employee", e.EmployeeName),
		zap.Int("time_spent", e.TimeSpent),
	)
	return e, nil
}

// All returns a cursor over every entry in insertion order.
func (s *Store) All() (*Cursor, error) {
	return s.query("")
}

// ByEmployee returns entries whose employee name equals name exactly.
func (s *Store) ByEmployee(name string) (*Cursor, error) {
	return s.query("employee_name = ?", name)
}

// ByDate returns entries logged on the calendar day of day.
func (s *Store) ByDate(day time.Time) (*Cursor, error) {
	return s.query("timestamp = ?", timeutil.FormatStorageDate(timeutil.LocalDate(day)))
}

// ByTimeSpent returns entries whose time spent equals minutes.
func (s *Store) ByTimeSpent(minutes int) (*Cursor, error) {
	return s.query("time_spent = ?", minutes)
}

// ByTerm returns entries whose employee name or notes contain term.
// Each entry appears at most once, even when both fields match.
func (s *Store) ByTerm(term string) (*Cursor, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return s.query(`employee_name LIKE ? ESCAPE '\' OR task_notes LIKE ? ESCAPE '\'`, pattern, pattern)
}

func (s *Store) query(where string, args ...any) (*Cursor, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	q := selectEntries
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY id"

	rows, err := s.db.Queryx(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	s.logger.Debug("query", zap.String("where", where), zap.Any("args", args))
	return &Cursor{rows: rows}, nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM entries`); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// Health describes the state of the database file
type Health struct {
	Path        string
	Driver      string
	Entries     int
	IntegrityOK bool
	Problems    []string
}

// Health runs SQLite's integrity check and counts entries.
func (s *Store) Health() (Health, error) {
	if s.db == nil {
		return Health{}, ErrClosed
	}

	h := Health{Path: s.path, Driver: s.driver}

	var results []string
	if err := s.db.Select(&results, `PRAGMA integrity_check`); err != nil {
		return h, fmt.Errorf("failed to run integrity check: %w", err)
	}
	h.IntegrityOK = len(results) == 1 && results[0] == "ok"
	if !h.IntegrityOK {
		h.Problems = results
	}

	n, err := s.Count()
	if err != nil {
		return h, err
	}
	h.Entries = n
	return h, nil
}
