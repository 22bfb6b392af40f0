package service

import (
	"fmt"
	"time"

	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/nootencorp/worklog/internal/timeutil"
	"go.uber.org/zap"
)

// SearchService runs validated queries against the store.
// Every query method takes raw user input and validates it before touching
// the store; a rejected input returns the validator's sentinel error.
type SearchService struct {
	store  Store
	logger *zap.Logger
}

// NewSearchService creates a new SearchService
func NewSearchService(store Store, logger *zap.Logger) *SearchService {
	return &SearchService{
		store:  store,
		logger: logger.Named("search"),
	}
}

// ByEmployee returns entries written by exactly the given employee name
func (s *SearchService) ByEmployee(raw string) (*storage.Cursor, error) {
	if err := entry.ValidateEmployeeSearch(raw); err != nil {
		return nil, err
	}
	s.logger.Debug("search by employee", zap.String("employee", raw))
	return s.store.ByEmployee(raw)
}

// ByDate returns entries logged on the MM/DD/YYYY date in raw
func (s *SearchService) ByDate(raw string) (*storage.Cursor, error) {
	day, err := entry.ParseDateSearch(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("search by date", zap.String("date", timeutil.FormatStorageDate(day)))
	return s.store.ByDate(day)
}

// ByTimeSpent returns entries with exactly the given number of minutes
func (s *SearchService) ByTimeSpent(raw string) (*storage.Cursor, error) {
	minutes, err := entry.ParseTimeSpentSearch(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("search by time spent", zap.Int("minutes", minutes))
	return s.store.ByTimeSpent(minutes)
}

// ByTerm returns entries whose employee name or notes contain raw
func (s *SearchService) ByTerm(raw string) (*storage.Cursor, error) {
	if err := entry.ValidateTerm(raw); err != nil {
		return nil, err
	}
	s.logger.Debug("search by term", zap.String("term", raw))
	return s.store.ByTerm(raw)
}

// Employees returns each distinct employee name in the order first seen
func (s *SearchService) Employees() ([]string, error) {
	c, err := s.store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	defer func() { _ = c.Close() }()

	seen := make(map[string]bool)
	names := []string{}
	for c.Next() {
		name := c.Entry().EmployeeName
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return names, nil
}

// Dates returns each distinct entry date in the order first seen
func (s *SearchService) Dates() ([]time.Time, error) {
	c, err := s.store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	defer func() { _ = c.Close() }()

	seen := make(map[string]bool)
	dates := []time.Time{}
	for c.Next() {
		day := c.Entry().Timestamp
		key := timeutil.FormatStorageDate(day)
		if !seen[key] {
			seen[key] = true
			dates = append(dates, day)
		}
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return dates, nil
}
