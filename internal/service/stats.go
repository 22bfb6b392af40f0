package service

import (
	"fmt"

	"github.com/nootencorp/worklog/internal/stats"
	"github.com/nootencorp/worklog/internal/storage"
)

// StatsResult contains statistics over every stored entry
type StatsResult struct {
	Statistics stats.Statistics
	Employees  []stats.EmployeeBreakdown
}

// StatsService provides statistics operations
type StatsService struct {
	store Store
}

// NewStatsService creates a new StatsService
func NewStatsService(store Store) *StatsService {
	return &StatsService{store: store}
}

// Summary returns totals across all entries and per employee
func (s *StatsService) Summary() (*StatsResult, error) {
	c, err := s.store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	entries, err := storage.Collect(c)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return &StatsResult{
		Statistics: stats.CalculateStatistics(entries),
		Employees:  stats.CalculateEmployeeBreakdown(entries),
	}, nil
}
