// Package service provides the business logic layer for worklog.
// It validates raw terminal input, hands accepted values to the record store
// and derives summaries from stored entries, for both the shell and the tui.
package service

import (
	"time"

	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/storage"
	"go.uber.org/zap"
)

// Store is the record store the services operate on. *storage.Store implements it.
type Store interface {
	Create(e entry.Entry) (entry.Entry, error)
	All() (*storage.Cursor, error)
	ByEmployee(name string) (*storage.Cursor, error)
	ByDate(day time.Time) (*storage.Cursor, error)
	ByTimeSpent(minutes int) (*storage.Cursor, error)
	ByTerm(term string) (*storage.Cursor, error)
}

// Services holds all service instances used by the application
type Services struct {
	Entry  *EntryService
	Search *SearchService
	Stats  *StatsService
	Config *ConfigService
}

// NewServices wires the services around an open store
func NewServices(store Store, configPath string, cfg config.Config, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Services{
		Entry:  NewEntryService(store, logger),
		Search: NewSearchService(store, logger),
		Stats:  NewStatsService(store),
		Config: NewConfigService(configPath, cfg),
	}
}
