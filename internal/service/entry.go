package service

import (
	"fmt"
	"time"

	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/storage"
	"go.uber.org/zap"
)

// EntryService creates and lists work log entries
type EntryService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewEntryService creates a new EntryService
func NewEntryService(store Store, logger *zap.Logger) *EntryService {
	return &EntryService{
		store:  store,
		logger: logger.Named("entry"),
		now:    time.Now,
	}
}

// Add validates the raw fields and persists a new entry dated today.
// Validation failures return the validator's sentinel error unchanged and
// nothing is written.
func (s *EntryService) Add(f entry.Fields) (entry.Entry, error) {
	e, err := f.Build()
	if err != nil {
		s.logger.Debug("entry rejected", zap.Error(err))
		return entry.Entry{}, err
	}
	e.Timestamp = s.now()

	created, err := s.store.Create(e)
	if err != nil {
		s.logger.Error("failed to save entry", zap.Error(err))
		return entry.Entry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	return created, nil
}

// List returns every entry in storage order
func (s *EntryService) List() ([]entry.Entry, error) {
	c, err := s.store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	entries, err := storage.Collect(c)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}
