package service

import (
	"log/slog"

	"github.com/mmcdole/bitreel/internal/domain"
	"github.com/mmcdole/bitreel/internal/search"
)

// HistoryService lists and clears recorded jobs
type HistoryService struct {
	store  domain.HistoryStore
	logger *slog.Logger
}

// NewHistoryService creates a history service over store
func NewHistoryService(store domain.HistoryStore, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryService{store: store, logger: logger}
}

// List returns up to limit recent jobs, fuzzy-filtered by query when set.
// The limit applies after filtering.
func (s *HistoryService) List(query string, limit int) ([]search.FilterResult, error) {
	fetch := limit
	if query != "" {
		fetch = 0
	}
	records, err := s.store.Recent(fetch)
	if err != nil {
		return nil, err
	}

	results := search.FilterHistory(query, records)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	s.logger.Debug("history listed", "query", query, "results", len(results))
	return results, nil
}

// Clear removes every recorded job
func (s *HistoryService) Clear() error {
	s.logger.Info("clearing job history")
	return s.store.Clear()
}
