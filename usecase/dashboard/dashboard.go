// Package dashboard holds the manager's summary view.
package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

type Store struct {
	dashboard repository.DashboardRepository
	logger    *zap.Logger

	mu      sync.RWMutex
	summary *domain.DashboardSummary
	loading int
}

func New(dashboard repository.DashboardRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dashboard: dashboard, logger: logger}
}

// Fetch replaces the cached summary. On failure the previous one is kept.
func (s *Store) Fetch(ctx context.Context) (*domain.DashboardSummary, error) {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading--
		s.mu.Unlock()
	}()

	summary, err := s.dashboard.Summary(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch dashboard summary", zap.Error(err))
		return nil, err
	}
	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()
	return summary, nil
}

func (s *Store) Summary() *domain.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.summary = nil
	s.mu.Unlock()
}
