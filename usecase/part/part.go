// Package part caches the parts inventory.
package part

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	parts  repository.PartRepository
	report usecase.Reporter
	cache  usecase.Collection[domain.Part]

	mu     sync.Mutex
	filter transport.PartFilter
}

func New(parts repository.PartRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		parts:  parts,
		report: usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) Fetch(ctx context.Context, filter transport.PartFilter) error {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	defer s.cache.Begin()()
	items, err := s.parts.List(ctx, filter)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar as peças do inventário.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// Create adds a part and reloads the list with the last filter.
func (s *Store) Create(ctx context.Context, req transport.PartRequest) (*domain.Part, error) {
	done := s.cache.Begin()
	p, err := s.parts.Create(ctx, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao adicionar a peça.")
	}
	s.report.Success("Peça adicionada com sucesso!")
	_ = s.Fetch(ctx, s.lastFilter())
	return p, nil
}

func (s *Store) Update(ctx context.Context, id int, req transport.PartRequest) (*domain.Part, error) {
	done := s.cache.Begin()
	p, err := s.parts.Update(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao atualizar a peça.")
	}
	s.cache.Update(func(c domain.Part) bool { return c.ID == id }, *p)
	s.report.Success("Peça atualizada com sucesso!")
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.parts.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.Failure(err, "Erro ao remover a peça.")
	}
	s.cache.Remove(func(c domain.Part) bool { return c.ID == id })
	s.report.Success("Peça removida com sucesso.")
	return nil
}

func (s *Store) Items() []domain.Part {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// LowStock lists cached parts at or below their minimum stock.
func (s *Store) LowStock() []domain.Part {
	return s.cache.Filter(func(p domain.Part) bool { return p.IsLowStock() })
}

func (s *Store) Reset() {
	s.cache.Reset()
	s.mu.Lock()
	s.filter = transport.PartFilter{}
	s.mu.Unlock()
}

func (s *Store) lastFilter() transport.PartFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}
