// Package implement caches the implements (trailers, planters) of the fleet.
package implement

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	implements repository.ImplementRepository
	report     usecase.Reporter
	cache      usecase.Collection[domain.Implement]
}

func New(implements repository.ImplementRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		implements: implements,
		report:     usecase.NewReporter(notifier, logger),
	}
}

// FetchAll loads every implement for the management screen.
func (s *Store) FetchAll(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.implements.All(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao buscar lista de implementos.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// FetchAvailable loads only the implements that can join a new journey.
func (s *Store) FetchAvailable(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.implements.Available(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao buscar implementos disponíveis.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// Create, Update and Delete reload the full list afterwards since the backend
// answers without the stored record.
func (s *Store) Create(ctx context.Context, req transport.ImplementRequest) error {
	done := s.cache.Begin()
	err := s.implements.Create(ctx, req)
	done()
	if err != nil {
		return s.report.Failure(err, "Erro ao adicionar implemento.")
	}
	s.report.Success("Implemento adicionado com sucesso!")
	return s.FetchAll(ctx)
}

func (s *Store) Update(ctx context.Context, id int, req transport.ImplementUpdateRequest) error {
	done := s.cache.Begin()
	err := s.implements.Update(ctx, id, req)
	done()
	if err != nil {
		return s.report.Failure(err, "Erro ao atualizar implemento.")
	}
	s.report.Success("Implemento atualizado com sucesso!")
	return s.FetchAll(ctx)
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.implements.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.Failure(err, "Erro ao excluir implemento.")
	}
	s.report.Success("Implemento excluído com sucesso.")
	return s.FetchAll(ctx)
}

func (s *Store) Items() []domain.Implement {
	return s.cache.Items()
}

// Available returns the cached implements whose status is available.
func (s *Store) Available() []domain.Implement {
	return s.cache.Filter(domain.Implement.IsAvailable)
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

func (s *Store) Reset() {
	s.cache.Reset()
}
