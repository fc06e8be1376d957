// Package client caches the freight customers of the organization.
package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	clients repository.ClientRepository
	report  usecase.Reporter
	cache   usecase.Collection[domain.Client]
}

func New(clients repository.ClientRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		clients: clients,
		report:  usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) Fetch(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.clients.List(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar clientes.")
	}
	s.cache.Replace(items, -1)
	return nil
}

func (s *Store) Create(ctx context.Context, req transport.ClientRequest) (*domain.Client, error) {
	done := s.cache.Begin()
	c, err := s.clients.Create(ctx, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao adicionar cliente.")
	}
	s.cache.Append(*c)
	s.report.Success("Cliente adicionado com sucesso!")
	return c, nil
}

func (s *Store) Update(ctx context.Context, id int, req transport.ClientRequest) (*domain.Client, error) {
	done := s.cache.Begin()
	c, err := s.clients.Update(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao atualizar cliente.")
	}
	s.cache.Update(func(x domain.Client) bool { return x.ID == id }, *c)
	s.report.Success("Cliente atualizado com sucesso!")
	return c, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.clients.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.FailureDetail(err, "Erro ao excluir cliente.")
	}
	s.cache.Remove(func(x domain.Client) bool { return x.ID == id })
	s.report.Success("Cliente excluído com sucesso.")
	return nil
}

func (s *Store) Items() []domain.Client {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

func (s *Store) Reset() {
	s.cache.Reset()
}
