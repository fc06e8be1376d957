// Package user manages the members of the manager's organization.
package user

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
	users  repository.UserRepository
	report usecase.Reporter
	cache  usecase.Collection[domain.User]

	mu    sync.RWMutex
	stats *domain.UserStats
}

func New(users repository.UserRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		users:  users,
		report: usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) Fetch(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.users.List(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar usuários.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// Create adds a member; the newest is listed first.
func (s *Store) Create(ctx context.Context, req transport.UserCreateRequest) (*domain.User, error) {
	done := s.cache.Begin()
	u, err := s.users.Create(ctx, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao criar usuário.")
	}
	s.cache.Prepend(*u)
	s.report.Success("Usuário adicionado com sucesso!")
	return u, nil
}

func (s *Store) Update(ctx context.Context, id int, req transport.UserUpdateRequest) (*domain.User, error) {
	done := s.cache.Begin()
	u, err := s.users.Update(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.Failure(err, "Erro ao atualizar usuário.")
	}
	s.cache.Update(func(x domain.User) bool { return x.ID == id }, *u)
	s.report.Success("Usuário atualizado com sucesso!")
	return u, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.users.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.FailureDetail(err, "Erro ao excluir usuário.")
	}
	s.cache.Remove(func(x domain.User) bool { return x.ID == id })
	s.report.Success("Usuário excluído com sucesso!")
	return nil
}

// FetchStats loads the activity summary of one member. A failure leaves the
// previous summary in place.
func (s *Store) FetchStats(ctx context.Context, id int) (*domain.UserStats, error) {
	defer s.cache.Begin()()
	stats, err := s.users.Stats(ctx, id)
	if err != nil {
		return nil, s.report.Failure(err, "Falha ao carregar estatísticas do usuário.")
	}
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
	return stats, nil
}

func (s *Store) SelectedStats() *domain.UserStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Store) Items() []domain.User {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

func (s *Store) Reset() {
	s.cache.Reset()
	s.mu.Lock()
	s.stats = nil
	s.mu.Unlock()
}
