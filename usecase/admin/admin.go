// Package admin lists users for superusers and starts impersonation.
package admin

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

// Impersonator swaps the active session; *session.Manager implements it.
type Impersonator interface {
	StartImpersonation(ctx context.Context, accessToken string, user *domain.User) (string, error)
}

type Store struct {
	users    repository.AdminRepository
	sessions Impersonator
	report   usecase.Reporter
	cache    usecase.Collection[domain.User]
}

func New(users repository.AdminRepository, sessions Impersonator, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		users:    users,
		sessions: sessions,
		report:   usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) Fetch(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.users.ListUsers(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar usuários.")
	}
	s.cache.Replace(items, -1)
	return nil
}

func (s *Store) Activate(ctx context.Context, userID int) (*domain.User, error) {
	done := s.cache.Begin()
	u, err := s.users.Activate(ctx, userID)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao ativar usuário.")
	}
	s.cache.Update(func(x domain.User) bool { return x.ID == userID }, *u)
	s.report.Success("Usuário ativado com sucesso!")
	return u, nil
}

// Impersonate obtains a token for userID and hands it to the session manager.
// The returned route is where the caller should navigate.
func (s *Store) Impersonate(ctx context.Context, userID int) (string, error) {
	done := s.cache.Begin()
	resp, err := s.users.Impersonate(ctx, userID)
	done()
	if err != nil {
		return "", s.report.FailureDetail(err, "Erro ao personificar usuário.")
	}
	route, err := s.sessions.StartImpersonation(ctx, resp.Bearer(), resp.User)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyImpersonating) {
			return "", s.report.Failure(err, "Encerre a personificação atual antes de iniciar outra.")
		}
		return "", s.report.Failure(err, "Apenas administradores podem personificar usuários.")
	}
	s.report.Success("Sessão iniciada como " + resp.User.FullName + ".")
	return route, nil
}

func (s *Store) Items() []domain.User {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

func (s *Store) Reset() {
	s.cache.Reset()
}
