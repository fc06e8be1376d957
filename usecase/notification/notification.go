// Package notification keeps the user's alerts and the unread badge count.
// Failures are logged only; the badge must never interrupt the user.
package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cache         usecase.Collection[domain.Notification]

	mu     sync.RWMutex
	unread int
}

func New(notifications repository.NotificationRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{notifications: notifications, logger: logger}
}

// FetchUnreadCount refreshes the badge without loading the list.
func (s *Store) FetchUnreadCount(ctx context.Context) (int, error) {
	n, err := s.notifications.UnreadCount(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch unread notification count", zap.Error(err))
		return s.UnreadCount(), err
	}
	s.setUnread(n)
	return n, nil
}

// Fetch loads the list and derives the unread count from it.
func (s *Store) Fetch(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.notifications.List(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch notifications", zap.Error(err))
		return err
	}
	s.cache.Replace(items, -1)
	s.setUnread(domain.CountUnread(items))
	return nil
}

func (s *Store) MarkRead(ctx context.Context, id int) error {
	n, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		s.logger.Warn("failed to mark notification as read", zap.Int("notification_id", id), zap.Error(err))
		return err
	}
	s.cache.Update(func(x domain.Notification) bool { return x.ID == id }, *n)
	s.setUnread(domain.CountUnread(s.cache.Items()))
	return nil
}

func (s *Store) setUnread(n int) {
	s.mu.Lock()
	s.unread = n
	s.mu.Unlock()
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *Store) Items() []domain.Notification {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

func (s *Store) Reset() {
	s.cache.Reset()
	s.setUnread(0)
}
