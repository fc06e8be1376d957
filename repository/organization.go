package repository

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

// UserRepository manages the members of the caller's organization.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, req transport.UserCreateRequest) (*domain.User, error)
	Update(ctx context.Context, id int, req transport.UserUpdateRequest) (*domain.User, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context, id int) (*domain.UserStats, error)
}

type ImplementRepository interface {
	// Available lists implements free to join a journey.
	Available(ctx context.Context) ([]domain.Implement, error)
	// All lists every implement regardless of status.
	All(ctx context.Context) ([]domain.Implement, error)
	Create(ctx context.Context, req transport.ImplementRequest) error
	Update(ctx context.Context, id int, req transport.ImplementUpdateRequest) error
	Delete(ctx context.Context, id int) error
}

type NotificationRepository interface {
	List(ctx context.Context) ([]domain.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int) (*domain.Notification, error)
}

type DashboardRepository interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}
