package rest

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

type userRepository struct {
	api API
}

func NewUserRepository(api API) repository.UserRepository {
	return &userRepository{api: api}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := r.api.Get(ctx, "/users/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepository) Create(ctx context.Context, req transport.UserCreateRequest) (*domain.User, error) {
	var u domain.User
	if err := postValid(ctx, r.api, "/users/", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, id int, req transport.UserUpdateRequest) (*domain.User, error) {
	var u domain.User
	if err := putValid(ctx, r.api, itemPath("/users", id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/users", id), nil)
}

func (r *userRepository) Stats(ctx context.Context, id int) (*domain.UserStats, error) {
	var stats domain.UserStats
	if err := r.api.Get(ctx, itemPath("/users", id)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type implementRepository struct {
	api API
}

func NewImplementRepository(api API) repository.ImplementRepository {
	return &implementRepository{api: api}
}

func (r *implementRepository) Available(ctx context.Context) ([]domain.Implement, error) {
	var out []domain.Implement
	if err := r.api.Get(ctx, "/implements/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *implementRepository) All(ctx context.Context) ([]domain.Implement, error) {
	var out []domain.Implement
	if err := r.api.Get(ctx, "/implements/management-list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *implementRepository) Create(ctx context.Context, req transport.ImplementRequest) error {
	return postValid(ctx, r.api, "/implements/", req, nil)
}

func (r *implementRepository) Update(ctx context.Context, id int, req transport.ImplementUpdateRequest) error {
	return putValid(ctx, r.api, itemPath("/implements", id), req, nil)
}

func (r *implementRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/implements", id), nil)
}

type notificationRepository struct {
	api API
}

func NewNotificationRepository(api API) repository.NotificationRepository {
	return &notificationRepository{api: api}
}

func (r *notificationRepository) List(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := r.api.Get(ctx, "/notifications/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount reads the bare integer the backend returns.
func (r *notificationRepository) UnreadCount(ctx context.Context) (int, error) {
	var n int
	if err := r.api.Get(ctx, "/notifications/unread-count", nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id int) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.api.Post(ctx, itemPath("/notifications", id)+"/read", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

type dashboardRepository struct {
	api API
}

func NewDashboardRepository(api API) repository.DashboardRepository {
	return &dashboardRepository{api: api}
}

func (r *dashboardRepository) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var s domain.DashboardSummary
	if err := r.api.Get(ctx, "/dashboard/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
