package rest

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

type authRepository struct {
	api API
}

func NewAuthRepository(api API) repository.AuthRepository {
	return &authRepository{api: api}
}

func (r *authRepository) Login(ctx context.Context, req transport.LoginRequest) (*transport.TokenResponse, error) {
	if err := transport.Validate(req); err != nil {
		return nil, err
	}
	var resp transport.TokenResponse
	if err := r.api.PostForm(ctx, "/login/token", req.Form(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *authRepository) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := r.api.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type adminRepository struct {
	api API
}

func NewAdminRepository(api API) repository.AdminRepository {
	return &adminRepository{api: api}
}

func (r *adminRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.api.Get(ctx, "/admin/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *adminRepository) Activate(ctx context.Context, userID int) (*domain.User, error) {
	var user domain.User
	if err := r.api.Post(ctx, itemPath("/admin/users", userID)+"/activate", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Impersonate returns a token for userID, in the same shapes as /login/token.
func (r *adminRepository) Impersonate(ctx context.Context, userID int) (*transport.TokenResponse, error) {
	var resp transport.TokenResponse
	if err := r.api.Post(ctx, itemPath("/admin/users", userID)+"/impersonate", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Bearer() == "" || resp.User == nil {
		return nil, domain.NewError(domain.ErrCodeInternal, "impersonation response without token or user")
	}
	return &resp, nil
}
