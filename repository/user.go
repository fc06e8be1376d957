package repository

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

// AuthRepository exchanges credentials for a token and reads the current profile.
type AuthRepository interface {
	Login(ctx context.Context, req transport.LoginRequest) (*transport.TokenResponse, error)
	Me(ctx context.Context) (*domain.User, error)
}

// AdminRepository is available to superusers only.
type AdminRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	Activate(ctx context.Context, userID int) (*domain.User, error)
	Impersonate(ctx context.Context, userID int) (*transport.TokenResponse, error)
}
