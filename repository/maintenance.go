package repository

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

type MaintenanceRepository interface {
	List(ctx context.Context, filter transport.MaintenanceFilter) ([]domain.MaintenanceRequest, error)
	Get(ctx context.Context, id int) (*domain.MaintenanceRequest, error)
	Create(ctx context.Context, req transport.MaintenanceCreateRequest) (*domain.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id int, req transport.MaintenanceStatusRequest) (*domain.MaintenanceRequest, error)
	Comments(ctx context.Context, id int) ([]domain.MaintenanceComment, error)
	AddComment(ctx context.Context, id int, req transport.MaintenanceCommentRequest) (*domain.MaintenanceComment, error)
}
