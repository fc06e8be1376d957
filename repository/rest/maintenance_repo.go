package rest

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

type maintenanceRepository struct {
	api API
}

func NewMaintenanceRepository(api API) repository.MaintenanceRepository {
	return &maintenanceRepository{api: api}
}

func (r *maintenanceRepository) List(ctx context.Context, filter transport.MaintenanceFilter) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	if err := r.api.Get(ctx, "/maintenance/", filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintenanceRepository) Get(ctx context.Context, id int) (*domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	if err := r.api.Get(ctx, itemPath("/maintenance", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, req transport.MaintenanceCreateRequest) (*domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	if err := postValid(ctx, r.api, "/maintenance/", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) UpdateStatus(ctx context.Context, id int, req transport.MaintenanceStatusRequest) (*domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	if err := putValid(ctx, r.api, itemPath("/maintenance", id)+"/status", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) Comments(ctx context.Context, id int) ([]domain.MaintenanceComment, error) {
	var out []domain.MaintenanceComment
	if err := r.api.Get(ctx, itemPath("/maintenance", id)+"/comments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintenanceRepository) AddComment(ctx context.Context, id int, req transport.MaintenanceCommentRequest) (*domain.MaintenanceComment, error) {
	var c domain.MaintenanceComment
	if err := postValid(ctx, r.api, itemPath("/maintenance", id)+"/comments", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
