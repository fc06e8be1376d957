package repository

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

type VehicleRepository interface {
	List(ctx context.Context, filter transport.VehicleFilter) (*transport.VehiclePage, error)
	Get(ctx context.Context, id int) (*domain.Vehicle, error)
	Create(ctx context.Context, req transport.VehicleCreateRequest) (*domain.Vehicle, error)
	Update(ctx context.Context, id int, req transport.VehicleUpdateRequest) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int) error
}

type JourneyRepository interface {
	List(ctx context.Context, filter transport.JourneyFilter) ([]domain.Journey, error)
	Active(ctx context.Context) ([]domain.Journey, error)
	Start(ctx context.Context, req transport.JourneyStartRequest) (*domain.Journey, error)
	End(ctx context.Context, id int, req transport.JourneyEndRequest) (*domain.EndJourneyResult, error)
	Delete(ctx context.Context, id int) error
}
