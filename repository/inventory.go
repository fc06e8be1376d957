package repository

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

type FuelLogRepository interface {
	List(ctx context.Context) ([]domain.FuelLog, error)
	Create(ctx context.Context, req transport.FuelLogRequest) (*domain.FuelLog, error)
	Update(ctx context.Context, id int, req transport.FuelLogUpdateRequest) (*domain.FuelLog, error)
	Delete(ctx context.Context, id int) error
	// Sync asks the backend to reconcile logs with the fuel card provider.
	Sync(ctx context.Context) (*transport.MessageResponse, error)
}

type PartRepository interface {
	List(ctx context.Context, filter transport.PartFilter) ([]domain.Part, error)
	Create(ctx context.Context, req transport.PartRequest) (*domain.Part, error)
	Update(ctx context.Context, id int, req transport.PartRequest) (*domain.Part, error)
	Delete(ctx context.Context, id int) error
}

type TireRepository interface {
	Layout(ctx context.Context, vehicleID int) (*domain.TireLayout, error)
	Install(ctx context.Context, vehicleID int, req transport.TireInstallRequest) (*domain.VehicleTire, error)
	Remove(ctx context.Context, tireID int, req transport.TireRemoveRequest) (*domain.VehicleTire, error)
	History(ctx context.Context, vehicleID int) ([]domain.VehicleTire, error)
}

type CostRepository interface {
	ListByVehicle(ctx context.Context, vehicleID int) ([]domain.VehicleCost, error)
	Create(ctx context.Context, vehicleID int, req transport.CostRequest) (*domain.VehicleCost, error)
	List(ctx context.Context, filter transport.CostFilter) ([]domain.VehicleCost, error)
}
