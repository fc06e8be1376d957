package rest

import (
	"context"
	"fmt"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

type fuelLogRepository struct {
	api API
}

func NewFuelLogRepository(api API) repository.FuelLogRepository {
	return &fuelLogRepository{api: api}
}

func (r *fuelLogRepository) List(ctx context.Context) ([]domain.FuelLog, error) {
	var out []domain.FuelLog
	if err := r.api.Get(ctx, "/fuel-logs/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fuelLogRepository) Create(ctx context.Context, req transport.FuelLogRequest) (*domain.FuelLog, error) {
	var f domain.FuelLog
	if err := postValid(ctx, r.api, "/fuel-logs/", req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fuelLogRepository) Update(ctx context.Context, id int, req transport.FuelLogUpdateRequest) (*domain.FuelLog, error) {
	var f domain.FuelLog
	if err := putValid(ctx, r.api, itemPath("/fuel-logs", id), req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fuelLogRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/fuel-logs", id), nil)
}

func (r *fuelLogRepository) Sync(ctx context.Context) (*transport.MessageResponse, error) {
	var msg transport.MessageResponse
	if err := r.api.Post(ctx, "/fuel-logs/sync", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

type partRepository struct {
	api API
}

func NewPartRepository(api API) repository.PartRepository {
	return &partRepository{api: api}
}

func (r *partRepository) List(ctx context.Context, filter transport.PartFilter) ([]domain.Part, error) {
	var out []domain.Part
	if err := r.api.Get(ctx, "/parts/", filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *partRepository) Create(ctx context.Context, req transport.PartRequest) (*domain.Part, error) {
	var p domain.Part
	if err := postValid(ctx, r.api, "/parts/", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepository) Update(ctx context.Context, id int, req transport.PartRequest) (*domain.Part, error) {
	var p domain.Part
	if err := putValid(ctx, r.api, itemPath("/parts", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/parts", id), nil)
}

type tireRepository struct {
	api API
}

func NewTireRepository(api API) repository.TireRepository {
	return &tireRepository{api: api}
}

func tiresPath(vehicleID int) string {
	return fmt.Sprintf("/vehicles/%d/tires", vehicleID)
}

func (r *tireRepository) Layout(ctx context.Context, vehicleID int) (*domain.TireLayout, error) {
	var layout domain.TireLayout
	if err := r.api.Get(ctx, tiresPath(vehicleID), nil, &layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *tireRepository) Install(ctx context.Context, vehicleID int, req transport.TireInstallRequest) (*domain.VehicleTire, error) {
	var t domain.VehicleTire
	if err := postValid(ctx, r.api, tiresPath(vehicleID), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tireRepository) Remove(ctx context.Context, tireID int, req transport.TireRemoveRequest) (*domain.VehicleTire, error) {
	var t domain.VehicleTire
	if err := putValid(ctx, r.api, itemPath("/tires", tireID)+"/remove", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tireRepository) History(ctx context.Context, vehicleID int) ([]domain.VehicleTire, error) {
	var out []domain.VehicleTire
	if err := r.api.Get(ctx, tiresPath(vehicleID)+"/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type costRepository struct {
	api API
}

func NewCostRepository(api API) repository.CostRepository {
	return &costRepository{api: api}
}

func costsPath(vehicleID int) string {
	return fmt.Sprintf("/vehicles/%d/costs", vehicleID)
}

func (r *costRepository) ListByVehicle(ctx context.Context, vehicleID int) ([]domain.VehicleCost, error) {
	var out []domain.VehicleCost
	if err := r.api.Get(ctx, costsPath(vehicleID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *costRepository) Create(ctx context.Context, vehicleID int, req transport.CostRequest) (*domain.VehicleCost, error) {
	var c domain.VehicleCost
	if err := postValid(ctx, r.api, costsPath(vehicleID), req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *costRepository) List(ctx context.Context, filter transport.CostFilter) ([]domain.VehicleCost, error) {
	var out []domain.VehicleCost
	if err := r.api.Get(ctx, "/costs/", filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
