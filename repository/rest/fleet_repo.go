package rest

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

type vehicleRepository struct {
	api API
}

func NewVehicleRepository(api API) repository.VehicleRepository {
	return &vehicleRepository{api: api}
}

func (r *vehicleRepository) List(ctx context.Context, filter transport.VehicleFilter) (*transport.VehiclePage, error) {
	var page transport.VehiclePage
	if err := r.api.Get(ctx, "/vehicles/", filter.Query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *vehicleRepository) Get(ctx context.Context, id int) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.api.Get(ctx, itemPath("/vehicles", id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, req transport.VehicleCreateRequest) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := postValid(ctx, r.api, "/vehicles/", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id int, req transport.VehicleUpdateRequest) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := putValid(ctx, r.api, itemPath("/vehicles", id), req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/vehicles", id), nil)
}

type journeyRepository struct {
	api API
}

func NewJourneyRepository(api API) repository.JourneyRepository {
	return &journeyRepository{api: api}
}

func (r *journeyRepository) List(ctx context.Context, filter transport.JourneyFilter) ([]domain.Journey, error) {
	var out []domain.Journey
	if err := r.api.Get(ctx, "/journeys/", filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *journeyRepository) Active(ctx context.Context) ([]domain.Journey, error) {
	var out []domain.Journey
	if err := r.api.Get(ctx, "/journeys/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *journeyRepository) Start(ctx context.Context, req transport.JourneyStartRequest) (*domain.Journey, error) {
	var j domain.Journey
	if err := postValid(ctx, r.api, "/journeys/start", req, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// End closes a journey; the backend also returns the released vehicle.
func (r *journeyRepository) End(ctx context.Context, id int, req transport.JourneyEndRequest) (*domain.EndJourneyResult, error) {
	var res domain.EndJourneyResult
	if err := putValid(ctx, r.api, itemPath("/journeys", id)+"/end", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *journeyRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/journeys", id), nil)
}
