// Package vehicle caches the paginated vehicle list of the organization.
package vehicle

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	vehicles repository.VehicleRepository
	report   usecase.Reporter
	cache    usecase.Collection[domain.Vehicle]

	mu     sync.Mutex
	filter transport.VehicleFilter
}

func New(vehicles repository.VehicleRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		vehicles: vehicles,
		report:   usecase.NewReporter(notifier, logger),
	}
}

// Fetch loads one page and remembers filter for the refresh after a mutation.
func (s *Store) Fetch(ctx context.Context, filter transport.VehicleFilter) error {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()

	defer s.cache.Begin()()
	page, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return s.report.Failure(err, "Falha ao buscar veículos.")
	}
	s.cache.Replace(page.Vehicles, page.TotalItems)
	return nil
}

// Get loads a single vehicle and refreshes its cached copy.
func (s *Store) Get(ctx context.Context, id int) (*domain.Vehicle, error) {
	defer s.cache.Begin()()
	v, err := s.vehicles.Get(ctx, id)
	if err != nil {
		return nil, s.report.Failure(err, "Falha ao buscar veículo.")
	}
	s.Upsert(*v)
	return v, nil
}

// Add creates a vehicle and reloads the first page so it shows up on top.
func (s *Store) Add(ctx context.Context, req transport.VehicleCreateRequest) (*domain.Vehicle, error) {
	done := s.cache.Begin()
	v, err := s.vehicles.Create(ctx, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao adicionar item.")
	}
	s.report.Success("Item adicionado com sucesso!")

	filter := s.lastFilter()
	filter.Page = 1
	_ = s.Fetch(ctx, filter)
	return v, nil
}

func (s *Store) Update(ctx context.Context, id int, req transport.VehicleUpdateRequest) (*domain.Vehicle, error) {
	done := s.cache.Begin()
	v, err := s.vehicles.Update(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao atualizar item.")
	}
	s.report.Success("Item atualizado com sucesso!")
	_ = s.Fetch(ctx, s.lastFilter())
	return v, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.vehicles.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.FailureDetail(err, "Erro ao excluir item.")
	}
	s.report.Success("Item excluído com sucesso.")
	_ = s.Fetch(ctx, s.lastFilter())
	return nil
}

// Upsert replaces the cached copy of v, if the current page holds it.
// Other stores call it when a response carries an updated vehicle.
func (s *Store) Upsert(v domain.Vehicle) {
	s.cache.Update(func(c domain.Vehicle) bool { return c.ID == v.ID }, v)
}

func (s *Store) Items() []domain.Vehicle {
	return s.cache.Items()
}

func (s *Store) TotalItems() int {
	return s.cache.Total()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// Available lists cached vehicles that can start a journey.
func (s *Store) Available() []domain.Vehicle {
	return s.cache.Filter(func(v domain.Vehicle) bool { return v.IsAvailable() })
}

func (s *Store) Reset() {
	s.cache.Reset()
	s.mu.Lock()
	s.filter = transport.VehicleFilter{}
	s.mu.Unlock()
}

func (s *Store) lastFilter() transport.VehicleFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}
