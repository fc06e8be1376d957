// Package cost caches vehicle costs for the cost reports.
package cost

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	costs  repository.CostRepository
	report usecase.Reporter
	cache  usecase.Collection[domain.VehicleCost]
}

func New(costs repository.CostRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		costs:  costs,
		report: usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) FetchByVehicle(ctx context.Context, vehicleID int) error {
	defer s.cache.Begin()()
	items, err := s.costs.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar custos do veículo.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// Fetch loads the costs of every vehicle in a date range.
func (s *Store) Fetch(ctx context.Context, filter transport.CostFilter) error {
	defer s.cache.Begin()()
	items, err := s.costs.List(ctx, filter)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar custos.")
	}
	s.cache.Replace(items, -1)
	return nil
}

func (s *Store) Create(ctx context.Context, vehicleID int, req transport.CostRequest) (*domain.VehicleCost, error) {
	done := s.cache.Begin()
	c, err := s.costs.Create(ctx, vehicleID, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao registrar custo.")
	}
	s.cache.Prepend(*c)
	s.report.Success("Custo registrado com sucesso!")
	return c, nil
}

func (s *Store) Items() []domain.VehicleCost {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// Totals sums the cached costs per type.
func (s *Store) Totals() map[domain.CostType]float64 {
	out := map[domain.CostType]float64{}
	for _, c := range s.cache.Items() {
		out[c.CostType] += c.Amount
	}
	return out
}

func (s *Store) Reset() {
	s.cache.Reset()
}
