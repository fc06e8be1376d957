// Package tire tracks the tire layout of one vehicle at a time.
package tire

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
	tires  repository.TireRepository
	report usecase.Reporter

	// installed holds the tires of the last loaded layout.
	installed usecase.Collection[domain.VehicleTire]

	mu      sync.RWMutex
	layout  *domain.TireLayout
	history []domain.VehicleTire
}

func New(tires repository.TireRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		tires:  tires,
		report: usecase.NewReporter(notifier, logger),
	}
}

// FetchLayout loads the installed tires of vehicleID.
func (s *Store) FetchLayout(ctx context.Context, vehicleID int) (*domain.TireLayout, error) {
	defer s.installed.Begin()()
	layout, err := s.tires.Layout(ctx, vehicleID)
	if err != nil {
		return nil, s.report.Failure(err, "Falha ao carregar os pneus do veículo.")
	}
	s.mu.Lock()
	s.layout = &domain.TireLayout{VehicleID: layout.VehicleID, AxleConfiguration: layout.AxleConfiguration}
	s.mu.Unlock()
	s.installed.Replace(layout.Tires, -1)
	return layout, nil
}

func (s *Store) FetchHistory(ctx context.Context, vehicleID int) ([]domain.VehicleTire, error) {
	defer s.installed.Begin()()
	history, err := s.tires.History(ctx, vehicleID)
	if err != nil {
		return nil, s.report.Failure(err, "Falha ao carregar o histórico de pneus.")
	}
	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
	return history, nil
}

// Install mounts a tire and reloads the layout.
func (s *Store) Install(ctx context.Context, vehicleID int, req transport.TireInstallRequest) (*domain.VehicleTire, error) {
	done := s.installed.Begin()
	t, err := s.tires.Install(ctx, vehicleID, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao instalar pneu.")
	}
	s.report.Success("Pneu instalado com sucesso!")
	_, _ = s.FetchLayout(ctx, vehicleID)
	return t, nil
}

// Remove unmounts a tire and reloads the layout of its vehicle.
func (s *Store) Remove(ctx context.Context, tireID int, req transport.TireRemoveRequest) (*domain.VehicleTire, error) {
	done := s.installed.Begin()
	t, err := s.tires.Remove(ctx, tireID, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao remover pneu.")
	}
	s.report.Success("Pneu removido com sucesso!")
	if t.VehicleID > 0 {
		_, _ = s.FetchLayout(ctx, t.VehicleID)
	}
	return t, nil
}

// Layout returns the last loaded layout, or nil.
func (s *Store) Layout() *domain.TireLayout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.layout == nil {
		return nil
	}
	out := *s.layout
	out.Tires = s.installed.Items()
	return &out
}

func (s *Store) History() []domain.VehicleTire {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.VehicleTire(nil), s.history...)
}

// Critical lists installed tires past 90% of their lifespan at currentKm.
func (s *Store) Critical(currentKm float64) []domain.VehicleTire {
	return s.installed.Filter(func(t domain.VehicleTire) bool {
		wear, _ := t.Wear(currentKm)
		return wear == domain.TireCritical
	})
}

func (s *Store) IsLoading() bool {
	return s.installed.IsLoading()
}

func (s *Store) Reset() {
	s.installed.Reset()
	s.mu.Lock()
	s.layout = nil
	s.history = nil
	s.mu.Unlock()
}
