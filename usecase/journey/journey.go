// Package journey caches journeys and drives their start and end.
package journey

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

// CurrentUser reports who is logged in.
type CurrentUser interface {
	User() *domain.User
}

// Wording supplies the sector-specific success messages.
type Wording interface {
	JourneyStartSuccessMessage() string
	JourneyEndSuccessMessage() string
}

// VehicleSink receives vehicles whose status changed with a journey.
type VehicleSink interface {
	Upsert(v domain.Vehicle)
}

type Store struct {
	journeys repository.JourneyRepository
	user     CurrentUser
	wording  Wording
	vehicles VehicleSink
	report   usecase.Reporter
	cache    usecase.Collection[domain.Journey]
}

// New builds the store. vehicles may be nil.
func New(
	journeys repository.JourneyRepository,
	user CurrentUser,
	wording Wording,
	vehicles VehicleSink,
	notifier usecase.Notifier,
	logger *zap.Logger,
) *Store {
	return &Store{
		journeys: journeys,
		user:     user,
		wording:  wording,
		vehicles: vehicles,
		report:   usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) Fetch(ctx context.Context, filter transport.JourneyFilter) error {
	defer s.cache.Begin()()
	items, err := s.journeys.List(ctx, filter)
	if err != nil {
		return s.report.Failure(err, "Falha ao buscar histórico de operações.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// FetchActive replaces the cache with the journeys still running.
func (s *Store) FetchActive(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.journeys.Active(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao buscar operações ativas.")
	}
	s.cache.Replace(items, -1)
	return nil
}

func (s *Store) Start(ctx context.Context, req transport.JourneyStartRequest) (*domain.Journey, error) {
	done := s.cache.Begin()
	j, err := s.journeys.Start(ctx, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao iniciar operação.")
	}
	s.cache.Prepend(*j)
	if j.Vehicle != nil {
		s.upsertVehicle(*j.Vehicle)
	}
	s.report.Success(s.wording.JourneyStartSuccessMessage())
	return j, nil
}

// End closes journey id and returns the released vehicle.
func (s *Store) End(ctx context.Context, id int, req transport.JourneyEndRequest) (*domain.Vehicle, error) {
	done := s.cache.Begin()
	res, err := s.journeys.End(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao finalizar operação.")
	}
	s.cache.Update(func(j domain.Journey) bool { return j.ID == id }, res.Journey)
	s.upsertVehicle(res.Vehicle)
	s.report.Success(s.wording.JourneyEndSuccessMessage())
	vehicle := res.Vehicle
	return &vehicle, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.journeys.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.FailureDetail(err, "Erro ao excluir operação.")
	}
	s.cache.Remove(func(j domain.Journey) bool { return j.ID == id })
	s.report.Success("Operação excluída com sucesso!")
	return nil
}

func (s *Store) Items() []domain.Journey {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// Active lists cached journeys that have not ended.
func (s *Store) Active() []domain.Journey {
	return s.cache.Filter(func(j domain.Journey) bool { return j.IsActive })
}

// CurrentUserActive returns the running journey of the logged-in user, if cached.
func (s *Store) CurrentUserActive() (*domain.Journey, bool) {
	user := s.user.User()
	if user == nil {
		return nil, false
	}
	j, ok := s.cache.Find(func(j domain.Journey) bool {
		return j.IsActive && j.DriverID() == user.ID
	})
	if !ok {
		return nil, false
	}
	return &j, true
}

func (s *Store) Reset() {
	s.cache.Reset()
}

func (s *Store) upsertVehicle(v domain.Vehicle) {
	if s.vehicles != nil {
		s.vehicles.Upsert(v)
	}
}
