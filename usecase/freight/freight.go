// Package freight caches freight orders and enforces their workflow locally.
package freight

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	orders repository.FreightRepository
	report usecase.Reporter
	cache  usecase.Collection[domain.FreightOrder]
}

func New(orders repository.FreightRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		orders: orders,
		report: usecase.NewReporter(notifier, logger),
	}
}

// Fetch loads every order of the organization.
func (s *Store) Fetch(ctx context.Context) error {
	return s.load(ctx, s.orders.List)
}

// FetchOpen loads orders no driver has claimed yet.
func (s *Store) FetchOpen(ctx context.Context) error {
	return s.load(ctx, s.orders.Open)
}

// FetchMyPending loads the logged-in driver's unfinished orders.
func (s *Store) FetchMyPending(ctx context.Context) error {
	return s.load(ctx, s.orders.MyPending)
}

func (s *Store) load(ctx context.Context, list func(context.Context) ([]domain.FreightOrder, error)) error {
	defer s.cache.Begin()()
	items, err := list(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar ordens de frete.")
	}
	s.cache.Replace(items, -1)
	return nil
}

func (s *Store) Create(ctx context.Context, req transport.FreightOrderCreateRequest) (*domain.FreightOrder, error) {
	done := s.cache.Begin()
	f, err := s.orders.Create(ctx, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao criar ordem de frete.")
	}
	s.cache.Prepend(*f)
	s.report.Success("Ordem de frete criada com sucesso!")
	return f, nil
}

// Update changes an order. A status change the cached order cannot make is
// rejected with domain.ErrIllegalTransition before any request.
func (s *Store) Update(ctx context.Context, id int, req transport.FreightOrderUpdateRequest) (*domain.FreightOrder, error) {
	if req.Status != nil {
		if cached, ok := s.cache.Find(byID(id)); ok && cached.Status != *req.Status && !cached.Status.CanTransitionTo(*req.Status) {
			return nil, s.report.Failure(domain.ErrIllegalTransition, "Mudança de status não permitida.")
		}
	}

	done := s.cache.Begin()
	f, err := s.orders.Update(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao atualizar ordem de frete.")
	}
	s.cache.Update(byID(id), *f)
	s.report.Success("Ordem de frete atualizada!")
	return f, nil
}

// Claim assigns a pending order to the current driver with vehicleID.
func (s *Store) Claim(ctx context.Context, id, vehicleID int) (*domain.FreightOrder, error) {
	if cached, ok := s.cache.Find(byID(id)); ok && !cached.Claimable() {
		return nil, s.report.Failure(domain.ErrFreightNotClaimable, "Este frete não está mais disponível.")
	}

	done := s.cache.Begin()
	f, err := s.orders.Claim(ctx, id, transport.FreightClaimRequest{VehicleID: vehicleID})
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao aceitar frete.")
	}
	s.cache.Update(byID(id), *f)
	s.report.Success("Frete aceito com sucesso!")
	return f, nil
}

// CompleteStop marks a stop point as done and updates the order holding it.
func (s *Store) CompleteStop(ctx context.Context, stopID int) (*domain.StopPoint, error) {
	done := s.cache.Begin()
	stop, err := s.orders.CompleteStop(ctx, stopID)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao concluir parada.")
	}

	holds := func(f domain.FreightOrder) bool {
		for _, sp := range f.StopPoints {
			if sp.ID == stopID {
				return true
			}
		}
		return false
	}
	if order, ok := s.cache.Find(holds); ok {
		stops := append([]domain.StopPoint(nil), order.StopPoints...)
		for i := range stops {
			if stops[i].ID == stopID {
				stops[i] = *stop
			}
		}
		order.StopPoints = stops
		s.cache.Update(byID(order.ID), order)
	}
	s.report.Success("Parada concluída!")
	return stop, nil
}

func (s *Store) Items() []domain.FreightOrder {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// Find returns the cached order with id.
func (s *Store) Find(id int) (domain.FreightOrder, bool) {
	return s.cache.Find(byID(id))
}

func (s *Store) Reset() {
	s.cache.Reset()
}

func byID(id int) func(domain.FreightOrder) bool {
	return func(f domain.FreightOrder) bool { return f.ID == id }
}
