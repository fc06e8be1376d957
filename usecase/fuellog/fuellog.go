// Package fuellog caches fuel logs and queues field submissions while offline.
package fuellog

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

const (
	Entity          = "fuel_log"
	OperationCreate = "create"
)

type Store struct {
	logs   repository.FuelLogRepository
	outbox usecase.Outbox
	report usecase.Reporter
	cache  usecase.Collection[domain.FuelLog]
}

func New(logs repository.FuelLogRepository, outbox usecase.Outbox, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		logs:   logs,
		outbox: outbox,
		report: usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) RegisterCommands(d *usecase.Dispatcher) {
	d.RegisterCommand(Entity+"."+OperationCreate, func(ctx context.Context, payload json.RawMessage) error {
		var req transport.FuelLogRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return domain.WrapError(domain.ErrCodeCorrupt, "decode deferred fuel log", err)
		}
		created, err := s.logs.Create(ctx, req)
		if err != nil {
			return err
		}
		s.cache.Prepend(*created)
		return nil
	})
}

func (s *Store) Fetch(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.logs.List(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar registros de abastecimento.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// Create records a fill-up, queuing it when the API cannot be reached.
func (s *Store) Create(ctx context.Context, req transport.FuelLogRequest) (*domain.FuelLog, error) {
	done := s.cache.Begin()
	f, err := s.logs.Create(ctx, req)
	done()
	if err != nil {
		if s.deferCreate(ctx, err, req) {
			return nil, domain.ErrDeferred
		}
		return nil, s.report.FailureDetail(err, "Erro ao registrar abastecimento.")
	}
	s.cache.Prepend(*f)
	s.report.Success("Abastecimento registrado com sucesso!")
	return f, nil
}

func (s *Store) Update(ctx context.Context, id int, req transport.FuelLogUpdateRequest) (*domain.FuelLog, error) {
	done := s.cache.Begin()
	f, err := s.logs.Update(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao atualizar abastecimento.")
	}
	s.cache.Update(func(c domain.FuelLog) bool { return c.ID == id }, *f)
	s.report.Success("Abastecimento atualizado com sucesso!")
	return f, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.logs.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.FailureDetail(err, "Erro ao remover abastecimento.")
	}
	s.cache.Remove(func(c domain.FuelLog) bool { return c.ID == id })
	s.report.Success("Abastecimento removido com sucesso.")
	return nil
}

// Sync asks the backend to reconcile with the fuel card provider, then reloads.
func (s *Store) Sync(ctx context.Context) (string, error) {
	done := s.cache.Begin()
	msg, err := s.logs.Sync(ctx)
	done()
	if err != nil {
		return "", s.report.FailureDetail(err, "Erro ao sincronizar abastecimentos.")
	}
	s.report.Success(msg.Message)
	_ = s.Fetch(ctx)
	return msg.Message, nil
}

func (s *Store) Items() []domain.FuelLog {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// Suspicious lists cached logs the provider could not match.
func (s *Store) Suspicious() []domain.FuelLog {
	return s.cache.Filter(func(f domain.FuelLog) bool { return f.VerificationStatus == domain.FuelSuspicious })
}

func (s *Store) Reset() {
	s.cache.Reset()
}

func (s *Store) deferCreate(ctx context.Context, cause error, req transport.FuelLogRequest) bool {
	if s.outbox == nil || !usecase.Deferrable(cause) {
		return false
	}
	if err := s.outbox.Defer(ctx, Entity, OperationCreate, req); err != nil {
		s.report.Logger().Error("failed to queue fuel log", zap.Error(err))
		return false
	}
	s.report.Warning(usecase.DeferredMessage)
	return true
}
