// Package maintenance caches maintenance requests and their comments.
package maintenance

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

// Outbox entity and operation names of deferred requests.
const (
	Entity          = "maintenance"
	OperationCreate = "create"
)

type Store struct {
	requests repository.MaintenanceRepository
	outbox   usecase.Outbox
	report   usecase.Reporter
	cache    usecase.Collection[domain.MaintenanceRequest]
}

// New builds the store. With a nil outbox, creation failures are reported
// instead of deferred.
func New(requests repository.MaintenanceRepository, outbox usecase.Outbox, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		requests: requests,
		outbox:   outbox,
		report:   usecase.NewReporter(notifier, logger),
	}
}

// RegisterCommands lets the outbox processor replay deferred requests.
func (s *Store) RegisterCommands(d *usecase.Dispatcher) {
	d.RegisterCommand(Entity+"."+OperationCreate, func(ctx context.Context, payload json.RawMessage) error {
		var req transport.MaintenanceCreateRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return domain.WrapError(domain.ErrCodeCorrupt, "decode deferred maintenance request", err)
		}
		created, err := s.requests.Create(ctx, req)
		if err != nil {
			return err
		}
		s.cache.Prepend(*created)
		return nil
	})
}

func (s *Store) Fetch(ctx context.Context, filter transport.MaintenanceFilter) error {
	defer s.cache.Begin()()
	items, err := s.requests.List(ctx, filter)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar manutenções.")
	}
	s.cache.Replace(items, -1)
	return nil
}

// Get loads one request with its comments and refreshes the cached copy.
func (s *Store) Get(ctx context.Context, id int) (*domain.MaintenanceRequest, error) {
	defer s.cache.Begin()()
	m, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, s.report.Failure(err, "Falha ao carregar a solicitação.")
	}
	s.cache.Update(byID(id), *m)
	return m, nil
}

// Create submits a request. When the API is unreachable and an outbox is
// configured, the request is queued and domain.ErrDeferred returned.
func (s *Store) Create(ctx context.Context, req transport.MaintenanceCreateRequest) (*domain.MaintenanceRequest, error) {
	done := s.cache.Begin()
	m, err := s.requests.Create(ctx, req)
	done()
	if err != nil {
		if s.deferCreate(ctx, err, req) {
			return nil, domain.ErrDeferred
		}
		return nil, s.report.FailureDetail(err, "Erro ao enviar solicitação.")
	}
	s.cache.Prepend(*m)
	s.report.Success("Solicitação enviada com sucesso!")
	return m, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int, req transport.MaintenanceStatusRequest) (*domain.MaintenanceRequest, error) {
	done := s.cache.Begin()
	m, err := s.requests.UpdateStatus(ctx, id, req)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao atualizar solicitação.")
	}
	s.cache.Update(byID(id), *m)
	s.report.Success("Status da solicitação atualizado!")
	return m, nil
}

func (s *Store) Comments(ctx context.Context, id int) ([]domain.MaintenanceComment, error) {
	comments, err := s.requests.Comments(ctx, id)
	if err != nil {
		return nil, s.report.Failure(err, "Falha ao carregar comentários.")
	}
	return comments, nil
}

// AddComment posts a comment and appends it to the cached request.
func (s *Store) AddComment(ctx context.Context, id int, req transport.MaintenanceCommentRequest) (*domain.MaintenanceComment, error) {
	c, err := s.requests.AddComment(ctx, id, req)
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao enviar comentário.")
	}
	if m, ok := s.cache.Find(byID(id)); ok {
		m.Comments = append(append([]domain.MaintenanceComment(nil), m.Comments...), *c)
		s.cache.Update(byID(id), m)
	}
	return c, nil
}

func (s *Store) Items() []domain.MaintenanceRequest {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// Open lists cached requests that are neither rejected nor completed.
func (s *Store) Open() []domain.MaintenanceRequest {
	return s.cache.Filter(func(m domain.MaintenanceRequest) bool { return m.IsOpen() })
}

func (s *Store) Reset() {
	s.cache.Reset()
}

func (s *Store) deferCreate(ctx context.Context, cause error, req transport.MaintenanceCreateRequest) bool {
	if s.outbox == nil || !usecase.Deferrable(cause) {
		return false
	}
	if err := s.outbox.Defer(ctx, Entity, OperationCreate, req); err != nil {
		s.report.Logger().Error("failed to queue maintenance request", zap.Error(err))
		return false
	}
	s.report.Warning(usecase.DeferredMessage)
	return true
}

func byID(id int) func(domain.MaintenanceRequest) bool {
	return func(m domain.MaintenanceRequest) bool { return m.ID == id }
}
