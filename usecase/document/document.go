// Package document caches uploaded vehicle and driver documents.
package document

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
	"github.com/fastygo/trucar/usecase"
)

type Store struct {
	documents repository.DocumentRepository
	report    usecase.Reporter
	cache     usecase.Collection[domain.Document]
}

func New(documents repository.DocumentRepository, notifier usecase.Notifier, logger *zap.Logger) *Store {
	return &Store{
		documents: documents,
		report:    usecase.NewReporter(notifier, logger),
	}
}

func (s *Store) Fetch(ctx context.Context) error {
	defer s.cache.Begin()()
	items, err := s.documents.List(ctx)
	if err != nil {
		return s.report.Failure(err, "Falha ao carregar documentos.")
	}
	s.cache.Replace(items, -1)
	return nil
}

func (s *Store) Upload(ctx context.Context, doc transport.DocumentUpload) (*domain.Document, error) {
	done := s.cache.Begin()
	d, err := s.documents.Upload(ctx, doc)
	done()
	if err != nil {
		return nil, s.report.FailureDetail(err, "Erro ao enviar documento.")
	}
	s.cache.Prepend(*d)
	s.report.Success("Documento enviado com sucesso!")
	return d, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	done := s.cache.Begin()
	err := s.documents.Delete(ctx, id)
	done()
	if err != nil {
		return s.report.FailureDetail(err, "Erro ao excluir documento.")
	}
	s.cache.Remove(func(d domain.Document) bool { return d.ID == id })
	s.report.Success("Documento excluído com sucesso.")
	return nil
}

func (s *Store) Items() []domain.Document {
	return s.cache.Items()
}

func (s *Store) IsLoading() bool {
	return s.cache.IsLoading()
}

// ExpiringBy lists cached documents whose expiry date is not after deadline,
// including those already expired.
func (s *Store) ExpiringBy(deadline time.Time) []domain.Document {
	return s.cache.Filter(func(d domain.Document) bool {
		return !d.ExpiryDate.IsZero() && !d.ExpiryDate.After(deadline)
	})
}

func (s *Store) Reset() {
	s.cache.Reset()
}
