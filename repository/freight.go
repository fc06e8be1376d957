package repository

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
)

type FreightRepository interface {
	List(ctx context.Context) ([]domain.FreightOrder, error)
	Open(ctx context.Context) ([]domain.FreightOrder, error)
	MyPending(ctx context.Context) ([]domain.FreightOrder, error)
	Create(ctx context.Context, req transport.FreightOrderCreateRequest) (*domain.FreightOrder, error)
	Update(ctx context.Context, id int, req transport.FreightOrderUpdateRequest) (*domain.FreightOrder, error)
	Claim(ctx context.Context, id int, req transport.FreightClaimRequest) (*domain.FreightOrder, error)
	CompleteStop(ctx context.Context, stopID int) (*domain.StopPoint, error)
}

type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	Create(ctx context.Context, req transport.ClientRequest) (*domain.Client, error)
	Update(ctx context.Context, id int, req transport.ClientRequest) (*domain.Client, error)
	Delete(ctx context.Context, id int) error
}

type DocumentRepository interface {
	List(ctx context.Context) ([]domain.Document, error)
	Upload(ctx context.Context, doc transport.DocumentUpload) (*domain.Document, error)
	Delete(ctx context.Context, id int) error
}
