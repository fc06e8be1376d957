package rest

import (
	"context"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
	"github.com/fastygo/trucar/repository"
)

type freightRepository struct {
	api API
}

func NewFreightRepository(api API) repository.FreightRepository {
	return &freightRepository{api: api}
}

func (r *freightRepository) list(ctx context.Context, path string) ([]domain.FreightOrder, error) {
	var out []domain.FreightOrder
	if err := r.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *freightRepository) List(ctx context.Context) ([]domain.FreightOrder, error) {
	return r.list(ctx, "/freight-orders/")
}

// Open lists unclaimed orders drivers may pick up.
func (r *freightRepository) Open(ctx context.Context) ([]domain.FreightOrder, error) {
	return r.list(ctx, "/freight-orders/open")
}

func (r *freightRepository) MyPending(ctx context.Context) ([]domain.FreightOrder, error) {
	return r.list(ctx, "/freight-orders/my-pending")
}

func (r *freightRepository) Create(ctx context.Context, req transport.FreightOrderCreateRequest) (*domain.FreightOrder, error) {
	var f domain.FreightOrder
	if err := postValid(ctx, r.api, "/freight-orders/", req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *freightRepository) Update(ctx context.Context, id int, req transport.FreightOrderUpdateRequest) (*domain.FreightOrder, error) {
	var f domain.FreightOrder
	if err := putValid(ctx, r.api, itemPath("/freight-orders", id), req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *freightRepository) Claim(ctx context.Context, id int, req transport.FreightClaimRequest) (*domain.FreightOrder, error) {
	var f domain.FreightOrder
	if err := postValid(ctx, r.api, itemPath("/freight-orders", id)+"/claim", req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *freightRepository) CompleteStop(ctx context.Context, stopID int) (*domain.StopPoint, error) {
	var sp domain.StopPoint
	if err := r.api.Put(ctx, itemPath("/freight-orders/stop-points", stopID)+"/complete", nil, &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

type clientRepository struct {
	api API
}

func NewClientRepository(api API) repository.ClientRepository {
	return &clientRepository{api: api}
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	if err := r.api.Get(ctx, "/clients/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clientRepository) Create(ctx context.Context, req transport.ClientRequest) (*domain.Client, error) {
	var c domain.Client
	if err := postValid(ctx, r.api, "/clients/", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Update(ctx context.Context, id int, req transport.ClientRequest) (*domain.Client, error) {
	var c domain.Client
	if err := putValid(ctx, r.api, itemPath("/clients", id), req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/clients", id), nil)
}

type documentRepository struct {
	api API
}

func NewDocumentRepository(api API) repository.DocumentRepository {
	return &documentRepository{api: api}
}

func (r *documentRepository) List(ctx context.Context) ([]domain.Document, error) {
	var out []domain.Document
	if err := r.api.Get(ctx, "/documents/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *documentRepository) Upload(ctx context.Context, doc transport.DocumentUpload) (*domain.Document, error) {
	if err := transport.Validate(doc); err != nil {
		return nil, err
	}
	file := &apiclient.File{Name: doc.FileName, Contents: doc.File}
	var out domain.Document
	if err := r.api.PostMultipart(ctx, "/documents/", doc.Fields(), file, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *documentRepository) Delete(ctx context.Context, id int) error {
	return r.api.Delete(ctx, itemPath("/documents", id), nil)
}
