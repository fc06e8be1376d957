package document_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/repository/rest"
	"github.com/fastygo/trucar/usecase/document"
)

func TestExpiringBy(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/documents/", fasthttp.StatusOK, []map[string]any{
		{"id": 1, "document_type": "CNH", "expiry_date": "2026-01-10", "file_url": "/f/1"},
		{"id": 2, "document_type": "CRLV", "expiry_date": "2026-03-01", "file_url": "/f/2"},
		{"id": 3, "document_type": "Seguro", "expiry_date": "2027-01-01", "file_url": "/f/3"},
	})
	store := document.New(rest.NewDocumentRepository(srv.Client()), nil, nil)
	require.NoError(t, store.Fetch(context.Background()))

	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expiring := store.ExpiringBy(deadline)
	require.Len(t, expiring, 2)
	assert.Equal(t, 1, expiring[0].ID)
	assert.Equal(t, 2, expiring[1].ID)
}

func TestUploadPrepends(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodPost, "/documents/", fasthttp.StatusCreated, map[string]any{
		"id": 7, "document_type": "CNH", "expiry_date": "2028-05-01", "file_url": "/f/7",
	})
	store := document.New(rest.NewDocumentRepository(srv.Client()), nil, nil)

	doc, err := store.Upload(context.Background(), transport.DocumentUpload{
		DocumentType: "CNH",
		ExpiryDate:   "2028-05-01",
		VehicleID:    2,
		FileName:     "cnh.jpg",
		File:         []byte{0xff, 0xd8},
	})
	require.NoError(t, err)
	assert.Equal(t, "2028-05-01", doc.ExpiryDate.Date())
	require.Len(t, store.Items(), 1)
}
