package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/repository/rest"
	"github.com/fastygo/trucar/usecase"
	"github.com/fastygo/trucar/usecase/client"
)

func TestClientLifecycle(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/clients/", fasthttp.StatusOK, []domain.Client{{ID: 1, Name: "Cooperativa Sul"}})
	srv.Reply(fasthttp.MethodPost, "/clients/", fasthttp.StatusCreated, domain.Client{ID: 2, Name: "Agro Norte"})
	srv.Reply(fasthttp.MethodPut, "/clients/2", fasthttp.StatusOK, domain.Client{ID: 2, Name: "Agro Norte Ltda"})
	srv.Reply(fasthttp.MethodDelete, "/clients/1", fasthttp.StatusNoContent, nil)
	notices := &usecase.Recorder{}
	store := client.New(rest.NewClientRepository(srv.Client()), notices, nil)
	ctx := context.Background()

	require.NoError(t, store.Fetch(ctx))
	_, err := store.Create(ctx, transport.ClientRequest{Name: "Agro Norte"})
	require.NoError(t, err)
	_, err = store.Update(ctx, 2, transport.ClientRequest{Name: "Agro Norte Ltda"})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, 1))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Agro Norte Ltda", items[0].Name)
	assert.Len(t, notices.Notices(), 3)
}

func TestInvalidStateIsRejected(t *testing.T) {
	srv := apitest.New(t)
	store := client.New(rest.NewClientRepository(srv.Client()), nil, nil)
	state := "Rio Grande do Sul"

	_, err := store.Create(context.Background(), transport.ClientRequest{Name: "X", AddressState: &state})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, srv.Requests())
}
