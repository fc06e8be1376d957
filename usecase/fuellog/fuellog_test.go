package fuellog_test

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
	"github.com/fastygo/trucar/usecase/fuellog"
)

type countingOutbox struct {
	entities []string
}

func (o *countingOutbox) Defer(_ context.Context, entity, _ string, _ any) error {
	o.entities = append(o.entities, entity)
	return nil
}

func TestCreateDefersOnTransportError(t *testing.T) {
	outbox := &countingOutbox{}
	notices := &usecase.Recorder{}
	store := fuellog.New(rest.NewFuelLogRepository(apitest.Offline()), outbox, notices, nil)

	_, err := store.Create(context.Background(), transport.FuelLogRequest{VehicleID: 1, Odometer: 1000, Liters: 40, TotalCost: 240})
	require.ErrorIs(t, err, domain.ErrDeferred)
	assert.Equal(t, []string{fuellog.Entity}, outbox.entities)
	notice, _ := notices.Last()
	assert.Equal(t, usecase.LevelWarning, notice.Level)
}

func TestCreateValidationIsNeverDeferred(t *testing.T) {
	outbox := &countingOutbox{}
	store := fuellog.New(rest.NewFuelLogRepository(apitest.Offline()), outbox, nil, nil)

	_, err := store.Create(context.Background(), transport.FuelLogRequest{VehicleID: 1})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, outbox.entities)
}

func TestSyncReportsBackendMessageAndReloads(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodPost, "/fuel-logs/sync", fasthttp.StatusOK, map[string]string{"message": "3 registros sincronizados"})
	srv.Reply(fasthttp.MethodGet, "/fuel-logs/", fasthttp.StatusOK, []domain.FuelLog{
		{ID: 1, Liters: 40, TotalCost: 240, VerificationStatus: domain.FuelVerified},
		{ID: 2, Liters: 90, TotalCost: 600, VerificationStatus: domain.FuelSuspicious},
	})
	notices := &usecase.Recorder{}
	store := fuellog.New(rest.NewFuelLogRepository(srv.Client()), nil, notices, nil)

	msg, err := store.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3 registros sincronizados", msg)
	assert.Equal(t, usecase.Notice{Level: usecase.LevelPositive, Message: msg}, notices.Notices()[0])

	require.Len(t, store.Items(), 2)
	require.Len(t, store.Suspicious(), 1)
	assert.Equal(t, 2, store.Suspicious()[0].ID)
}

func TestUpdateAndDeleteKeepCacheInStep(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/fuel-logs/", fasthttp.StatusOK, []domain.FuelLog{{ID: 1, Liters: 40}, {ID: 2, Liters: 50}})
	srv.Reply(fasthttp.MethodPut, "/fuel-logs/1", fasthttp.StatusOK, domain.FuelLog{ID: 1, Liters: 45})
	srv.Reply(fasthttp.MethodDelete, "/fuel-logs/2", fasthttp.StatusNoContent, nil)
	store := fuellog.New(rest.NewFuelLogRepository(srv.Client()), nil, nil, nil)
	ctx := context.Background()
	require.NoError(t, store.Fetch(ctx))

	liters := 45.0
	_, err := store.Update(ctx, 1, transport.FuelLogUpdateRequest{Liters: &liters})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, 2))

	require.Len(t, store.Items(), 1)
	assert.Equal(t, 45.0, store.Items()[0].Liters)
}
