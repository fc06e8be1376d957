package cost_test

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
	"github.com/fastygo/trucar/usecase/cost"
)

func TestTotalsByType(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/costs/", fasthttp.StatusOK, []domain.VehicleCost{
		{ID: 1, CostType: domain.CostFuel, Amount: 300},
		{ID: 2, CostType: domain.CostFuel, Amount: 200},
		{ID: 3, CostType: domain.CostToll, Amount: 45.5},
	})
	srv.Reply(fasthttp.MethodPost, "/vehicles/2/costs", fasthttp.StatusCreated,
		domain.VehicleCost{ID: 4, VehicleID: 2, CostType: domain.CostToll, Amount: 10})
	store := cost.New(rest.NewCostRepository(srv.Client()), nil, nil)
	ctx := context.Background()

	require.NoError(t, store.Fetch(ctx, transport.CostFilter{StartDate: "2026-01-01"}))
	last, _ := srv.Last()
	assert.Equal(t, "start_date=2026-01-01", last.Query)

	_, err := store.Create(ctx, 2, transport.CostRequest{CostType: domain.CostToll, Amount: 10, Date: "2026-02-03"})
	require.NoError(t, err)

	totals := store.Totals()
	assert.Equal(t, 500.0, totals[domain.CostFuel])
	assert.Equal(t, 55.5, totals[domain.CostToll])
}

func TestCreateRejectsBadDate(t *testing.T) {
	srv := apitest.New(t)
	store := cost.New(rest.NewCostRepository(srv.Client()), nil, nil)

	_, err := store.Create(context.Background(), 2, transport.CostRequest{CostType: domain.CostFine, Amount: 90, Date: "03/02/2026"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, srv.Requests())
}
