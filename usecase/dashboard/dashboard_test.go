package dashboard_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/repository/rest"
	"github.com/fastygo/trucar/usecase/dashboard"
)

const kpis = `{"total_vehicles": 12, "available_vehicles": 7, "in_use_vehicles": 3, "maintenance_vehicles": 2}`

func TestFullSummary(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/dashboard/summary", fasthttp.StatusOK, json.RawMessage(`{
		"kpis": `+kpis+`,
		"km_per_day_last_30_days": [{"date": "2025-03-01", "total_km": 412.5}],
		"active_journeys": [],
		"upcoming_maintenances": [{"vehicle_info": "Scania R450", "due_date": null, "due_km": 150000}]
	}`))
	store := dashboard.New(rest.NewDashboardRepository(srv.Client()), nil)

	summary, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, summary.KPIs.TotalVehicles)
	assert.Equal(t, 2, summary.KPIs.MaintenanceVehicles)
	require.Len(t, summary.KmPerDayLast30Days, 1)
	assert.Equal(t, 412.5, summary.KmPerDayLast30Days[0].TotalKm)
	require.Len(t, summary.UpcomingMaintenances, 1)
	assert.Nil(t, summary.UpcomingMaintenances[0].DueDate)
	assert.False(t, summary.Limited())
	assert.Same(t, summary, store.Summary())
}

func TestDemoSummaryIsLimited(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/dashboard/summary", fasthttp.StatusOK, json.RawMessage(`{
		"kpis": `+kpis+`,
		"km_per_day_last_30_days": null,
		"active_journeys": null,
		"upcoming_maintenances": null
	}`))
	store := dashboard.New(rest.NewDashboardRepository(srv.Client()), nil)

	summary, err := store.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.Limited())
	assert.Equal(t, 7, summary.KPIs.AvailableVehicles)
}

func TestFailedFetchKeepsPreviousSummary(t *testing.T) {
	srv := apitest.New(t)
	calls := 0
	srv.Handle(fasthttp.MethodGet, "/dashboard/summary", func(ctx *fasthttp.RequestCtx) {
		calls++
		if calls > 1 {
			apitest.WriteJSON(ctx, fasthttp.StatusInternalServerError, apitest.Detail("boom"))
			return
		}
		apitest.WriteJSON(ctx, fasthttp.StatusOK, json.RawMessage(`{"kpis": `+kpis+`}`))
	})
	store := dashboard.New(rest.NewDashboardRepository(srv.Client()), nil)
	ctx := context.Background()

	first, err := store.Fetch(ctx)
	require.NoError(t, err)
	_, err = store.Fetch(ctx)
	assert.Error(t, err)
	assert.Same(t, first, store.Summary())
	assert.False(t, store.IsLoading())

	store.Reset()
	assert.Nil(t, store.Summary())
}
