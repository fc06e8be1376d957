package user_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/repository/rest"
	"github.com/fastygo/trucar/usecase"
	"github.com/fastygo/trucar/usecase/user"
)

func TestUserLifecycle(t *testing.T) {
	srv := apitest.New(t)
	driver := apitest.Driver(5, domain.SectorAgriculture)
	renamed := apitest.Driver(5, domain.SectorAgriculture)
	renamed.FullName = "João Lima"
	created := apitest.Driver(8, domain.SectorAgriculture)

	srv.Reply(fasthttp.MethodGet, "/users/", fasthttp.StatusOK, []*domain.User{apitest.User(1, domain.SectorAgriculture), driver})
	srv.Reply(fasthttp.MethodPost, "/users/", fasthttp.StatusCreated, created)
	srv.Reply(fasthttp.MethodPut, "/users/5", fasthttp.StatusOK, renamed)
	srv.Reply(fasthttp.MethodDelete, "/users/1", fasthttp.StatusNoContent, nil)
	notices := &usecase.Recorder{}
	store := user.New(rest.NewUserRepository(srv.Client()), notices, nil)
	ctx := context.Background()

	require.NoError(t, store.Fetch(ctx))
	_, err := store.Create(ctx, transport.UserCreateRequest{
		FullName: "Pedro", Email: "pedro@trucar.test", Password: "segredo1", Role: domain.RoleDriver,
	})
	require.NoError(t, err)
	name := "João Lima"
	_, err = store.Update(ctx, 5, transport.UserUpdateRequest{FullName: &name})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, 1))

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 8, items[0].ID)
	assert.Equal(t, "João Lima", items[1].FullName)
	assert.Len(t, notices.Notices(), 3)

	req, ok := srv.Last()
	require.True(t, ok)
	assert.Equal(t, "/users/1", req.Path)
}

func TestCreateUserValidatesRole(t *testing.T) {
	srv := apitest.New(t)
	store := user.New(rest.NewUserRepository(srv.Client()), nil, nil)

	_, err := store.Create(context.Background(), transport.UserCreateRequest{
		FullName: "X", Email: "x@trucar.test", Password: "segredo1", Role: "owner",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, srv.Requests())
}

func TestDeleteFailureShowsBackendDetail(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/users/", fasthttp.StatusOK, []*domain.User{apitest.User(1, domain.SectorServices)})
	srv.Reply(fasthttp.MethodDelete, "/users/1", fasthttp.StatusConflict, apitest.Detail("Usuário possui jornadas registradas."))
	notices := &usecase.Recorder{}
	store := user.New(rest.NewUserRepository(srv.Client()), notices, nil)
	ctx := context.Background()
	require.NoError(t, store.Fetch(ctx))

	assert.Error(t, store.Delete(ctx, 1))
	assert.Len(t, store.Items(), 1)
	notice, _ := notices.Last()
	assert.Equal(t, usecase.LevelNegative, notice.Level)
	assert.Equal(t, "Usuário possui jornadas registradas.", notice.Message)
}

func TestFetchStatsKeepsSelection(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/users/5/stats", fasthttp.StatusOK, json.RawMessage(`{
		"total_journeys": 12,
		"maintenance_requests_count": 2,
		"primary_metric_label": "Horas trabalhadas",
		"primary_metric_value": 310.5,
		"primary_metric_unit": "h",
		"performance_by_vehicle": [{"vehicle_info": "Trator JD 6110", "value": 310.5}]
	}`))
	srv.Reply(fasthttp.MethodGet, "/users/6/stats", fasthttp.StatusInternalServerError, apitest.Detail("boom"))
	store := user.New(rest.NewUserRepository(srv.Client()), nil, nil)
	ctx := context.Background()

	stats, err := store.FetchStats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalJourneys)
	assert.Equal(t, "h", stats.PrimaryMetricUnit)
	require.Len(t, stats.PerformanceByVehicle, 1)
	assert.Nil(t, stats.AvgKmPerLiter)

	_, err = store.FetchStats(ctx, 6)
	assert.Error(t, err)
	assert.Same(t, stats, store.SelectedStats())

	store.Reset()
	assert.Nil(t, store.SelectedStats())
}
