package rest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/trucar/api/transport"
	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/apitest"
	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
	"github.com/fastygo/trucar/repository/rest"
)

func newAPI(t *testing.T) (*apitest.Server, *apiclient.Client) {
	t.Helper()
	srv := apitest.New(t)
	client := apiclient.New(apiclient.Options{
		BaseURL: srv.BaseURL(),
		Timeout: 2 * time.Second,
		Dial:    srv.Dial,
	})
	return srv, client
}

func TestLoginAcceptsBothTokenShapes(t *testing.T) {
	ctx := context.Background()

	t.Run("nested", func(t *testing.T) {
		srv, client := newAPI(t)
		srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusOK,
			apitest.TokenBody("nested-token", apitest.User(1, domain.SectorFreight)))

		resp, err := rest.NewAuthRepository(client).Login(ctx, transport.LoginRequest{Username: "a@b.co", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, "nested-token", resp.Bearer())
		assert.Equal(t, domain.SectorFreight, resp.User.Sector())

		last, _ := srv.Last()
		assert.Equal(t, "application/x-www-form-urlencoded", last.ContentType)
	})

	t.Run("flat", func(t *testing.T) {
		srv, client := newAPI(t)
		srv.Reply(fasthttp.MethodPost, "/login/token", fasthttp.StatusOK, map[string]any{
			"access_token": "flat-token",
			"token_type":   "bearer",
			"user":         apitest.User(2, domain.SectorAgriculture),
		})

		resp, err := rest.NewAuthRepository(client).Login(ctx, transport.LoginRequest{Username: "a@b.co", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, "flat-token", resp.Bearer())
		assert.Equal(t, 2, resp.User.ID)
	})
}

func TestInvalidPayloadNeverReachesTheServer(t *testing.T) {
	srv, client := newAPI(t)
	ctx := context.Background()

	_, err := rest.NewAuthRepository(client).Login(ctx, transport.LoginRequest{Username: "not-an-email"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = rest.NewVehicleRepository(client).Create(ctx, transport.VehicleCreateRequest{Brand: "Volvo"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = rest.NewFreightRepository(client).Claim(ctx, 3, transport.FreightClaimRequest{})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = rest.NewDocumentRepository(client).Upload(ctx, transport.DocumentUpload{DocumentType: "CNH"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	assert.Empty(t, srv.Requests())
}

func TestImpersonateRejectsIncompleteResponse(t *testing.T) {
	srv, client := newAPI(t)
	srv.Reply(fasthttp.MethodPost, "/admin/users/7/impersonate", fasthttp.StatusOK, map[string]any{"access_token": "x"})

	_, err := rest.NewAdminRepository(client).Impersonate(context.Background(), 7)
	require.Error(t, err)

	last, _ := srv.Last()
	assert.Empty(t, last.Body, "action endpoints are called without a body")
}

func TestVehicleListSendsPagination(t *testing.T) {
	srv, client := newAPI(t)
	srv.Reply(fasthttp.MethodGet, "/vehicles/", fasthttp.StatusOK, map[string]any{
		"vehicles":    []domain.Vehicle{{ID: 1, Brand: "Volvo", Model: "FH", Status: domain.VehicleAvailable}},
		"total_items": 9,
	})

	page, err := rest.NewVehicleRepository(client).List(context.Background(), transport.VehicleFilter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 9, page.TotalItems)
	require.Len(t, page.Vehicles, 1)

	last, _ := srv.Last()
	assert.Equal(t, "page=2&rowsPerPage=8", last.Query)
}

func TestJourneyEndDecodesVehicle(t *testing.T) {
	srv, client := newAPI(t)
	srv.Reply(fasthttp.MethodPut, "/journeys/5/end", fasthttp.StatusOK, map[string]any{
		"journey": map[string]any{"id": 5, "is_active": false},
		"vehicle": map[string]any{"id": 1, "brand": "Volvo", "model": "FH", "status": domain.VehicleAvailable},
	})

	res, err := rest.NewJourneyRepository(client).End(context.Background(), 5, transport.JourneyEndRequest{EndMileage: 120})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Journey.ID)
	assert.Equal(t, domain.VehicleAvailable, res.Vehicle.Status)

	var sent map[string]any
	last, _ := srv.Last()
	require.NoError(t, last.JSON(&sent))
	assert.EqualValues(t, 120, sent["end_mileage"])
}

func TestDocumentUploadIsMultipart(t *testing.T) {
	srv, client := newAPI(t)
	srv.Reply(fasthttp.MethodPost, "/documents/", fasthttp.StatusCreated, map[string]any{"id": 4, "document_type": "CNH"})

	doc, err := rest.NewDocumentRepository(client).Upload(context.Background(), transport.DocumentUpload{
		DocumentType: "CNH",
		ExpiryDate:   "2027-01-31",
		DriverID:     3,
		FileName:     "cnh.pdf",
		File:         []byte("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, doc.ID)

	last, _ := srv.Last()
	assert.Contains(t, last.ContentType, "multipart/form-data")
}

func TestNestedPaths(t *testing.T) {
	srv, client := newAPI(t)
	srv.Reply(fasthttp.MethodGet, "/vehicles/3/tires/history", fasthttp.StatusOK, []domain.VehicleTire{})
	srv.Reply(fasthttp.MethodGet, "/vehicles/3/costs", fasthttp.StatusOK, []domain.VehicleCost{})
	srv.Reply(fasthttp.MethodPut, "/freight-orders/stop-points/8/complete", fasthttp.StatusOK, map[string]any{"id": 8})
	srv.Reply(fasthttp.MethodGet, "/maintenance/2/comments", fasthttp.StatusOK, []domain.MaintenanceComment{})
	ctx := context.Background()

	_, err := rest.NewTireRepository(client).History(ctx, 3)
	require.NoError(t, err)
	_, err = rest.NewCostRepository(client).ListByVehicle(ctx, 3)
	require.NoError(t, err)
	stop, err := rest.NewFreightRepository(client).CompleteStop(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, stop.ID)
	_, err = rest.NewMaintenanceRepository(client).Comments(ctx, 2)
	require.NoError(t, err)

	assert.Len(t, srv.Requests(), 4)
}
