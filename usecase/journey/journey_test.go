package journey_test

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
	"github.com/fastygo/trucar/usecase/journey"
	"github.com/fastygo/trucar/usecase/terminology"
	"github.com/fastygo/trucar/usecase/vehicle"
)

type currentUser struct{ user *domain.User }

func (c currentUser) User() *domain.User { return c.user }

type fixture struct {
	srv      *apitest.Server
	store    *journey.Store
	vehicles *vehicle.Store
	notices  *usecase.Recorder
}

func newFixture(t *testing.T, user *domain.User) *fixture {
	t.Helper()
	srv := apitest.New(t)
	client := srv.Client()
	terms := terminology.New()
	terms.SetSector(user.Sector())
	notices := &usecase.Recorder{}
	vehicles := vehicle.New(rest.NewVehicleRepository(client), nil, nil)
	store := journey.New(rest.NewJourneyRepository(client), currentUser{user}, terms, vehicles, notices, nil)
	return &fixture{srv: srv, store: store, vehicles: vehicles, notices: notices}
}

func activeJourney(id, driverID int) domain.Journey {
	return domain.Journey{
		ID:       id,
		IsActive: true,
		TripType: domain.JourneyFreeRoam,
		Driver:   &domain.User{ID: driverID},
		Vehicle:  &domain.Vehicle{ID: 1, Status: domain.VehicleInUse},
	}
}

func TestDerivedActiveJourneys(t *testing.T) {
	f := newFixture(t, apitest.Driver(5, domain.SectorFreight))
	finished := domain.Journey{ID: 1, Driver: &domain.User{ID: 5}}
	f.srv.Reply(fasthttp.MethodGet, "/journeys/", fasthttp.StatusOK, []domain.Journey{
		finished, activeJourney(2, 7), activeJourney(3, 5),
	})

	require.NoError(t, f.store.Fetch(context.Background(), transport.JourneyFilter{VehicleID: 1}))

	assert.Len(t, f.store.Active(), 2)
	mine, ok := f.store.CurrentUserActive()
	require.True(t, ok)
	assert.Equal(t, 3, mine.ID)

	last, _ := f.srv.Last()
	assert.Equal(t, "vehicle_id=1", last.Query)
}

func TestStartPrependsAndUsesSectorWording(t *testing.T) {
	f := newFixture(t, apitest.Driver(5, domain.SectorAgriculture))
	f.srv.Reply(fasthttp.MethodGet, "/journeys/", fasthttp.StatusOK, []domain.Journey{{ID: 1}})
	f.srv.Reply(fasthttp.MethodPost, "/journeys/start", fasthttp.StatusCreated, activeJourney(2, 5))
	ctx := context.Background()
	require.NoError(t, f.store.Fetch(ctx, transport.JourneyFilter{}))

	j, err := f.store.Start(ctx, transport.JourneyStartRequest{
		VehicleID:    1,
		StartMileage: 10,
		TripType:     domain.JourneyFreeRoam,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, j.ID)
	assert.Equal(t, 2, f.store.Items()[0].ID)

	notice, _ := f.notices.Last()
	assert.Equal(t, usecase.LevelPositive, notice.Level)
	assert.Equal(t, domain.StrategyFor(domain.SectorAgriculture).JourneyStartSuccessMessage, notice.Message)
}

func TestStartRequiresDestinationForRoutedTrips(t *testing.T) {
	f := newFixture(t, apitest.Driver(5, domain.SectorFreight))

	_, err := f.store.Start(context.Background(), transport.JourneyStartRequest{
		VehicleID: 1,
		TripType:  domain.JourneySpecificDestination,
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Empty(t, f.srv.Requests())
}

func TestEndReplacesJourneyAndReleasesVehicle(t *testing.T) {
	f := newFixture(t, apitest.Driver(5, domain.SectorFreight))
	f.srv.Reply(fasthttp.MethodGet, "/journeys/active", fasthttp.StatusOK, []domain.Journey{activeJourney(2, 5)})
	f.srv.Reply(fasthttp.MethodGet, "/vehicles/", fasthttp.StatusOK, map[string]any{
		"vehicles":    []domain.Vehicle{{ID: 1, Status: domain.VehicleInUse}},
		"total_items": 1,
	})
	ended := activeJourney(2, 5)
	ended.IsActive = false
	f.srv.Reply(fasthttp.MethodPut, "/journeys/2/end", fasthttp.StatusOK, map[string]any{
		"journey": ended,
		"vehicle": domain.Vehicle{ID: 1, Status: domain.VehicleAvailable},
	})
	ctx := context.Background()
	require.NoError(t, f.store.FetchActive(ctx))
	require.NoError(t, f.vehicles.Fetch(ctx, transport.VehicleFilter{}))

	v, err := f.store.End(ctx, 2, transport.JourneyEndRequest{EndMileage: 250})
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleAvailable, v.Status)

	assert.Empty(t, f.store.Active())
	_, ok := f.store.CurrentUserActive()
	assert.False(t, ok)
	require.Len(t, f.vehicles.Available(), 1)

	notice, _ := f.notices.Last()
	assert.Equal(t, domain.StrategyFor(domain.SectorFreight).JourneyEndSuccessMessage, notice.Message)
}

func TestDeleteRemovesLocally(t *testing.T) {
	f := newFixture(t, apitest.Driver(5, domain.SectorServices))
	f.srv.Reply(fasthttp.MethodGet, "/journeys/", fasthttp.StatusOK, []domain.Journey{{ID: 1}, {ID: 2}})
	f.srv.Reply(fasthttp.MethodDelete, "/journeys/1", fasthttp.StatusNoContent, nil)
	ctx := context.Background()
	require.NoError(t, f.store.Fetch(ctx, transport.JourneyFilter{}))

	require.NoError(t, f.store.Delete(ctx, 1))

	require.Len(t, f.store.Items(), 1)
	assert.Equal(t, 2, f.store.Items()[0].ID)
	notice, _ := f.notices.Last()
	assert.Equal(t, "Operação excluída com sucesso!", notice.Message)
}
