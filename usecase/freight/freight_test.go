package freight_test

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
	"github.com/fastygo/trucar/usecase/freight"
)

func orders() []domain.FreightOrder {
	return []domain.FreightOrder{
		{ID: 1, Status: domain.FreightPending, StopPoints: []domain.StopPoint{
			{ID: 10, SequenceOrder: 1, Type: domain.StopPickup, Status: domain.StopPending},
			{ID: 11, SequenceOrder: 2, Type: domain.StopDelivery, Status: domain.StopPending},
		}},
		{ID: 2, Status: domain.FreightDelivered},
		{ID: 3, Status: domain.FreightPending, Driver: &domain.User{ID: 8}},
	}
}

func newStore(t *testing.T) (*apitest.Server, *freight.Store, *usecase.Recorder) {
	t.Helper()
	srv := apitest.New(t)
	srv.Reply(fasthttp.MethodGet, "/freight-orders/", fasthttp.StatusOK, orders())
	notices := &usecase.Recorder{}
	store := freight.New(rest.NewFreightRepository(srv.Client()), notices, nil)
	require.NoError(t, store.Fetch(context.Background()))
	return srv, store, notices
}

func TestIllegalTransitionIsRejectedLocally(t *testing.T) {
	srv, store, notices := newStore(t)
	before := len(srv.Requests())

	status := domain.FreightInTransit
	_, err := store.Update(context.Background(), 2, transport.FreightOrderUpdateRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Len(t, srv.Requests(), before)

	notice, _ := notices.Last()
	assert.Equal(t, usecase.LevelNegative, notice.Level)
}

func TestLegalTransitionIsSent(t *testing.T) {
	srv, store, _ := newStore(t)
	srv.Reply(fasthttp.MethodPut, "/freight-orders/1", fasthttp.StatusOK, domain.FreightOrder{ID: 1, Status: domain.FreightInTransit})

	status := domain.FreightInTransit
	f, err := store.Update(context.Background(), 1, transport.FreightOrderUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.FreightInTransit, f.Status)

	cached, ok := store.Find(1)
	require.True(t, ok)
	assert.Equal(t, domain.FreightInTransit, cached.Status)
}

func TestClaimRequiresUnassignedPendingOrder(t *testing.T) {
	srv, store, _ := newStore(t)
	srv.Reply(fasthttp.MethodPost, "/freight-orders/1/claim", fasthttp.StatusOK,
		domain.FreightOrder{ID: 1, Status: domain.FreightPending, Driver: &domain.User{ID: 5}})
	ctx := context.Background()

	_, err := store.Claim(ctx, 3, 4)
	assert.ErrorIs(t, err, domain.ErrFreightNotClaimable)
	_, err = store.Claim(ctx, 2, 4)
	assert.ErrorIs(t, err, domain.ErrFreightNotClaimable)
	assert.Zero(t, srv.Count(fasthttp.MethodPost, "/freight-orders/3/claim"))

	f, err := store.Claim(ctx, 1, 4)
	require.NoError(t, err)
	assert.False(t, f.Claimable())

	var sent map[string]int
	last, _ := srv.Last()
	require.NoError(t, last.JSON(&sent))
	assert.Equal(t, 4, sent["vehicle_id"])
}

func TestCompleteStopUpdatesOwningOrder(t *testing.T) {
	srv, store, _ := newStore(t)
	srv.Reply(fasthttp.MethodPut, "/freight-orders/stop-points/10/complete", fasthttp.StatusOK,
		domain.StopPoint{ID: 10, SequenceOrder: 1, Type: domain.StopPickup, Status: domain.StopCompleted})

	_, err := store.CompleteStop(context.Background(), 10)
	require.NoError(t, err)

	order, ok := store.Find(1)
	require.True(t, ok)
	assert.Equal(t, domain.StopCompleted, order.StopPoints[0].Status)
	assert.Equal(t, 11, order.NextStop().ID)
}
