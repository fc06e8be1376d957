package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/internal/infrastructure/buffer"
	"github.com/fastygo/trucar/usecase"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type staticHealth bool

func (h staticHealth) IsOnline() bool { return bool(h) }

func newStore(t *testing.T) *buffer.Store {
	t.Helper()
	db, err := buffer.OpenDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store, err := buffer.New(db, "", 0)
	require.NoError(t, err)
	return store
}

func TestDrainReplaysThroughCommands(t *testing.T) {
	store := newStore(t)
	d := usecase.NewDispatcher()
	var replayed []string
	d.RegisterCommand("fuel_log.create", func(_ context.Context, payload json.RawMessage) error {
		replayed = append(replayed, string(payload))
		return nil
	})

	bp := NewBufferProcessor(store, staticHealth(true), d, nil, ProcessorConfig{})
	bridge := NewBufferBridge(bp, func() int { return 7 })
	require.NoError(t, bridge.Defer(context.Background(), buffer.EntityFuelLog, buffer.OperationCreate, map[string]int{"vehicle_id": 1}))

	items, err := bp.Pending(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].UserID)

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DrainReport{Sent: 1}, report)
	assert.Equal(t, []string{`{"vehicle_id":1}`}, replayed)
	assert.Zero(t, bp.Size())
}

func TestDrainSkipsWhileOffline(t *testing.T) {
	store := newStore(t)
	bp := NewBufferProcessor(store, staticHealth(false), usecase.NewDispatcher(), nil, ProcessorConfig{})
	require.NoError(t, bp.Enqueue(buffer.Item{Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate}))

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 1, bp.Size())
}

func TestDrainDropsAfterRetryLimit(t *testing.T) {
	store := newStore(t)
	d := usecase.NewDispatcher()
	d.RegisterCommand("maintenance.create", func(context.Context, json.RawMessage) error {
		return domain.NewError(domain.ErrCodeInvalid, "vehicle_id: not found")
	})
	bp := NewBufferProcessor(store, nil, d, nil, ProcessorConfig{MaxRetries: 2})
	require.NoError(t, bp.Enqueue(buffer.Item{Entity: buffer.EntityMaintenance, Operation: buffer.OperationCreate}))

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Requeued)

	items, err := bp.Pending(1)
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Retries)
	assert.Equal(t, "vehicle_id: not found", items[0].LastError)

	report, err = bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Dropped)
	assert.Zero(t, bp.Size())
}

func TestDrainStopsOnTransportError(t *testing.T) {
	store := newStore(t)
	d := usecase.NewDispatcher()
	calls := 0
	d.RegisterCommand("fuel_log.create", func(context.Context, json.RawMessage) error {
		calls++
		return domain.WrapError(domain.ErrCodeTransport, "POST /fuel-logs/ failed", errors.New("dial tcp: refused"))
	})
	bp := NewBufferProcessor(store, nil, d, nil, ProcessorConfig{MaxRetries: 5})
	for i := 0; i < 3; i++ {
		require.NoError(t, bp.Enqueue(buffer.Item{Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate}))
	}

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, report.Interrupted)
	assert.Zero(t, report.Requeued)
	assert.Equal(t, 3, bp.Size())

	items, err := bp.Pending(10)
	require.NoError(t, err)
	for _, item := range items {
		assert.Zero(t, item.Retries)
	}
}

func TestDrainUnauthorizedKeepsRetryBudget(t *testing.T) {
	store := newStore(t)
	d := usecase.NewDispatcher()
	calls := 0
	d.RegisterCommand("fuel_log.create", func(context.Context, json.RawMessage) error {
		calls++
		return domain.NewError(domain.ErrCodeUnauthorized, "token expired")
	})
	bp := NewBufferProcessor(store, nil, d, nil, ProcessorConfig{
		MaxRetries:  3,
		CurrentUser: func() int { return 7 },
	})
	require.NoError(t, bp.Enqueue(buffer.Item{UserID: 7, Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate}))
	require.NoError(t, bp.Enqueue(buffer.Item{UserID: 7, Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate}))

	for pass := 0; pass < 4; pass++ {
		report, err := bp.Drain(context.Background())
		require.NoError(t, err)
		assert.True(t, report.Interrupted)
		assert.Zero(t, report.Dropped)
	}
	assert.Equal(t, 4, calls)
	assert.Equal(t, 2, bp.Size())

	items, err := bp.Pending(10)
	require.NoError(t, err)
	for _, item := range items {
		assert.Zero(t, item.Retries)
		assert.Empty(t, item.LastError)
	}
}

func TestDrainHoldsItemsOfOtherUsers(t *testing.T) {
	store := newStore(t)
	d := usecase.NewDispatcher()
	var replayed []string
	d.RegisterCommand("fuel_log.create", func(_ context.Context, payload json.RawMessage) error {
		replayed = append(replayed, string(payload))
		return nil
	})
	bp := NewBufferProcessor(store, nil, d, nil, ProcessorConfig{
		MaxRetries:  1,
		CurrentUser: func() int { return 7 },
	})
	require.NoError(t, bp.Enqueue(buffer.Item{UserID: 9, Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate, Data: json.RawMessage(`{"owner":9}`)}))
	require.NoError(t, bp.Enqueue(buffer.Item{UserID: 7, Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate, Data: json.RawMessage(`{"owner":7}`)}))

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DrainReport{Sent: 1, Held: 1}, report)
	assert.Equal(t, []string{`{"owner":7}`}, replayed)

	items, err := bp.Pending(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].UserID)
	assert.Zero(t, items[0].Retries)
}

func TestDrainSkipsWithoutSession(t *testing.T) {
	store := newStore(t)
	d := usecase.NewDispatcher()
	d.RegisterCommand("fuel_log.create", func(context.Context, json.RawMessage) error {
		t.Fatal("replayed without a session")
		return nil
	})
	bp := NewBufferProcessor(store, staticHealth(true), d, nil, ProcessorConfig{
		CurrentUser: func() int { return 0 },
	})
	require.NoError(t, bp.Enqueue(buffer.Item{UserID: 7, Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate}))

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, 1, bp.Size())
}

func TestDrainExpiresOldItems(t *testing.T) {
	store := newStore(t)
	bp := NewBufferProcessor(store, staticHealth(false), usecase.NewDispatcher(), nil, ProcessorConfig{MaxAge: time.Hour})
	require.NoError(t, bp.Enqueue(buffer.Item{Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate, Timestamp: time.Now().Add(-2 * time.Hour)}))
	require.NoError(t, bp.Enqueue(buffer.Item{Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate, Timestamp: time.Now().Add(-3 * time.Hour)}))
	require.NoError(t, bp.Enqueue(buffer.Item{Entity: buffer.EntityFuelLog, Operation: buffer.OperationCreate}))

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Expired)
	assert.True(t, report.Skipped)
	assert.Equal(t, 1, bp.Size())
}

func TestUnknownCommandCountsAsFailure(t *testing.T) {
	store := newStore(t)
	bp := NewBufferProcessor(store, nil, usecase.NewDispatcher(), nil, ProcessorConfig{MaxRetries: 1})
	require.NoError(t, bp.Enqueue(buffer.Item{Entity: "tire", Operation: buffer.OperationCreate}))

	report, err := bp.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Dropped)
}

func TestSchedulerStartStop(t *testing.T) {
	store := newStore(t)
	bp := NewBufferProcessor(store, nil, usecase.NewDispatcher(), nil, ProcessorConfig{Interval: time.Second})
	bp.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	bp.Stop(ctx)
}
