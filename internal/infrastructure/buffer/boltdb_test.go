package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxSize int) *Store {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := New(db, "", maxSize)
	require.NoError(t, err)
	return store
}

func TestEnqueueOrdersByPriorityThenTime(t *testing.T) {
	store := newTestStore(t, 0)
	base := time.Now()

	require.NoError(t, store.Enqueue(Item{ID: "late", Entity: EntityFuelLog, Operation: OperationCreate, Priority: 3, Timestamp: base.Add(time.Second)}))
	require.NoError(t, store.Enqueue(Item{ID: "early", Entity: EntityFuelLog, Operation: OperationCreate, Priority: 3, Timestamp: base}))
	require.NoError(t, store.Enqueue(Item{ID: "urgent", Entity: EntityMaintenance, Operation: OperationCreate, Priority: 1, Timestamp: base.Add(time.Hour)}))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"urgent", "early", "late"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, "maintenance.create", items[0].Command())
}

func TestEnqueueNormalizesItem(t *testing.T) {
	store := newTestStore(t, 0)
	require.NoError(t, store.Enqueue(Item{Entity: EntityFuelLog, Operation: OperationCreate, Data: json.RawMessage(`{"liters":40}`)}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, 3, items[0].Priority)
	assert.False(t, items[0].Timestamp.IsZero())
	assert.JSONEq(t, `{"liters":40}`, string(items[0].Data))
}

func TestEnqueueRejectsWhenFull(t *testing.T) {
	store := newTestStore(t, 1)
	require.NoError(t, store.Enqueue(Item{Entity: EntityFuelLog, Operation: OperationCreate}))
	assert.ErrorIs(t, store.Enqueue(Item{Entity: EntityFuelLog, Operation: OperationCreate}), ErrFull)
}

func TestRequeueMovesItemBack(t *testing.T) {
	store := newTestStore(t, 0)
	base := time.Now().Add(-time.Minute)
	require.NoError(t, store.Enqueue(Item{ID: "a", Entity: EntityFuelLog, Operation: OperationCreate, Timestamp: base}))
	require.NoError(t, store.Enqueue(Item{ID: "b", Entity: EntityFuelLog, Operation: OperationCreate, Timestamp: base.Add(time.Second)}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	first := items[0]
	first.Retries++
	require.NoError(t, store.Requeue(first))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	items, err = store.GetBatch(10)
	require.NoError(t, err)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, 1, items[1].Retries)
}

func TestRemoveAndCleanup(t *testing.T) {
	store := newTestStore(t, 0)
	require.NoError(t, store.Enqueue(Item{ID: "old", Entity: EntityFuelLog, Operation: OperationCreate, Timestamp: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Item{ID: "new", Entity: EntityFuelLog, Operation: OperationCreate}))
	require.NoError(t, store.Enqueue(Item{ID: "gone", Entity: EntityFuelLog, Operation: OperationCreate}))

	require.NoError(t, store.Remove(Item{ID: "gone"}))

	removed, err := store.Cleanup(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].ID)
}
