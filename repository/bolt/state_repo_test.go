package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/trucar/domain"
)

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "state.db"), 0o600, &bolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewStateRepository(openTestDB(t))
	require.NoError(t, err)

	_, ok, err := repo.Get(ctx, domain.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, domain.KeyAccessToken, "tok"))
	require.NoError(t, repo.Set(ctx, domain.KeyUser, `{"id":1}`))

	v, ok, err := repo.Get(ctx, domain.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, repo.Delete(ctx, domain.SessionKeys...))
	_, ok, _ = repo.Get(ctx, domain.KeyUser)
	assert.False(t, ok)
}

func TestStateRepositorySurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	repo, err := NewStateRepository(db)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, domain.KeyAccessToken, "persisted"))
	require.NoError(t, db.Close())

	db, err = bolt.Open(path, 0o600, nil)
	require.NoError(t, err)
	defer db.Close()
	repo, err = NewStateRepository(db)
	require.NoError(t, err)

	v, ok, err := repo.Get(ctx, domain.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", v)
}

func TestStateRepositoryHonoursCancelledContext(t *testing.T) {
	repo, err := NewStateRepository(openTestDB(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Set(ctx, "k", "v"), context.Canceled)
}
