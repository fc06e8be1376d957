package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/trucar/domain"
	"github.com/fastygo/trucar/repository"
)

func setupTestRedis(t *testing.T) (repository.StateStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	return NewStateRepository(client, ""), mr
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := setupTestRedis(t)
	defer repo.Close()

	_, ok, err := repo.Get(ctx, domain.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, domain.KeyAccessToken, "tok"))
	assert.True(t, mr.Exists(DefaultPrefix+domain.KeyAccessToken))
	assert.Zero(t, mr.TTL(DefaultPrefix+domain.KeyAccessToken), "session keys never expire")

	v, ok, err := repo.Get(ctx, domain.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestStateRepositoryDeleteMany(t *testing.T) {
	ctx := context.Background()
	repo, mr := setupTestRedis(t)
	defer repo.Close()

	for _, k := range domain.SessionKeys {
		require.NoError(t, repo.Set(ctx, k, "x"))
	}
	require.NoError(t, repo.Set(ctx, "unrelated", "keep"))

	require.NoError(t, repo.Delete(ctx, domain.SessionKeys...))
	for _, k := range domain.SessionKeys {
		assert.False(t, mr.Exists(DefaultPrefix+k))
	}
	assert.True(t, mr.Exists(DefaultPrefix+"unrelated"))
	require.NoError(t, repo.Delete(ctx))
}

func TestStateRepositoryReportsConnectionErrors(t *testing.T) {
	repo, mr := setupTestRedis(t)
	defer repo.Close()
	mr.Close()

	_, _, err := repo.Get(context.Background(), domain.KeyUser)
	assert.Error(t, err)
}
