package redis

import (
	"context"
	"errors"
	"fmt"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/trucar/repository"
)

// DefaultPrefix namespaces session keys in a shared Redis.
const DefaultPrefix = "trucar:state:"

type stateRepository struct {
	client *redislib.Client
	prefix string
}

// NewStateRepository creates a Redis-backed session store. Keys do not expire:
// the backend decides when a token stops being valid.
func NewStateRepository(client *redislib.Client, prefix string) repository.StateStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &stateRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *stateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return result, true, nil
}

func (r *stateRepository) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *stateRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...).Err()
}

func (r *stateRepository) Close() error {
	return r.client.Close()
}

func (r *stateRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
