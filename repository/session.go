package repository

import "context"

// StateStore persists the client session as string values under well known keys.
// A missing key is reported through ok=false, never as an error.
type StateStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
