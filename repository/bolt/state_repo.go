package bolt

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/trucar/repository"
)

const defaultBucket = "session"

type stateRepository struct {
	db     *bolt.DB
	bucket []byte
}

// NewStateRepository stores session keys in a bucket of db. The caller keeps
// ownership of db; Close is a no-op.
func NewStateRepository(db *bolt.DB) (repository.StateStore, error) {
	bucket := []byte(defaultBucket)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		return nil, err
	}
	return &stateRepository{db: db, bucket: bucket}, nil
}

func (r *stateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		found bool
	)
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(r.bucket).Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	return value, found, err
}

func (r *stateRepository) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(key), []byte(value))
	})
}

func (r *stateRepository) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *stateRepository) Close() error {
	return nil
}
