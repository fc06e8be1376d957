package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/trucar/repository"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type stateRepository struct {
	db        DB
	namespace string
	closer    func()
}

// NewStateRepository stores session keys in the client_state table under
// namespace, so several CLI profiles can share one database.
func NewStateRepository(db DB, namespace string, closer func()) repository.StateStore {
	if namespace == "" {
		namespace = "default"
	}
	return &stateRepository{db: db, namespace: namespace, closer: closer}
}

func (r *stateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `
	SELECT value
	FROM client_state
	WHERE namespace = $1 AND key = $2
	`
	var value string
	if err := r.db.QueryRow(ctx, query, r.namespace, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *stateRepository) Set(ctx context.Context, key, value string) error {
	const query = `
	INSERT INTO client_state (namespace, key, value, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (namespace, key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, r.namespace, key, value)
	return err
}

func (r *stateRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `
	DELETE FROM client_state
	WHERE namespace = $1 AND key = ANY($2)
	`
	_, err := r.db.Exec(ctx, query, r.namespace, keys)
	return err
}

func (r *stateRepository) Close() error {
	if r.closer != nil {
		r.closer()
	}
	return nil
}
