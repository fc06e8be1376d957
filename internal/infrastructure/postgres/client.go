package postgres

import (
	"context"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/config"
)

// DSN returns DATABASE_URL when set, otherwise a URL assembled from the
// discrete settings with the credentials escaped.
func DSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   "/" + cfg.Name,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
	}
	return u.String()
}

// NewPool opens the pool that backs the session state store. Connections are
// tagged with the application name so they can be told apart in
// pg_stat_activity, and the pool is pinged within the request timeout.
func NewPool(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db := cfg.Database

	pgxCfg, err := pgxpool.ParseConfig(DSN(db))
	if err != nil {
		return nil, err
	}
	if cfg.AppName != "" {
		pgxCfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if db.MaxOpenConns > 0 {
		pgxCfg.MaxConns = int32(db.MaxOpenConns)
	}
	if db.MaxConnLifetime > 0 {
		pgxCfg.MaxConnLifetime = db.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Context.RequestTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Debug("session store connected",
		zap.String("driver", config.StoragePostgres),
		zap.String("host", pgxCfg.ConnConfig.Host),
		zap.String("db", pgxCfg.ConnConfig.Database))
	return pool, nil
}

// Close releases the pool.
func Close(pool *pgxpool.Pool, logger *zap.Logger) {
	if pool == nil {
		return
	}
	pool.Close()
	if logger != nil {
		logger.Debug("session store disconnected", zap.String("driver", config.StoragePostgres))
	}
}
