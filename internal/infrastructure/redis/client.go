package redis

import (
	"context"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/fastygo/trucar/internal/config"
)

// Options turns the configured URL into client options. REDIS_PASSWORD and
// REDIS_DB win over whatever the URL carries.
func Options(cfg config.RedisConfig, appName string) (*goRedis.Options, error) {
	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	if appName != "" {
		opts.ClientName = appName
	}
	// One CLI process issues a handful of sequential commands.
	opts.PoolSize = 2
	return opts, nil
}

// NewClient connects the session store and pings it within timeout.
func NewClient(ctx context.Context, cfg *config.Config) (*goRedis.Client, error) {
	opts, err := Options(cfg.Redis, cfg.AppName)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Context.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts.DialTimeout = timeout

	client := goRedis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
