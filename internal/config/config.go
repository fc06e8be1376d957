package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageBolt     = "bolt"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Outbox      OutboxConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type APIConfig struct {
	BaseURL         string
	MaxConnsPerHost int
	Breaker         BreakerConfig
	MonitorInterval time.Duration
}

type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

type StorageConfig struct {
	Driver   string
	BoltPath string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type OutboxConfig struct {
	Enabled      bool
	SyncInterval time.Duration
	MaxRetry     int
	MaxSize      int
	// MaxAge bounds how long an undelivered item is kept.
	MaxAge       time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults suitable for a local workstation.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "trucar"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:         strings.TrimRight(getString("TRUCAR_API_URL", "http://localhost:8000/api/v1"), "/"),
			MaxConnsPerHost: getInt("API_MAX_CONNS_PER_HOST", 16),
			Breaker: BreakerConfig{
				MaxRequests:  uint32(getInt("API_BREAKER_MAX_REQUESTS", 1)),
				Interval:     getDuration("API_BREAKER_INTERVAL", time.Minute),
				Timeout:      getDuration("API_BREAKER_TIMEOUT", 30*time.Second),
				FailureRatio: getFloat("API_BREAKER_FAILURE_RATIO", 0.6),
				MinRequests:  uint32(getInt("API_BREAKER_MIN_REQUESTS", 5)),
			},
			MonitorInterval: getDuration("MONITOR_INTERVAL_SECONDS", 15*time.Second),
		},
		Storage: StorageConfig{
			Driver:   strings.ToLower(getString("STORAGE_DRIVER", StorageBolt)),
			BoltPath: getString("BOLTDB_PATH", defaultBoltPath()),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "trucar_client"),
			User:            getString("DB_USER", "trucar"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 4),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Outbox: OutboxConfig{
			Enabled:      getBool("OUTBOX_ENABLED", true),
			SyncInterval: getDuration("SYNC_INTERVAL_SECONDS", 30*time.Second),
			MaxRetry:     getInt("MAX_RETRY_ATTEMPTS", 3),
			MaxSize:      getInt("OUTBOX_MAX_SIZE", 10_000),
			MaxAge:       getDuration("OUTBOX_MAX_AGE", 7*24*time.Hour),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 5*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "warn"),
			Encoding: getString("LOG_ENCODING", "console"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageBolt, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: TRUCAR_API_URL is empty")
	}
	return nil
}

func defaultBoltPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "./data/trucar.db"
	}
	return dir + string(os.PathSeparator) + "trucar" + string(os.PathSeparator) + "state.db"
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
