package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fastygo/trucar/internal/config"
)

const migrationsTable = "trucar_schema_migrations"

// migrateLogger routes golang-migrate output to zap at debug level.
type migrateLogger struct {
	logger *zap.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger.Core().Enabled(zap.DebugLevel)
}

// RunMigrations brings the client_state schema up to date. It is a no-op unless
// migrations are enabled and the session store is postgres.
func RunMigrations(cfg *config.Config, logger *zap.Logger) error {
	if cfg == nil || !cfg.Migrations.Enabled || cfg.Storage.Driver != config.StoragePostgres {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("postgres", DSN(cfg.Database))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := pgmigrate.WithInstance(sqlDB, &pgmigrate.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return err
	}

	source := "file://" + filepath.ToSlash(cfg.Migrations.Path)
	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return err
	}
	defer m.Close()
	m.Log = migrateLogger{logger: logger}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if dirty {
		return fmt.Errorf("client_state schema is dirty at version %d", version)
	}
	logger.Debug("client_state schema ready", zap.Uint("version", version))
	return nil
}
