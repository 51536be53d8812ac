package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yigit/coursemanager/internal/app/migrations"
	"github.com/yigit/coursemanager/internal/app/repositories"
	"github.com/yigit/coursemanager/internal/config"
	"github.com/yigit/coursemanager/internal/pkg/logger"
)

// OpenStore connects to the configured backend, applies pending migrations
// and returns the entity store. Closing the store releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Info().Msg("Using in-memory store")
		return repositories.NewMemoryStore(), nil

	case config.DriverSQLite:
		database, err := NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Database.SQLitePath).Msg("Connected to SQLite")
		return migrateAndWrap(ctx, database, repositories.DialectSQLite, database.Close)

	case config.DriverPostgres:
		pg, err := NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("host", cfg.Database.Host).
			Str("database", cfg.Database.DBName).
			Msg("Connected to PostgreSQL")
		return migrateAndWrap(ctx, pg.DB, repositories.DialectPostgres, pg.Close)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func migrateAndWrap(ctx context.Context, database *sql.DB, dialect repositories.Dialect, closeFn func() error) (repositories.Store, error) {
	if err := migrations.NewMigrator(database, dialect).Migrate(ctx); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return &closingStore{Store: repositories.NewSQLStore(database, dialect), close: closeFn}, nil
}

// closingStore closes the owning connection rather than only the sql handle
type closingStore struct {
	repositories.Store
	close func() error
}

func (s *closingStore) Close() error {
	return s.close()
}
