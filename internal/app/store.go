package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/roster-service/internal/api/http/handlers"
	"github.com/spec-kit/roster-service/internal/config"
	"github.com/spec-kit/roster-service/internal/persistence"
	"github.com/spec-kit/roster-service/internal/repository"
	"github.com/spec-kit/roster-service/internal/repository/sqlite"
)

// Store is an opened data store for the configured driver.
type Store struct {
	Driver string
	Repos  repository.Repositories
	Probe  handlers.Pinger
	close  func()
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// OpenStore connects to the configured driver. With migrate set the embedded
// migrations run before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, migrate bool) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if migrate {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return &Store{
			Driver: config.DriverPostgres,
			Repos:  repository.NewPostgresRepositories(pg.PoolHandle()),
			Probe:  pg,
			close:  pg.Close,
		}, nil

	case config.DriverSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if migrate {
			if err := persistence.RunSQLiteMigrations(ctx, db.DB, logger); err != nil {
				db.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return &Store{
			Driver: config.DriverSQLite,
			Repos:  sqlite.NewRepositories(db.DB),
			Probe:  db,
			close:  db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// ShouldMigrate reports whether the configured driver runs migrations at boot.
func ShouldMigrate(cfg *config.Config) bool {
	if cfg.Storage.Driver == config.DriverPostgres {
		return cfg.Postgres.RunMigrations
	}
	return cfg.SQLite.RunMigrations
}
