package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/osse101/HunterSystem_Go/internal/config"
	"github.com/osse101/HunterSystem_Go/internal/database"
	"github.com/osse101/HunterSystem_Go/internal/database/memory"
	"github.com/osse101/HunterSystem_Go/internal/database/postgres"
	"github.com/osse101/HunterSystem_Go/internal/database/sqlite"
	"github.com/osse101/HunterSystem_Go/internal/handler"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/repository"
)

// Store bundles the snapshot repository selected by STORAGE_DRIVER with its
// health probe and its cleanup.
type Store struct {
	Snapshots repository.SnapshotRepository
	Health    handler.Pinger
	Close     func() error
}

// InitializeStore opens the configured snapshot store, applying migrations where the
// driver needs them.
func InitializeStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	var store *Store

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		dsn := cfg.GetDBConnString()
		if err := database.RunMigrations(ctx, dsn); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		pool, err := database.NewPool(ctx, dsn, cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectStore, err)
		}
		store = &Store{
			Snapshots: postgres.NewSnapshotRepository(pool),
			Health:    pool,
			Close:     func() error { pool.Close(); return nil },
		}

	case config.StorageDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectStore, err)
		}
		store = &Store{Snapshots: db, Health: db, Close: db.Close}

	default:
		repo := memory.NewSnapshotRepository()
		store = &Store{Snapshots: repo, Health: repo, Close: func() error { return nil }}
	}

	slog.Info(LogMsgStoreInitialized, "driver", cfg.StorageDriver)
	return store, nil
}

// LoadSeed reads the hunter seed from cfg.SeedPath. A missing file falls back to the
// built-in seed; an invalid one is an error.
func LoadSeed(cfg *config.Config) (*hunter.Seed, error) {
	seed, err := hunter.LoadSeed(cfg.SeedPath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn(LogMsgSeedMissing, "path", cfg.SeedPath)
		return hunter.DefaultSeed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}

	slog.Info(LogMsgSeedLoaded,
		"path", cfg.SeedPath,
		"daily_quests", len(seed.DailyQuests),
		"weekly_quests", len(seed.WeeklyQuests),
		"achievements", len(seed.Achievements))
	return seed, nil
}
