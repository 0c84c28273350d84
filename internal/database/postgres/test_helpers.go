package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HunterSystem_Go/internal/database"
	"github.com/osse101/HunterSystem_Go/internal/database/pgtest"
)

// setupTestPool returns a migrated pool on a fresh container
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := pgtest.ConnString(t)
	ctx := context.Background()

	if err := database.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	pool, err := database.NewPool(ctx, dsn, 5, time.Minute, 5*time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
