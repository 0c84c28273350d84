// Package sqlite stores hunter snapshots in a local SQLite file. It backs the
// single-user CLI and small self-hosted deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/osse101/HunterSystem_Go/internal/database"
	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/repository"
)

const (
	queryLoadSnapshot = `SELECT revision, document FROM hunter_snapshots WHERE user_id = ?`

	queryInsertSnapshot = `
		INSERT INTO hunter_snapshots (user_id, revision, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`

	queryUpdateSnapshot = `
		UPDATE hunter_snapshots
		SET revision = ?, document = ?, updated_at = ?
		WHERE user_id = ? AND revision = ?`

	queryListSnapshotUsers = `SELECT user_id FROM hunter_snapshots ORDER BY user_id`
)

var _ repository.SnapshotRepository = (*Store)(nil)

// Store is a SnapshotRepository backed by a SQLite database file
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// a single writer keeps the revision check race free within the process
	db.SetMaxOpenConns(1)

	if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load returns the stored snapshot, or nil when the user has none
func (s *Store) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	var (
		revision int64
		document string
	)
	err := s.db.QueryRowContext(ctx, queryLoadSnapshot, userID).Scan(&revision, &document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w: %w", domain.ErrPersistenceUnavailable, err)
	}

	snapshot, err := domain.DecodeSnapshot([]byte(document))
	if err != nil {
		return nil, domain.NewMalformedSnapshotError(userID, revision, err)
	}
	snapshot.Revision = revision
	return snapshot, nil
}

// Save writes the snapshot if the stored revision is exactly one behind it
func (s *Store) Save(ctx context.Context, userID string, snapshot domain.Snapshot) error {
	if snapshot.Revision < 1 {
		return fmt.Errorf("%w: revision must be positive, got %d", domain.ErrInvalidInput, snapshot.Revision)
	}

	document, err := snapshot.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	updatedAt := snapshot.UpdatedAt.UTC().Format(time.RFC3339Nano)

	var res sql.Result
	if snapshot.Revision == 1 {
		res, err = s.db.ExecContext(ctx, queryInsertSnapshot, userID, snapshot.Revision, string(document), updatedAt)
	} else {
		res, err = s.db.ExecContext(ctx, queryUpdateSnapshot, snapshot.Revision, string(document), updatedAt, userID, snapshot.Revision-1)
	}
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w: %w", domain.ErrPersistenceUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w: %w", domain.ErrPersistenceUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s at revision %d", domain.ErrSnapshotConflict, userID, snapshot.Revision)
	}
	return nil
}

// ListUserIDs returns every user with a stored snapshot
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, queryListSnapshotUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot users: %w: %w", domain.ErrPersistenceUnavailable, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot user: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshot users: %w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return ids, nil
}
