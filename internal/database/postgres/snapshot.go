package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// SnapshotRepository stores hunter snapshots as JSONB documents, one row per user
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a SnapshotRepository on an open pool
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load returns the stored snapshot, or nil when the user has none
func (r *SnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	var (
		revision int64
		document []byte
	)
	err := r.db.QueryRow(ctx, queryLoadSnapshot, userID).Scan(&revision, &document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", ErrMsgFailedToLoadSnapshot, domain.ErrPersistenceUnavailable, err)
	}

	snapshot, err := domain.DecodeSnapshot(document)
	if err != nil {
		return nil, domain.NewMalformedSnapshotError(userID, revision, err)
	}
	// the row's revision column is authoritative over the document copy
	snapshot.Revision = revision
	return snapshot, nil
}

// Save writes the snapshot if the stored revision is exactly one behind it
func (r *SnapshotRepository) Save(ctx context.Context, userID string, snapshot domain.Snapshot) error {
	if snapshot.Revision < 1 {
		return fmt.Errorf("%w: revision must be positive, got %d", domain.ErrInvalidInput, snapshot.Revision)
	}

	document, err := snapshot.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSnapshot, err)
	}

	var query string
	args := []any{userID, snapshot.Revision, document, snapshot.UpdatedAt}
	if snapshot.Revision == 1 {
		query = queryInsertSnapshot
	} else {
		query = queryUpdateSnapshot
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", ErrMsgFailedToSaveSnapshot, domain.ErrPersistenceUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s at revision %d", domain.ErrSnapshotConflict, userID, snapshot.Revision)
	}
	return nil
}

// ListUserIDs returns every user with a stored snapshot
func (r *SnapshotRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, queryListSnapshotUsers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ErrMsgFailedToListSnapshots, domain.ErrPersistenceUnavailable, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ErrMsgFailedToListSnapshots, domain.ErrPersistenceUnavailable, err)
	}
	return ids, nil
}
