package repository

import (
	"context"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// SnapshotRepository loads and saves a hunter's whole snapshot.
//
// Load returns (nil, nil) when the user has no stored snapshot. A document that cannot
// be decoded is reported with an error wrapping domain.ErrMalformedSnapshot.
//
// Save is optimistic: the stored revision must be exactly snapshot.Revision-1 (or absent
// when snapshot.Revision is 1), otherwise it returns domain.ErrSnapshotConflict.
// Failures of the underlying store wrap domain.ErrPersistenceUnavailable.
type SnapshotRepository interface {
	Load(ctx context.Context, userID string) (*domain.Snapshot, error)
	Save(ctx context.Context, userID string, snapshot domain.Snapshot) error
	ListUserIDs(ctx context.Context) ([]string, error)
}
