// Package memory provides an in-process SnapshotRepository for tests and development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// SnapshotRepository keeps encoded snapshot documents in a map. Documents are stored
// encoded so that callers never share memory with the store.
type SnapshotRepository struct {
	mu   sync.RWMutex
	docs map[string]stored
}

type stored struct {
	revision int64
	document []byte
}

// NewSnapshotRepository creates an empty repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{docs: make(map[string]stored)}
}

// Load returns the stored snapshot, or nil when the user has none
func (r *SnapshotRepository) Load(_ context.Context, userID string) (*domain.Snapshot, error) {
	r.mu.RLock()
	doc, ok := r.docs[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	snapshot, err := domain.DecodeSnapshot(doc.document)
	if err != nil {
		return nil, domain.NewMalformedSnapshotError(userID, doc.revision, err)
	}
	snapshot.Revision = doc.revision
	return snapshot, nil
}

// Save writes the snapshot if the stored revision is exactly one behind it
func (r *SnapshotRepository) Save(_ context.Context, userID string, snapshot domain.Snapshot) error {
	if snapshot.Revision < 1 {
		return fmt.Errorf("%w: revision must be positive, got %d", domain.ErrInvalidInput, snapshot.Revision)
	}
	document, err := snapshot.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.docs[userID].revision
	if current != snapshot.Revision-1 {
		return fmt.Errorf("%w: user %s at revision %d, stored %d", domain.ErrSnapshotConflict, userID, snapshot.Revision, current)
	}
	r.docs[userID] = stored{revision: snapshot.Revision, document: document}
	return nil
}

// ListUserIDs returns every user with a stored snapshot
func (r *SnapshotRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Put stores a raw document, bypassing the revision check
func (r *SnapshotRepository) Put(userID string, revision int64, document []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[userID] = stored{revision: revision, document: append([]byte(nil), document...)}
}

// Ping always succeeds; the store lives in process
func (r *SnapshotRepository) Ping(context.Context) error {
	return nil
}
