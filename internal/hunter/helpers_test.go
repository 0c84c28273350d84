package hunter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HunterSystem_Go/internal/database/memory"
	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/repository"
)

// sunday is 2026-10-18, the last slot of ISO week 2026-W42
var sunday = time.Date(2026, 10, 18, 20, 30, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) ofType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []event.Event
	for _, evt := range p.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// MockSnapshotRepository is a testify mock of repository.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, userID)
	snapshot, _ := args.Get(0).(*domain.Snapshot)
	return snapshot, args.Error(1)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, userID string, snapshot domain.Snapshot) error {
	args := m.Called(ctx, userID, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// flakyRepository is an in-memory store that can be switched off
type flakyRepository struct {
	*memory.SnapshotRepository
	down atomic.Bool
}

func newFlakyRepository() *flakyRepository {
	return &flakyRepository{SnapshotRepository: memory.NewSnapshotRepository()}
}

func (r *flakyRepository) unavailable() error {
	return fmt.Errorf("%w: connection refused", domain.ErrPersistenceUnavailable)
}

func (r *flakyRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if r.down.Load() {
		return nil, r.unavailable()
	}
	return r.SnapshotRepository.Load(ctx, userID)
}

func (r *flakyRepository) Save(ctx context.Context, userID string, snapshot domain.Snapshot) error {
	if r.down.Load() {
		return r.unavailable()
	}
	return r.SnapshotRepository.Save(ctx, userID, snapshot)
}

func (r *flakyRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	if r.down.Load() {
		return nil, r.unavailable()
	}
	return r.SnapshotRepository.ListUserIDs(ctx)
}

type testService struct {
	Service
	publisher *recordingPublisher
	clock     *testClock
}

func newTestService(t *testing.T, repo repository.SnapshotRepository, seed *Seed) *testService {
	t.Helper()
	return newTestServiceWithPolicy(t, repo, seed, ledger.ResetPolicyCalendar)
}

func newTestServiceWithPolicy(t *testing.T, repo repository.SnapshotRepository, seed *Seed, policy ledger.ResetPolicy) *testService {
	t.Helper()

	clock := newTestClock(sunday)
	publisher := &recordingPublisher{}
	svc, err := NewService(repo, publisher, seed, Options{
		Location:    time.UTC,
		ResetPolicy: policy,
		CacheSize:   100,
		CacheTTL:    time.Hour,
		Now:         clock.Now,
	})
	require.NoError(t, err)

	return &testService{Service: svc, publisher: publisher, clock: clock}
}

func findQuest(t *testing.T, p *Profile, kind domain.RewardKind, id int) domain.RewardInstance {
	t.Helper()
	inst, err := ledger.Find(p.Snapshot.Ledger, kind, id)
	require.NoError(t, err)
	return inst
}
