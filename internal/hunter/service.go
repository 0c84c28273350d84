package hunter

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/concurrency"
	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/repository"
)

// ErrShuttingDown is returned for actions started after Shutdown
var ErrShuttingDown = errors.New("hunter service is shutting down")

// Service defines the interface for hunter operations. Every operation is serialised
// per user and persists the resulting snapshot before it returns.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	AddXP(ctx context.Context, userID string, amount int64, source string) (*ActionResult, error)
	ClaimQuest(ctx context.Context, userID string, kind domain.RewardKind, questID int) (*ActionResult, error)
	Contribute(ctx context.Context, userID string, kind domain.RewardKind, questID int, amount int) (*ActionResult, error)
	ClaimDailyReward(ctx context.Context, userID string, day int) (*ActionResult, error)
	ClaimToday(ctx context.Context, userID string) (*ActionResult, error)
	UpgradeSkill(ctx context.Context, userID string, skillID int) (*ActionResult, error)
	EquipTitle(ctx context.Context, userID string, titleID int) (*ActionResult, error)
	ReconcileAll(ctx context.Context) (int, error)
	Shutdown(ctx context.Context) error
}

// EventPublisher defines the interface for publishing events with retry
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Options tunes the service. Zero values fall back to the package defaults.
type Options struct {
	Location             *time.Location
	ResetPolicy          ledger.ResetPolicy
	SaveRetries          int
	CacheSize            int
	CacheTTL             time.Duration
	ReconcileConcurrency int
	Now                  func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.ResetPolicy == "" {
		o.ResetPolicy = ledger.ResetPolicyCalendar
	}
	if o.SaveRetries < 1 {
		o.SaveRetries = DefaultSaveRetries
	}
	if o.CacheSize <= 0 {
		o.CacheSize = DefaultCacheSize
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.ReconcileConcurrency <= 0 {
		o.ReconcileConcurrency = DefaultReconcileConcurrency
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Profile is the read view of a hunter
type Profile struct {
	UserID         string          `json:"user_id"`
	Snapshot       domain.Snapshot `json:"snapshot"`
	Rank           domain.RankInfo `json:"rank"`
	XPPercent      int             `json:"xp_percent"`
	Today          int             `json:"today"`
	NextDailyReset time.Time       `json:"next_daily_reset"`
	Detached       bool            `json:"detached"`
}

// ActionResult is the outcome of a mutating operation
type ActionResult struct {
	Profile      *Profile               `json:"profile"`
	XPAwarded    int64                  `json:"xp_awarded"`
	LevelUp      *domain.AddXPResult    `json:"level_up,omitempty"`
	Achievements []string               `json:"achievements_unlocked,omitempty"`
	Quest        *domain.RewardInstance `json:"quest,omitempty"`
	Day          *ledger.DayClaim       `json:"day,omitempty"`
	LedgerReset  bool                   `json:"ledger_reset,omitempty"`
}

// service implements the Service interface
type service struct {
	repo      repository.SnapshotRepository
	publisher EventPublisher
	seed      *Seed
	opts      Options
	locks     *concurrency.LockManager
	cache     *sessionCache

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewService creates a hunter service. publisher may be nil when nothing listens for events.
func NewService(repo repository.SnapshotRepository, publisher EventPublisher, seed *Seed, opts Options) (Service, error) {
	if seed == nil {
		seed = DefaultSeed()
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	return &service{
		repo:      repo,
		publisher: publisher,
		seed:      seed,
		opts:      opts,
		locks:     concurrency.NewLockManager(),
		cache:     newSessionCache(opts.CacheSize, opts.CacheTTL),
	}, nil
}

// Shutdown stops accepting actions and waits for in-flight ones to finish
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// begin registers an in-flight action
func (s *service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrShuttingDown
	}
	s.wg.Add(1)
	return nil
}

// now returns the current time in the configured zone
func (s *service) now() time.Time {
	return s.opts.Now().In(s.opts.Location)
}
