package hunter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/logger"
	"github.com/osse101/HunterSystem_Go/internal/metrics"
	"github.com/osse101/HunterSystem_Go/internal/progression"
)

// effects collects what an action did besides changing the snapshot
type effects struct {
	userID       string
	now          time.Time
	source       string
	xpAwarded    int64
	reset        bool
	levelUp      *domain.AddXPResult
	achievements []string
	quest        *domain.RewardInstance
	day          *ledger.DayClaim
	events       []event.Event
}

// mutation changes a working copy of the snapshot. Returning an error discards the copy.
type mutation func(snap *domain.Snapshot, fx *effects) error

// run executes one action for a user: load, reconcile, mutate, save, publish.
// A nil mutation is a read that only persists when reconciliation reset the ledger.
func (s *service) run(ctx context.Context, userID string, fn mutation) (*ActionResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.wg.Done()

	ctx = logger.WithUserID(ctx, userID)

	var result *ActionResult
	err := s.locks.WithLock(userID, func() error {
		var err error
		result, err = s.runLocked(ctx, userID, fn)
		return err
	})
	return result, err
}

func (s *service) runLocked(ctx context.Context, userID string, fn mutation) (*ActionResult, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; ; attempt++ {
		sess, err := s.session(ctx, userID)
		if err != nil {
			return nil, err
		}

		fx := &effects{userID: userID, now: s.now()}
		working := sess.snapshot.Clone()
		s.prepare(ctx, &working, fx)

		if fn != nil {
			if err := fn(&working, fx); err != nil {
				return nil, err
			}
		}
		s.celebrate(sess.snapshot.UserData, working.UserData, fx)

		next := &session{snapshot: working, storedRevision: sess.storedRevision, detached: sess.detached}
		if fn == nil && !fx.reset {
			s.cache.Set(userID, next)
			return s.result(userID, next, fx), nil
		}

		next.snapshot.Version = domain.SnapshotSchemaVersion
		next.snapshot.Revision = sess.storedRevision + 1
		next.snapshot.UpdatedAt = fx.now

		if !sess.detached {
			err := s.repo.Save(ctx, userID, next.snapshot)
			switch {
			case err == nil:
				metrics.SnapshotSaves.WithLabelValues(metrics.ResultOK).Inc()
				next.storedRevision = next.snapshot.Revision
			case errors.Is(err, domain.ErrSnapshotConflict):
				metrics.SnapshotSaves.WithLabelValues(metrics.ResultConflict).Inc()
				s.cache.Invalidate(userID)
				if attempt < s.opts.SaveRetries {
					log.Info(LogMsgSnapshotConflict, "attempt", attempt, "revision", next.snapshot.Revision)
					continue
				}
				log.Warn(LogMsgConflictsExhausted, "attempts", attempt)
				return nil, err
			default:
				metrics.SnapshotSaves.WithLabelValues(metrics.ResultError).Inc()
				log.Warn(LogMsgSnapshotSaveFailed, "revision", next.snapshot.Revision, "error", err)
			}
		}

		s.cache.Set(userID, next)
		if fx.xpAwarded > 0 {
			metrics.XPAwarded.WithLabelValues(fx.source).Add(float64(fx.xpAwarded))
		}
		s.publish(ctx, fx.events)
		return s.result(userID, next, fx), nil
	}
}

// session returns the user's cached session, loading it from the store when needed.
// Detached sessions retry the load on every call until the store answers.
func (s *service) session(ctx context.Context, userID string) (*session, error) {
	cached, ok := s.cache.Get(userID)
	if ok && !cached.detached {
		return cached, nil
	}

	log := logger.FromContext(ctx)
	stored, err := s.repo.Load(ctx, userID)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var (
		sess      *session
		malformed *domain.MalformedSnapshotError
	)
	switch {
	case err == nil && stored != nil:
		metrics.SnapshotLoads.WithLabelValues(metrics.ResultOK).Inc()
		if ok {
			log.Info(LogMsgSessionReattached, "revision", stored.Revision)
		} else {
			log.Debug(LogMsgSnapshotLoaded, "revision", stored.Revision)
		}
		sess = &session{snapshot: *stored, storedRevision: stored.Revision}

	case err == nil:
		metrics.SnapshotLoads.WithLabelValues(metrics.ResultMissing).Inc()
		if ok {
			// nothing stored yet, so the detached progress becomes the first revision
			log.Info(LogMsgSessionReattached, "revision", 0)
			sess = &session{snapshot: cached.snapshot}
		} else {
			log.Info(LogMsgSnapshotSeeded)
			sess = &session{snapshot: s.seed.NewSnapshot(s.now())}
		}

	case errors.As(err, &malformed):
		metrics.SnapshotLoads.WithLabelValues(metrics.ResultMalformed).Inc()
		log.Warn(LogMsgSnapshotMalformed, "revision", malformed.Revision, "error", err)
		sess = &session{snapshot: s.seed.NewSnapshot(s.now()), storedRevision: malformed.Revision}

	case errors.Is(err, domain.ErrMalformedSnapshot):
		metrics.SnapshotLoads.WithLabelValues(metrics.ResultMalformed).Inc()
		log.Warn(LogMsgSnapshotMalformed, "error", err)
		sess = &session{snapshot: s.seed.NewSnapshot(s.now())}

	default:
		metrics.SnapshotLoads.WithLabelValues(metrics.ResultUnavailable).Inc()
		if ok {
			return cached, nil
		}
		log.Warn(LogMsgSessionDetached, "error", err)
		sess = &session{snapshot: s.seed.NewSnapshot(s.now()), detached: true}
	}

	s.cache.Set(userID, sess)
	return sess, nil
}

// prepare brings a working snapshot up to date with the clock: the calendar has its
// seven slots, the ledger is reset for a new cycle and days up to today are claimable
func (s *service) prepare(ctx context.Context, snap *domain.Snapshot, fx *effects) {
	l := ledger.EnsureCalendar(snap.Ledger, s.seed.DayReward)
	l, report := ledger.Reconcile(l, fx.now, s.opts.Location, s.opts.ResetPolicy)
	snap.Ledger = ledger.UnlockCalendarDays(l, fx.now)

	if report.Changed() {
		fx.reset = true
		logger.FromContext(ctx).Info(LogMsgLedgerReset, "daily", report.DailyReset, "weekly", report.WeeklyReset)
		fx.events = append(fx.events, event.NewLedgerResetEvent(fx.userID, report.DailyReset, report.WeeklyReset, fx.now))
	}
}

// applyXP runs the roll-over and unlocks any level-milestone achievements reached
func (s *service) applyXP(snap *domain.Snapshot, fx *effects, amount int64, source string) error {
	result, err := progression.AddXP(snap.UserData, s.seed.Curve, amount)
	if err != nil {
		return err
	}
	snap.UserData = result.State
	fx.xpAwarded += amount
	if fx.source == "" {
		fx.source = source
	}

	achievements, unlocked := progression.UnlockLevelAchievements(snap.Achievements, snap.UserData.Level, fx.now)
	snap.Achievements = achievements
	for _, key := range unlocked {
		s.recordAchievement(snap, fx, key)
	}
	return nil
}

// unlockBonus unlocks the full-week achievement, restoring its definition from the seed
// if an older snapshot does not carry it
func (s *service) unlockBonus(ctx context.Context, snap *domain.Snapshot, fx *effects) error {
	key := s.seed.BonusAchievement
	if key == "" {
		return nil
	}

	achievements, fresh, err := progression.UnlockAchievement(snap.Achievements, key, fx.now)
	if errors.Is(err, domain.ErrNotFound) {
		def, ok := s.seed.achievement(key)
		if !ok {
			return nil
		}
		logger.FromContext(ctx).Warn(LogMsgBonusAchievementGone, "achievement", key)
		def.Unlocked = false
		def.UnlockedAt = nil
		snap.Achievements = append(snap.Achievements, def)
		achievements, fresh, err = progression.UnlockAchievement(snap.Achievements, key, fx.now)
	}
	if err != nil {
		return err
	}

	snap.Achievements = achievements
	if fresh {
		s.recordAchievement(snap, fx, key)
	}
	return nil
}

func (s *service) recordAchievement(snap *domain.Snapshot, fx *effects, key string) {
	for _, a := range snap.Achievements {
		if a.Key == key {
			fx.achievements = append(fx.achievements, key)
			fx.events = append(fx.events, event.NewAchievementUnlockedEvent(fx.userID, a))
			return
		}
	}
}

// celebrate emits exactly one level-up event per action, however many levels it gained
func (s *service) celebrate(before, after domain.ProgressionState, fx *effects) {
	if after.Level <= before.Level {
		return
	}
	result := domain.AddXPResult{
		State:        after,
		XPAdded:      fx.xpAwarded,
		OldLevel:     before.Level,
		NewLevel:     after.Level,
		LevelsGained: after.Level - before.Level,
	}
	fx.levelUp = &result
	fx.events = append(fx.events, event.NewLevelUpEvent(fx.userID, result, fx.source))
}

// publish hands events to the publisher. Delivery outlives the request.
func (s *service) publish(ctx context.Context, events []event.Event) {
	if s.publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, evt := range events {
		if evt.Type == event.HunterLevelUp {
			logger.FromContext(ctx).Info(LogMsgLevelUp, "event_id", evt.ID)
		}
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

func (s *service) result(userID string, sess *session, fx *effects) *ActionResult {
	return &ActionResult{
		Profile:      s.profile(userID, sess, fx.now),
		XPAwarded:    fx.xpAwarded,
		LevelUp:      fx.levelUp,
		Achievements: fx.achievements,
		Quest:        fx.quest,
		Day:          fx.day,
		LedgerReset:  fx.reset,
	}
}

func (s *service) profile(userID string, sess *session, now time.Time) *Profile {
	snap := sess.snapshot.Clone()
	return &Profile{
		UserID:         userID,
		Snapshot:       snap,
		Rank:           progression.RankFor(snap.UserData.TotalXP),
		XPPercent:      progression.XPProgressPercent(snap.UserData),
		Today:          ledger.WeekdayOrdinal(now),
		NextDailyReset: ledger.NextDailyBoundary(now, s.opts.Location),
		Detached:       sess.detached,
	}
}
