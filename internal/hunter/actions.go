package hunter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/logger"
	"github.com/osse101/HunterSystem_Go/internal/progression"
)

// GetProfile returns the hunter's current state, seeding a new hunter if none is stored
func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	result, err := s.run(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return result.Profile, nil
}

// AddXP grants XP and resolves any level-ups
func (s *service) AddXP(ctx context.Context, userID string, amount int64, source string) (*ActionResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: xp amount must not be negative, got %d", domain.ErrInvalidInput, amount)
	}
	if source == "" {
		source = SourceManual
	}

	return s.run(ctx, userID, func(snap *domain.Snapshot, fx *effects) error {
		return s.applyXP(snap, fx, amount, source)
	})
}

// ClaimQuest claims a completed quest and grants its XP. Calendar days are routed
// through ClaimDailyReward so the full-week bonus applies.
func (s *service) ClaimQuest(ctx context.Context, userID string, kind domain.RewardKind, questID int) (*ActionResult, error) {
	if kind == domain.RewardKindCalendarDay {
		return s.ClaimDailyReward(ctx, userID, questID)
	}

	return s.run(ctx, userID, func(snap *domain.Snapshot, fx *effects) error {
		l, xp, err := ledger.Claim(snap.Ledger, kind, questID)
		if err != nil {
			return err
		}
		snap.Ledger = l

		inst, err := ledger.Find(l, kind, questID)
		if err != nil {
			return err
		}
		fx.quest = &inst
		fx.events = append(fx.events, event.NewRewardClaimedEvent(fx.userID, kind, questID, xp))

		return s.applyXP(snap, fx, xp, questSource(kind))
	})
}

// Contribute adds progress to a quest. It never claims or grants XP.
func (s *service) Contribute(ctx context.Context, userID string, kind domain.RewardKind, questID int, amount int) (*ActionResult, error) {
	return s.run(ctx, userID, func(snap *domain.Snapshot, fx *effects) error {
		l, inst, err := ledger.Contribute(snap.Ledger, kind, questID, amount)
		if err != nil {
			return err
		}
		snap.Ledger = l
		fx.quest = &inst
		fx.events = append(fx.events, event.NewQuestProgressEvent(fx.userID, inst))
		return nil
	})
}

// ClaimDailyReward claims a day of the login calendar
func (s *service) ClaimDailyReward(ctx context.Context, userID string, day int) (*ActionResult, error) {
	return s.claimDay(ctx, userID, func(time.Time) int { return day })
}

// ClaimToday claims the calendar slot for the current weekday
func (s *service) ClaimToday(ctx context.Context, userID string) (*ActionResult, error) {
	return s.claimDay(ctx, userID, ledger.WeekdayOrdinal)
}

// claimDay resolves the day inside the run so it uses the same clock as reconciliation
func (s *service) claimDay(ctx context.Context, userID string, dayFor func(time.Time) int) (*ActionResult, error) {
	return s.run(ctx, userID, func(snap *domain.Snapshot, fx *effects) error {
		day := dayFor(fx.now)
		l, claim, err := ledger.ClaimDay(snap.Ledger, day, fx.now, s.seed.DayReward)
		if err != nil {
			return err
		}
		snap.Ledger = l
		fx.day = &claim
		fx.events = append(fx.events, event.NewRewardClaimedEvent(fx.userID, domain.RewardKindCalendarDay, day, claim.XP))

		if err := s.applyXP(snap, fx, claim.XP, SourceCalendarDay); err != nil {
			return err
		}
		if claim.FullWeek {
			return s.unlockBonus(ctx, snap, fx)
		}
		return nil
	})
}

// UpgradeSkill spends skill points on a skill
func (s *service) UpgradeSkill(ctx context.Context, userID string, skillID int) (*ActionResult, error) {
	return s.run(ctx, userID, func(snap *domain.Snapshot, _ *effects) error {
		state, skills, err := progression.UpgradeSkill(snap.UserData, snap.Skills, skillID)
		if err != nil {
			return err
		}
		snap.UserData = state
		snap.Skills = skills
		return nil
	})
}

// EquipTitle equips an unlocked title
func (s *service) EquipTitle(ctx context.Context, userID string, titleID int) (*ActionResult, error) {
	return s.run(ctx, userID, func(snap *domain.Snapshot, _ *effects) error {
		titles, err := progression.EquipTitle(snap.Titles, titleID)
		if err != nil {
			return err
		}
		snap.Titles = titles
		return nil
	})
}

// ReconcileAll applies the reset policy to every stored and cached hunter and
// returns how many ledgers were reset
func (s *service) ReconcileAll(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	ids, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	ids = mergeUserIDs(ids, s.cache.Keys())

	var reset atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ReconcileConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			result, err := s.run(gctx, id, nil)
			if err != nil {
				if errors.Is(err, ErrShuttingDown) || gctx.Err() != nil {
					return err
				}
				log.Warn(LogMsgReconcileFailed, "user_id", id, "error", err)
				return nil
			}
			if result.LedgerReset {
				reset.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()

	log.Info(LogMsgReconcileComplete, "users", len(ids), "reset", reset.Load())
	return int(reset.Load()), err
}

func mergeUserIDs(stored, cached []string) []string {
	seen := make(map[string]bool, len(stored)+len(cached))
	out := make([]string, 0, len(stored)+len(cached))
	for _, list := range [][]string{stored, cached} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

func questSource(kind domain.RewardKind) string {
	switch kind {
	case domain.RewardKindDaily:
		return SourceDailyQuest
	case domain.RewardKindWeekly:
		return SourceWeeklyQuest
	}
	return SourceUnknownQuest
}
