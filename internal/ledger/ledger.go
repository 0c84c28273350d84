// Package ledger implements the reward ledger transitions: claiming completed rewards,
// contributing quest progress, the daily-login calendar and period resets.
//
// Every function is pure. The input ledger is never modified; callers persist the
// returned copy.
package ledger

import (
	"fmt"
	"sort"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// Claim marks a completed reward instance as claimed and returns the XP it awards.
// Preconditions are checked in order: the instance exists, it is complete, it has not
// been claimed yet.
func Claim(l domain.RewardLedger, kind domain.RewardKind, id int) (domain.RewardLedger, int64, error) {
	next := l.Clone()
	items, err := next.Partition(kind)
	if err != nil {
		return l, 0, err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return l, 0, fmt.Errorf("%w: %s reward %d", domain.ErrNotFound, kind, id)
	}

	inst := &items[idx]
	if !inst.Completed() {
		return l, 0, fmt.Errorf("%w: %s reward %d at %d/%d", domain.ErrNotCompleted, kind, id, inst.Progress, inst.Total)
	}
	if inst.Claimed {
		return l, 0, fmt.Errorf("%w: %s reward %d", domain.ErrAlreadyClaimed, kind, id)
	}

	inst.Claimed = true
	return next, inst.RewardXP, nil
}

// Contribute adds progress to a quest, clamped to its total. It never claims and never
// awards XP. Calendar slots only progress with the calendar itself and reject contributions.
func Contribute(l domain.RewardLedger, kind domain.RewardKind, id int, delta int) (domain.RewardLedger, domain.RewardInstance, error) {
	if delta < 0 {
		return l, domain.RewardInstance{}, fmt.Errorf("%w: contribution must not be negative, got %d", domain.ErrInvalidInput, delta)
	}
	if kind == domain.RewardKindCalendarDay {
		return l, domain.RewardInstance{}, fmt.Errorf("%w: calendar days do not accept contributions", domain.ErrInvalidInput)
	}

	next := l.Clone()
	items, err := next.Partition(kind)
	if err != nil {
		return l, domain.RewardInstance{}, err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return l, domain.RewardInstance{}, fmt.Errorf("%w: %s reward %d", domain.ErrNotFound, kind, id)
	}

	inst := &items[idx]
	if delta >= inst.Total-inst.Progress {
		inst.Progress = inst.Total
	} else {
		inst.Progress = clampProgress(inst.Progress+delta, inst.Total)
	}
	return next, *inst, nil
}

// Normalize clamps every instance's progress to [0, total] and sorts each partition by id
func Normalize(l domain.RewardLedger) domain.RewardLedger {
	next := l.Clone()
	for _, items := range [][]domain.RewardInstance{next.Daily, next.Weekly, next.Calendar} {
		for i := range items {
			items[i].Progress = clampProgress(items[i].Progress, items[i].Total)
		}
		sort.SliceStable(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	}
	return next
}

// Find returns the instance with the given kind and id
func Find(l domain.RewardLedger, kind domain.RewardKind, id int) (domain.RewardInstance, error) {
	items, err := l.Partition(kind)
	if err != nil {
		return domain.RewardInstance{}, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return domain.RewardInstance{}, fmt.Errorf("%w: %s reward %d", domain.ErrNotFound, kind, id)
	}
	return items[idx], nil
}

func indexOf(items []domain.RewardInstance, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func clampProgress(progress, total int) int {
	if progress < 0 {
		return 0
	}
	if progress > total {
		return total
	}
	return progress
}
