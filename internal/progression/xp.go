package progression

import (
	"fmt"
	"math"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// AddXP applies an XP delta and resolves every level-up it triggers.
// The input state is not modified.
//
// While current XP meets the threshold, the threshold is consumed, the level
// increments, the threshold grows by the curve's factor and every configured
// stat increment is applied. The returned state always has CurrentXP < XPToNextLevel.
func AddXP(state domain.ProgressionState, curve Curve, amount int64) (domain.AddXPResult, error) {
	if amount < 0 {
		return domain.AddXPResult{}, fmt.Errorf("%w: xp amount must not be negative, got %d", domain.ErrInvalidInput, amount)
	}
	if err := curve.Validate(); err != nil {
		return domain.AddXPResult{}, err
	}
	if state.XPToNextLevel <= 0 {
		return domain.AddXPResult{}, fmt.Errorf("%w: xp threshold must be positive, got %d", domain.ErrConfiguration, state.XPToNextLevel)
	}

	if amount > math.MaxInt64-state.TotalXP || amount > math.MaxInt64-state.CurrentXP {
		return domain.AddXPResult{}, fmt.Errorf("%w: xp amount %d overflows total %d", domain.ErrInvalidInput, amount, state.TotalXP)
	}

	next := state.Clone()
	next.CurrentXP += amount
	next.TotalXP += amount

	names := curve.statNames()
	levelsGained := 0
	for next.CurrentXP >= next.XPToNextLevel {
		next.CurrentXP -= next.XPToNextLevel
		next.Level++
		next.XPToNextLevel = curve.NextThreshold(next.XPToNextLevel)
		for _, name := range names {
			next.Stats[name] += curve.StatIncrements[name]
		}
		levelsGained++
	}

	return domain.AddXPResult{
		State:        next,
		XPAdded:      amount,
		OldLevel:     state.Level,
		NewLevel:     next.Level,
		LevelsGained: levelsGained,
	}, nil
}

// XPProgressPercent returns how far through the current level the state is, 0-100
func XPProgressPercent(state domain.ProgressionState) int {
	if state.XPToNextLevel <= 0 {
		return 0
	}
	return int(state.CurrentXP * 100 / state.XPToNextLevel)
}
