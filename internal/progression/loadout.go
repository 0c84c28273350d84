package progression

import (
	"fmt"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// UnlockAchievement flips a single achievement to unlocked. It reports false when the
// achievement was already unlocked, so callers can tell a fresh unlock apart.
func UnlockAchievement(achievements []domain.Achievement, key string, now time.Time) ([]domain.Achievement, bool, error) {
	out := append([]domain.Achievement(nil), achievements...)
	for i := range out {
		if out[i].Key != key {
			continue
		}
		if out[i].Unlocked {
			return out, false, nil
		}
		at := now
		out[i].Unlocked = true
		out[i].UnlockedAt = &at
		return out, true, nil
	}
	return out, false, fmt.Errorf("%w: achievement %q", domain.ErrNotFound, key)
}

// UnlockLevelAchievements unlocks every locked achievement whose MinLevel has been reached
// and returns the keys of the ones it unlocked
func UnlockLevelAchievements(achievements []domain.Achievement, level int, now time.Time) ([]domain.Achievement, []string) {
	out := append([]domain.Achievement(nil), achievements...)
	var unlocked []string
	for i := range out {
		a := &out[i]
		if a.Unlocked || a.MinLevel <= 0 || level < a.MinLevel {
			continue
		}
		at := now
		a.Unlocked = true
		a.UnlockedAt = &at
		unlocked = append(unlocked, a.Key)
	}
	return out, unlocked
}

// UpgradeSkill spends skill points to raise a skill by one level
func UpgradeSkill(state domain.ProgressionState, skills []domain.Skill, skillID int) (domain.ProgressionState, []domain.Skill, error) {
	idx := -1
	for i, s := range skills {
		if s.ID == skillID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state, skills, fmt.Errorf("%w: skill %d", domain.ErrNotFound, skillID)
	}

	skill := skills[idx]
	if skill.Level >= skill.MaxLevel {
		return state, skills, fmt.Errorf("%w: %s", domain.ErrSkillMaxed, skill.Name)
	}
	if state.Stat(domain.StatSkillPoints) < skill.Cost {
		return state, skills, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientSkillPoints, skill.Cost, state.Stat(domain.StatSkillPoints))
	}

	nextState := state.Clone()
	nextState.Stats[domain.StatSkillPoints] -= skill.Cost

	nextSkills := append([]domain.Skill(nil), skills...)
	nextSkills[idx].Level++
	nextSkills[idx].Unlocked = true

	return nextState, nextSkills, nil
}

// EquipTitle equips an unlocked title and unequips every other one
func EquipTitle(titles []domain.Title, titleID int) ([]domain.Title, error) {
	found := false
	for _, t := range titles {
		if t.ID != titleID {
			continue
		}
		if !t.Unlocked {
			return titles, fmt.Errorf("%w: %s", domain.ErrTitleLocked, t.Name)
		}
		found = true
	}
	if !found {
		return titles, fmt.Errorf("%w: title %d", domain.ErrNotFound, titleID)
	}

	out := make([]domain.Title, len(titles))
	for i, t := range titles {
		t.Equipped = t.ID == titleID
		out[i] = t
	}
	return out, nil
}
