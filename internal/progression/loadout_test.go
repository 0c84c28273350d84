package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestRankFor(t *testing.T) {
	tests := []struct {
		totalXP int64
		name    string
		next    string
		toNext  int64
	}{
		{0, "Beginner Reader", "Casual Reader", 100},
		{99, "Beginner Reader", "Casual Reader", 1},
		{100, "Casual Reader", "Regular Reader", 400},
		{2500, "Avid Reader", "Expert Reader", 2500},
		{99999, "Legendary Reader", "Mythical Reader", 1},
		{250000, "Mythical Reader", "Mythical Reader", 0},
	}

	for _, tt := range tests {
		rank := RankFor(tt.totalXP)
		assert.Equal(t, tt.name, rank.Name, "xp=%d", tt.totalXP)
		assert.Equal(t, tt.next, rank.NextRankName, "xp=%d", tt.totalXP)
		assert.Equal(t, tt.toNext, rank.XPToNextRank, "xp=%d", tt.totalXP)
	}
}

func TestUnlockAchievement_OnlyOnce(t *testing.T) {
	achievements := []domain.Achievement{{Key: "full_week_login", Title: "Full Week"}}

	out, fresh, err := UnlockAchievement(achievements, "full_week_login", fixedNow)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.True(t, out[0].Unlocked)
	assert.False(t, achievements[0].Unlocked, "input must not be mutated")

	out, fresh, err = UnlockAchievement(out, "full_week_login", fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, fixedNow, *out[0].UnlockedAt)

	_, _, err = UnlockAchievement(out, "missing", fixedNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnlockLevelAchievements(t *testing.T) {
	achievements := []domain.Achievement{
		{Key: "s_rank", MinLevel: 50},
		{Key: "rookie", MinLevel: 5},
		{Key: "manual"},
		{Key: "old", MinLevel: 2, Unlocked: true},
	}

	out, unlocked := UnlockLevelAchievements(achievements, 12, fixedNow)
	assert.Equal(t, []string{"rookie"}, unlocked)
	assert.True(t, out[1].Unlocked)
	assert.False(t, out[0].Unlocked)
	assert.False(t, out[2].Unlocked)
}

func TestUpgradeSkill(t *testing.T) {
	state := domain.ProgressionState{Level: 3, XPToNextLevel: 100, Stats: map[string]int64{domain.StatSkillPoints: 5}}
	skills := []domain.Skill{
		{ID: 1, Name: "Speed Reading", Level: 3, MaxLevel: 5, Cost: 2, Unlocked: true},
		{ID: 4, Name: "Shadow Cloak", Level: 0, MaxLevel: 1, Cost: 5},
		{ID: 6, Name: "Monarch's Authority", Level: 0, MaxLevel: 1, Cost: 10},
	}

	nextState, nextSkills, err := UpgradeSkill(state, skills, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), nextState.Stat(domain.StatSkillPoints))
	assert.Equal(t, 4, nextSkills[0].Level)
	assert.Equal(t, 3, skills[0].Level, "input must not be mutated")

	_, _, err = UpgradeSkill(nextState, nextSkills, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientSkillPoints)

	maxed := append([]domain.Skill(nil), nextSkills...)
	maxed[0].Level = 5
	_, _, err = UpgradeSkill(nextState, maxed, 1)
	assert.ErrorIs(t, err, domain.ErrSkillMaxed)

	_, _, err = UpgradeSkill(nextState, nextSkills, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, unlockedSkills, err := UpgradeSkill(state, skills, 4)
	require.NoError(t, err)
	assert.True(t, unlockedSkills[1].Unlocked)
}

func TestEquipTitle(t *testing.T) {
	titles := []domain.Title{
		{ID: 1, Name: "E-Rank Hunter", Unlocked: true},
		{ID: 2, Name: "Rising Star", Unlocked: true, Equipped: true},
		{ID: 6, Name: "Monarch"},
	}

	out, err := EquipTitle(titles, 1)
	require.NoError(t, err)
	assert.True(t, out[0].Equipped)
	assert.False(t, out[1].Equipped)

	_, err = EquipTitle(titles, 6)
	assert.ErrorIs(t, err, domain.ErrTitleLocked)

	_, err = EquipTitle(titles, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
