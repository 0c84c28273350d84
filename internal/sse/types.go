package sse

// LevelUpPayload represents the SSE payload for level up celebrations
type LevelUpPayload struct {
	UserID       string `json:"user_id"`
	OldLevel     int    `json:"old_level"`
	NewLevel     int    `json:"new_level"`
	LevelsGained int    `json:"levels_gained"`
	Source       string `json:"source,omitempty"` // What granted the XP (e.g., "daily_quest", "calendar_day")
}

// RewardClaimedPayload represents the SSE payload for reward claims
type RewardClaimedPayload struct {
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	RewardID  int    `json:"reward_id"`
	XPAwarded int64  `json:"xp_awarded"`
}

// AchievementUnlockedPayload represents the SSE payload for achievement unlocks
type AchievementUnlockedPayload struct {
	UserID string `json:"user_id"`
	Key    string `json:"key"`
	Title  string `json:"title"`
	Rarity string `json:"rarity,omitempty"`
}

// LedgerResetPayload represents the SSE payload for cycle resets
type LedgerResetPayload struct {
	UserID      string `json:"user_id"`
	DailyReset  bool   `json:"daily_reset"`
	WeeklyReset bool   `json:"weekly_reset"`
}
