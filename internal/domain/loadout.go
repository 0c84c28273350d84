package domain

import "time"

// Achievement is a one-time unlockable flag
type Achievement struct {
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Rarity      string     `json:"rarity,omitempty"`
	RewardXP    int64      `json:"reward,omitempty"`
	MinLevel    int        `json:"minLevel,omitempty"` // auto-unlocks when level reaches it
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Skill is upgraded by spending skill points
type Skill struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Effect      string `json:"effect,omitempty"`
	Level       int    `json:"level"`
	MaxLevel    int    `json:"maxLevel"`
	Cost        int64  `json:"cost"`
	Unlocked    bool   `json:"unlocked"`
}

// Title is a cosmetic label; at most one is equipped
type Title struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
	Equipped bool   `json:"equipped"`
}
