package domain

// Stat names granted on level-up
const (
	StatPower        = "power"
	StatSpeed        = "speed"
	StatEndurance    = "endurance"
	StatIntelligence = "intelligence"
	StatStrength     = "strength"
	StatAgility      = "agility"
	StatVitality     = "vitality"
	StatSense        = "sense"
	StatMana         = "mana"
	StatLuck         = "luck"
	StatSkillPoints  = "skill_points"
)

// ProgressionState is a hunter's level, XP and derived stats
type ProgressionState struct {
	Level         int              `json:"level"`
	CurrentXP     int64            `json:"xp"`
	XPToNextLevel int64            `json:"maxXp"`
	TotalXP       int64            `json:"totalXp"`
	Rank          string           `json:"rank,omitempty"`
	HunterClass   string           `json:"hunterClass,omitempty"`
	Stats         map[string]int64 `json:"stats"`
}

// Clone returns a deep copy of the state
func (s ProgressionState) Clone() ProgressionState {
	out := s
	out.Stats = make(map[string]int64, len(s.Stats))
	for k, v := range s.Stats {
		out.Stats[k] = v
	}
	return out
}

// Stat returns the value of a named stat, zero if unset
func (s ProgressionState) Stat(name string) int64 {
	return s.Stats[name]
}

// AddXPResult is the outcome of applying an XP delta
type AddXPResult struct {
	State        ProgressionState `json:"state"`
	XPAdded      int64            `json:"xp_added"`
	OldLevel     int              `json:"old_level"`
	NewLevel     int              `json:"new_level"`
	LevelsGained int              `json:"levels_gained"`
}

// LeveledUp reports whether at least one level was gained
func (r AddXPResult) LeveledUp() bool {
	return r.LevelsGained > 0
}

// RankInfo describes the reader rank earned from lifetime XP
type RankInfo struct {
	Name          string `json:"name"`
	NextRankName  string `json:"next_rank_name"`
	NextThreshold int64  `json:"next_threshold"`
	XPToNextRank  int64  `json:"xp_to_next_rank"`
}
