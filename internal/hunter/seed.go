package hunter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/ledger"
	"github.com/osse101/HunterSystem_Go/internal/progression"
	"github.com/osse101/HunterSystem_Go/internal/validation"
)

// DefaultBonusAchievement is unlocked by claiming the last day of the login calendar
const DefaultBonusAchievement = "full_week_login"

var seedSchema = validation.NewSchemaValidator()

// Seed is the game data a new hunter starts from: the level curve, the calendar reward
// formula, the starting profile and the quest, achievement, skill and title catalogue.
type Seed struct {
	Curve            progression.Curve       `json:"curve"`
	DayReward        ledger.DayRewardConfig  `json:"day_reward"`
	BonusAchievement string                  `json:"bonus_achievement"`
	Profile          domain.ProgressionState `json:"profile"`
	DailyQuests      []domain.RewardInstance `json:"daily_quests"`
	WeeklyQuests     []domain.RewardInstance `json:"weekly_quests"`
	Achievements     []domain.Achievement    `json:"achievements"`
	Skills           []domain.Skill          `json:"skills"`
	Titles           []domain.Title          `json:"titles"`
}

// LoadSeed reads and validates a seed file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hunter seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse hunter seed: %w", err)
	}
	if err := seedSchema.ValidateBytes(data, validation.SchemaHunterSeed); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, path, err)
	}

	seed.applyDefaults()
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hunter seed: %w", err)
	}

	return &seed, nil
}

// applyDefaults fills the parts of a seed file that may be left out
func (s *Seed) applyDefaults() {
	if s.Curve.InitialLevel == 0 && s.Curve.InitialThreshold == 0 && s.Curve.GrowthFactor == 0 {
		s.Curve = progression.DefaultCurve()
	}
	if s.Curve.StatIncrements == nil {
		s.Curve.StatIncrements = progression.DefaultStatIncrements()
	}
	if s.DayReward == (ledger.DayRewardConfig{}) {
		s.DayReward = ledger.DefaultDayRewardConfig()
	}
	if s.Profile.Level == 0 {
		s.Profile = s.Curve.NewState()
	}
	for i := range s.DailyQuests {
		s.DailyQuests[i].Kind = domain.RewardKindDaily
	}
	for i := range s.WeeklyQuests {
		s.WeeklyQuests[i].Kind = domain.RewardKindWeekly
	}
}

// Validate checks the seed for values that would break progression or the ledger
func (s *Seed) Validate() error {
	if err := s.Curve.Validate(); err != nil {
		return err
	}
	if s.Profile.Level < 1 || s.Profile.XPToNextLevel <= 0 {
		return fmt.Errorf("%w: profile needs a level and a positive xp threshold", domain.ErrConfiguration)
	}
	if s.Profile.CurrentXP < 0 || s.Profile.CurrentXP >= s.Profile.XPToNextLevel {
		return fmt.Errorf("%w: profile xp %d outside [0, %d)", domain.ErrConfiguration, s.Profile.CurrentXP, s.Profile.XPToNextLevel)
	}
	if err := validateQuests("daily", s.DailyQuests); err != nil {
		return err
	}
	if err := validateQuests("weekly", s.WeeklyQuests); err != nil {
		return err
	}

	keys := make(map[string]bool, len(s.Achievements))
	for _, a := range s.Achievements {
		if a.Key == "" || keys[a.Key] {
			return fmt.Errorf("%w: achievement key %q is empty or duplicated", domain.ErrConfiguration, a.Key)
		}
		keys[a.Key] = true
	}
	if s.BonusAchievement != "" && !keys[s.BonusAchievement] {
		return fmt.Errorf("%w: bonus achievement %q is not defined", domain.ErrConfiguration, s.BonusAchievement)
	}

	equipped := 0
	for _, t := range s.Titles {
		if t.Equipped {
			equipped++
		}
	}
	if equipped > 1 {
		return fmt.Errorf("%w: %d titles equipped", domain.ErrConfiguration, equipped)
	}
	return nil
}

func validateQuests(partition string, quests []domain.RewardInstance) error {
	seen := make(map[int]bool, len(quests))
	for _, q := range quests {
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate %s quest id %d", domain.ErrConfiguration, partition, q.ID)
		}
		seen[q.ID] = true
		if q.Total <= 0 {
			return fmt.Errorf("%w: %s quest %d needs a positive total", domain.ErrConfiguration, partition, q.ID)
		}
		if q.RewardXP < 0 {
			return fmt.Errorf("%w: %s quest %d has a negative reward", domain.ErrConfiguration, partition, q.ID)
		}
	}
	return nil
}

// NewSnapshot builds an unsaved snapshot (revision 0) from the seed
func (s *Seed) NewSnapshot(now time.Time) domain.Snapshot {
	state := s.Profile.Clone()
	for name := range s.Curve.StatIncrements {
		if _, ok := state.Stats[name]; !ok {
			state.Stats[name] = 0
		}
	}

	l := ledger.Normalize(domain.RewardLedger{
		Daily:  append([]domain.RewardInstance(nil), s.DailyQuests...),
		Weekly: append([]domain.RewardInstance(nil), s.WeeklyQuests...),
	})

	return domain.Snapshot{
		Version:      domain.SnapshotSchemaVersion,
		UserData:     state,
		Ledger:       ledger.EnsureCalendar(l, s.DayReward),
		Achievements: append([]domain.Achievement(nil), s.Achievements...),
		Skills:       append([]domain.Skill(nil), s.Skills...),
		Titles:       append([]domain.Title(nil), s.Titles...),
		UpdatedAt:    now,
	}
}

// achievement returns the seed's definition of an achievement
func (s *Seed) achievement(key string) (domain.Achievement, bool) {
	for _, a := range s.Achievements {
		if a.Key == key {
			return a, true
		}
	}
	return domain.Achievement{}, false
}

// DefaultSeed is the demo hunter used when no seed file is configured
func DefaultSeed() *Seed {
	return &Seed{
		Curve:            progression.DefaultCurve(),
		DayReward:        ledger.DefaultDayRewardConfig(),
		BonusAchievement: DefaultBonusAchievement,
		Profile: domain.ProgressionState{
			Level:         12,
			CurrentXP:     750,
			XPToNextLevel: 1000,
			Rank:          "B",
			HunterClass:   "Shadow Monarch",
			Stats: map[string]int64{
				domain.StatPower:        2847,
				domain.StatSpeed:        156,
				domain.StatEndurance:    15,
				domain.StatIntelligence: 8,
				domain.StatStrength:     245,
				domain.StatAgility:      189,
				domain.StatVitality:     178,
				domain.StatSense:        134,
				domain.StatMana:         892,
				domain.StatLuck:         67,
				domain.StatSkillPoints:  5,
			},
		},
		DailyQuests: []domain.RewardInstance{
			{Kind: domain.RewardKindDaily, ID: 1, Title: "First Chapter of the Day", Description: "Read your first chapter today", Progress: 1, Total: 1, RewardXP: 50, Difficulty: "E"},
			{Kind: domain.RewardKindDaily, ID: 2, Title: "Marathon Reader", Description: "Read 3 chapters in one session", Progress: 2, Total: 3, RewardXP: 100, Difficulty: "D"},
			{Kind: domain.RewardKindDaily, ID: 3, Title: "Explorer", Description: "Try a new manga series", Progress: 0, Total: 1, RewardXP: 75, Difficulty: "D"},
			{Kind: domain.RewardKindDaily, ID: 4, Title: "Perfect Reader", Description: "Read for 30 minutes straight", Progress: 0, Total: 1, RewardXP: 150, Difficulty: "C"},
		},
		WeeklyQuests: []domain.RewardInstance{
			{Kind: domain.RewardKindWeekly, ID: 5, Title: "Devoted Hunter", Description: "Read manga for 7 consecutive days", Progress: 5, Total: 7, RewardXP: 500, Difficulty: "B"},
			{Kind: domain.RewardKindWeekly, ID: 6, Title: "Genre Master", Description: "Read from 5 different genres", Progress: 3, Total: 5, RewardXP: 300, Difficulty: "C"},
			{Kind: domain.RewardKindWeekly, ID: 7, Title: "Chapter Conqueror", Description: "Complete 50 chapters this week", Progress: 32, Total: 50, RewardXP: 800, Difficulty: "A"},
		},
		Achievements: []domain.Achievement{
			{Key: "awakened_hunter", Title: "Awakened Hunter", Description: "Complete your first quest", Rarity: "common", RewardXP: 50, Unlocked: true},
			{Key: "speed_reader", Title: "Speed Reader", Description: "Read 10 chapters in one day", Rarity: "rare", RewardXP: 150, Unlocked: true},
			{Key: "shadow_collector", Title: "Shadow Collector", Description: "Add 100 manga to your library", Rarity: "epic", RewardXP: 500},
			{Key: "s_rank_hunter", Title: "S-Rank Hunter", Description: "Reach level 50", Rarity: "legendary", RewardXP: 2000, MinLevel: 50},
			{Key: "shadow_monarch", Title: "Shadow Monarch", Description: "Complete 1000 chapters", Rarity: "mythic", RewardXP: 10000},
			{Key: "gate_breaker", Title: "Gate Breaker", Description: "Finish 10 completed series", Rarity: "epic", RewardXP: 800},
			{Key: "night_reader", Title: "Night Reader", Description: "Read 50 chapters after midnight", Rarity: "rare", RewardXP: 300},
			{Key: "loyal_hunter", Title: "Loyal Hunter", Description: "30 day login streak", Rarity: "legendary", RewardXP: 1500},
			{Key: DefaultBonusAchievement, Title: "Full Week Hunter", Description: "Claim all seven daily login rewards", Rarity: "rare", RewardXP: 200},
		},
		Skills: []domain.Skill{
			{ID: 1, Name: "Speed Reading", Description: "Increases reading speed and XP gain", Effect: "+15% Reading Speed", Level: 3, MaxLevel: 5, Cost: 2, Unlocked: true},
			{ID: 2, Name: "Collector's Eye", Description: "Better manga recommendations", Effect: "+10% Discovery Rate", Level: 2, MaxLevel: 5, Cost: 2, Unlocked: true},
			{ID: 3, Name: "Critic's Insight", Description: "Unlock detailed manga analytics", Effect: "Advanced Statistics", MaxLevel: 3, Cost: 3},
			{ID: 4, Name: "Shadow Cloak", Description: "Read in complete privacy", Effect: "Incognito Mode", MaxLevel: 1, Cost: 5},
			{ID: 5, Name: "Hunter's Sense", Description: "Predict manga you'll love", Effect: "+25% Recommendation Accuracy", MaxLevel: 5, Cost: 3},
			{ID: 6, Name: "Monarch's Authority", Description: "Ultimate reading powers", Effect: "All Stats +50%", MaxLevel: 1, Cost: 10},
		},
		Titles: []domain.Title{
			{ID: 1, Name: "E-Rank Hunter", Unlocked: true},
			{ID: 2, Name: "Rising Star", Unlocked: true, Equipped: true},
			{ID: 3, Name: "Speed Reader", Unlocked: true},
			{ID: 4, Name: "Shadow Walker"},
			{ID: 5, Name: "Gate Breaker"},
			{ID: 6, Name: "Monarch"},
		},
	}
}
