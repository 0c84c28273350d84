package progression

import (
	"fmt"
	"math"
	"sort"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// Curve defaults, matching the hunter profile's observed behaviour
const (
	// DefaultGrowthFactor multiplies the XP threshold on every level-up
	DefaultGrowthFactor = 1.12

	// DefaultInitialThreshold is the XP needed for the first level-up of a fresh hunter
	DefaultInitialThreshold = 100

	// DefaultInitialLevel is the level a fresh hunter starts at
	DefaultInitialLevel = 1
)

// Curve configures level roll-over
type Curve struct {
	InitialLevel     int              `json:"initial_level"`
	InitialThreshold int64            `json:"initial_threshold"`
	GrowthFactor     float64          `json:"growth_factor"`
	StatIncrements   map[string]int64 `json:"stat_increments"`
}

// DefaultStatIncrements is the per-level stat table
func DefaultStatIncrements() map[string]int64 {
	return map[string]int64{
		domain.StatPower:        50,
		domain.StatSpeed:        10,
		domain.StatEndurance:    1,
		domain.StatIntelligence: 1,
		domain.StatStrength:     12,
		domain.StatAgility:      8,
		domain.StatVitality:     10,
		domain.StatSense:        5,
		domain.StatMana:         35,
		domain.StatLuck:         2,
		domain.StatSkillPoints:  3,
	}
}

// DefaultCurve returns the default curve
func DefaultCurve() Curve {
	return Curve{
		InitialLevel:     DefaultInitialLevel,
		InitialThreshold: DefaultInitialThreshold,
		GrowthFactor:     DefaultGrowthFactor,
		StatIncrements:   DefaultStatIncrements(),
	}
}

// Validate rejects curves that would stall or loop forever during roll-over
func (c Curve) Validate() error {
	if math.IsNaN(c.GrowthFactor) || math.IsInf(c.GrowthFactor, 0) || c.GrowthFactor <= 1 {
		return fmt.Errorf("%w: growth factor must be > 1, got %v", domain.ErrConfiguration, c.GrowthFactor)
	}
	if c.InitialThreshold <= 0 {
		return fmt.Errorf("%w: initial threshold must be positive, got %d", domain.ErrConfiguration, c.InitialThreshold)
	}
	if c.InitialLevel < 1 {
		return fmt.Errorf("%w: initial level must be at least 1, got %d", domain.ErrConfiguration, c.InitialLevel)
	}
	return nil
}

// NextThreshold returns the threshold after one level-up, rounded to the nearest integer.
// It never returns less than the current threshold.
func (c Curve) NextThreshold(current int64) int64 {
	next := int64(math.Round(float64(current) * c.GrowthFactor))
	if next < current {
		return current
	}
	return next
}

// NewState returns a fresh progression state at the curve's starting point
func (c Curve) NewState() domain.ProgressionState {
	stats := make(map[string]int64, len(c.StatIncrements))
	for name := range c.StatIncrements {
		stats[name] = 0
	}
	return domain.ProgressionState{
		Level:         c.InitialLevel,
		XPToNextLevel: c.InitialThreshold,
		Stats:         stats,
	}
}

// statNames returns the increment table's keys in a stable order
func (c Curve) statNames() []string {
	names := make([]string, 0, len(c.StatIncrements))
	for name := range c.StatIncrements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
