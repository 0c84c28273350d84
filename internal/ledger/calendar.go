package ledger

import (
	"fmt"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// Calendar reward defaults
const (
	DefaultDayRewardBase   int64 = 25
	DefaultDayRewardPerDay int64 = 15
)

// FullWeekDay is the calendar slot that grants the bonus achievement
const FullWeekDay = domain.CalendarDays

// DayRewardConfig is the linear reward formula for calendar days
type DayRewardConfig struct {
	Base   int64 `json:"base"`
	PerDay int64 `json:"per_day"`
}

// DefaultDayRewardConfig returns the default calendar reward formula
func DefaultDayRewardConfig() DayRewardConfig {
	return DayRewardConfig{Base: DefaultDayRewardBase, PerDay: DefaultDayRewardPerDay}
}

// DayClaim describes a successful calendar claim
type DayClaim struct {
	Day      int   `json:"day"`
	XP       int64 `json:"xp"`
	FullWeek bool  `json:"full_week"`
}

// WeekdayOrdinal maps a date onto the calendar's slot numbering, Monday=1 through Sunday=7
func WeekdayOrdinal(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayReward returns the XP for a calendar day
func DayReward(day int, cfg DayRewardConfig) int64 {
	return cfg.Base + int64(day)*cfg.PerDay
}

// EnsureCalendar makes sure the calendar holds exactly the seven day slots.
// Existing slots keep their claimed flag; missing ones are created from the reward formula.
func EnsureCalendar(l domain.RewardLedger, cfg DayRewardConfig) domain.RewardLedger {
	next := l.Clone()
	days := make([]domain.RewardInstance, 0, domain.CalendarDays)
	for day := 1; day <= domain.CalendarDays; day++ {
		slot := domain.RewardInstance{
			Kind:     domain.RewardKindCalendarDay,
			ID:       day,
			Title:    fmt.Sprintf("Day %d", day),
			Total:    1,
			RewardXP: DayReward(day, cfg),
		}
		if idx := indexOf(next.Calendar, day); idx >= 0 {
			existing := next.Calendar[idx]
			slot.Claimed = existing.Claimed
			slot.Progress = clampProgress(existing.Progress, slot.Total)
			if existing.RewardXP > 0 {
				slot.RewardXP = existing.RewardXP
			}
			if existing.Title != "" {
				slot.Title = existing.Title
			}
		}
		days = append(days, slot)
	}
	next.Calendar = days
	return next
}

// UnlockCalendarDays marks every day up to and including today's ordinal as reached
// and unclaimed later days as not reached, so a slot left over from an earlier week
// never counts as complete. now must already be in the hunter's zone.
func UnlockCalendarDays(l domain.RewardLedger, now time.Time) domain.RewardLedger {
	next := l.Clone()
	today := WeekdayOrdinal(now)
	for i := range next.Calendar {
		day := &next.Calendar[i]
		switch {
		case day.ID <= today:
			day.Progress = day.Total
		case !day.Claimed:
			day.Progress = 0
		}
	}
	return next
}

// ClaimDay claims a calendar day. Days outside 1..7 are NotFound, days after today are
// NotCompleted and a day already claimed this cycle is AlreadyClaimed. Claiming the last
// day of the week reports FullWeek so the caller can unlock the bonus achievement.
func ClaimDay(l domain.RewardLedger, day int, now time.Time, cfg DayRewardConfig) (domain.RewardLedger, DayClaim, error) {
	if day < 1 || day > domain.CalendarDays {
		return l, DayClaim{}, fmt.Errorf("%w: calendar day %d", domain.ErrNotFound, day)
	}
	if today := WeekdayOrdinal(now); day > today {
		return l, DayClaim{}, fmt.Errorf("%w: calendar day %d is after today (%d)", domain.ErrNotCompleted, day, today)
	}

	prepared := UnlockCalendarDays(EnsureCalendar(l, cfg), now)
	next, xp, err := Claim(prepared, domain.RewardKindCalendarDay, day)
	if err != nil {
		return l, DayClaim{}, err
	}

	return next, DayClaim{Day: day, XP: xp, FullWeek: day == FullWeekDay}, nil
}
