package domain

import (
	"fmt"
	"strings"
)

// RewardKind identifies which ledger partition a reward instance lives in
type RewardKind string

const (
	RewardKindDaily       RewardKind = "daily"
	RewardKindWeekly      RewardKind = "weekly"
	RewardKindCalendarDay RewardKind = "calendar_day"
)

// CalendarDays is the number of slots in the daily-login calendar
const CalendarDays = 7

// ParseRewardKind converts user input into a RewardKind
func ParseRewardKind(s string) (RewardKind, error) {
	switch RewardKind(strings.ToLower(strings.TrimSpace(s))) {
	case RewardKindDaily:
		return RewardKindDaily, nil
	case RewardKindWeekly:
		return RewardKindWeekly, nil
	case RewardKindCalendarDay, "calendar", "day":
		return RewardKindCalendarDay, nil
	}
	return "", fmt.Errorf("%w: unknown reward kind %q", ErrInvalidInput, s)
}

// RewardInstance is a single claimable reward: a quest or a calendar day
type RewardInstance struct {
	Kind        RewardKind `json:"type"`
	ID          int        `json:"id"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Progress    int        `json:"progress"`
	Total       int        `json:"total"`
	RewardXP    int64      `json:"reward"`
	Claimed     bool       `json:"claimed"`
}

// Completed reports whether the progress target has been met
func (r RewardInstance) Completed() bool {
	return r.Progress >= r.Total
}

// Claimable reports whether the instance can be claimed right now
func (r RewardInstance) Claimable() bool {
	return r.Completed() && !r.Claimed
}

// LedgerCycle stamps the period a ledger's daily and weekly partitions belong to
type LedgerCycle struct {
	Day  string `json:"day,omitempty"`  // YYYY-MM-DD in the configured zone
	Week string `json:"week,omitempty"` // ISO week, YYYY-Www
}

// RewardLedger holds every claimable reward for one hunter
type RewardLedger struct {
	Daily    []RewardInstance `json:"dailyQuests"`
	Weekly   []RewardInstance `json:"weeklyQuests"`
	Calendar []RewardInstance `json:"calendar"`
	Cycle    LedgerCycle      `json:"cycle"`
}

// Clone returns a deep copy of the ledger
func (l RewardLedger) Clone() RewardLedger {
	return RewardLedger{
		Daily:    append([]RewardInstance(nil), l.Daily...),
		Weekly:   append([]RewardInstance(nil), l.Weekly...),
		Calendar: append([]RewardInstance(nil), l.Calendar...),
		Cycle:    l.Cycle,
	}
}

// Partition returns the instances for a kind
func (l *RewardLedger) Partition(kind RewardKind) ([]RewardInstance, error) {
	switch kind {
	case RewardKindDaily:
		return l.Daily, nil
	case RewardKindWeekly:
		return l.Weekly, nil
	case RewardKindCalendarDay:
		return l.Calendar, nil
	}
	return nil, fmt.Errorf("%w: unknown reward kind %q", ErrInvalidInput, kind)
}

// ClaimedDays lists the calendar days already claimed, ascending
func (l RewardLedger) ClaimedDays() []int {
	days := make([]int, 0, CalendarDays)
	for _, d := range l.Calendar {
		if d.Claimed {
			days = append(days, d.ID)
		}
	}
	return days
}
