package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// ResetPolicy decides when claimed rewards become claimable again
type ResetPolicy string

const (
	// ResetPolicyNone never resets anything
	ResetPolicyNone ResetPolicy = "none"
	// ResetPolicyCalendar resets daily quests at local midnight and weekly quests plus the
	// login calendar at local midnight on Monday
	ResetPolicyCalendar ResetPolicy = "calendar"
)

// ParseResetPolicy parses a policy name, defaulting to calendar when empty
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch ResetPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ResetPolicyCalendar:
		return ResetPolicyCalendar, nil
	case ResetPolicyNone:
		return ResetPolicyNone, nil
	}
	return "", fmt.Errorf("%w: unknown reset policy %q", domain.ErrConfiguration, s)
}

// ResetReport lists what a reconciliation reset
type ResetReport struct {
	DailyReset  bool
	WeeklyReset bool
}

// Changed reports whether anything was reset
func (r ResetReport) Changed() bool {
	return r.DailyReset || r.WeeklyReset
}

// DayStamp formats the local calendar date used for the daily cycle
func DayStamp(t time.Time) string {
	return t.Format(time.DateOnly)
}

// WeekStamp formats the ISO week used for the weekly cycle
func WeekStamp(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Reconcile applies the reset policy for the period containing now.
// A ledger without cycle stamps is stamped without being reset.
func Reconcile(l domain.RewardLedger, now time.Time, loc *time.Location, policy ResetPolicy) (domain.RewardLedger, ResetReport) {
	if policy == ResetPolicyNone {
		return l, ResetReport{}
	}
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	day, week := DayStamp(local), WeekStamp(local)

	next := l.Clone()
	var report ResetReport

	if next.Cycle.Day != "" && next.Cycle.Day != day {
		resetInstances(next.Daily)
		report.DailyReset = true
	}
	if next.Cycle.Week != "" && next.Cycle.Week != week {
		resetInstances(next.Weekly)
		resetInstances(next.Calendar)
		report.WeeklyReset = true
	}

	next.Cycle = domain.LedgerCycle{Day: day, Week: week}
	return next, report
}

// NextDailyBoundary returns the next local midnight after now
func NextDailyBoundary(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

// NextWeeklyBoundary returns the next local Monday midnight after now
func NextWeeklyBoundary(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	daysUntilMonday := 8 - WeekdayOrdinal(local)
	return time.Date(local.Year(), local.Month(), local.Day()+daysUntilMonday, 0, 0, 0, 0, loc)
}

func resetInstances(items []domain.RewardInstance) {
	for i := range items {
		items[i].Progress = 0
		items[i].Claimed = false
	}
}
