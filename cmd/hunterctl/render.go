package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
)

var (
	titleCaser = cases.Title(language.English)
	weekdays   = [domain.CalendarDays]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// label turns snake_case keys into "Title Case"
func label(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

func renderProfile(w io.Writer, p *hunter.Profile) {
	state := p.Snapshot.UserData

	fmt.Fprintf(w, "Hunter %s  Level %d  %s\n", p.UserID, state.Level, p.Rank.Name)
	fmt.Fprintf(w, "XP %d/%d (%d%%)  total %d", state.CurrentXP, state.XPToNextLevel, p.XPPercent, state.TotalXP)
	if p.Rank.XPToNextRank > 0 {
		fmt.Fprintf(w, "  %d XP to %s", p.Rank.XPToNextRank, p.Rank.NextRankName)
	}
	fmt.Fprintln(w)
	if p.Detached {
		fmt.Fprintln(w, "(offline: progress is not being saved)")
	}

	renderStats(w, state.Stats)
	renderQuests(w, "Daily quests", p.Snapshot.Ledger.Daily)
	renderQuests(w, "Weekly quests", p.Snapshot.Ledger.Weekly)
	renderCalendar(w, p.Snapshot.Ledger.Calendar, p.Today)
	renderLoadout(w, p.Snapshot)

	fmt.Fprintf(w, "Next daily reset: %s\n", p.NextDailyReset.Format("2006-01-02 15:04 MST"))
}

func renderStats(w io.Writer, stats map[string]int64) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", label(k), stats[k]))
	}
	fmt.Fprintf(w, "Stats: %s\n", strings.Join(parts, ", "))
}

func renderQuests(w io.Writer, heading string, quests []domain.RewardInstance) {
	fmt.Fprintf(w, "%s:\n", heading)
	for _, q := range quests {
		fmt.Fprintf(w, "  %s [%d] %s  %d/%d  +%d XP\n", questMark(q), q.ID, q.Title, q.Progress, q.Total, q.RewardXP)
	}
}

func questMark(q domain.RewardInstance) string {
	switch {
	case q.Claimed:
		return "x"
	case q.Completed():
		return "!"
	default:
		return " "
	}
}

func renderCalendar(w io.Writer, days []domain.RewardInstance, today int) {
	fmt.Fprintln(w, "Login calendar:")
	for _, d := range days {
		if d.ID < 1 || d.ID > domain.CalendarDays {
			continue
		}
		marker := " "
		if d.ID == today {
			marker = ">"
		}
		fmt.Fprintf(w, " %s%s %s +%d XP\n", marker, weekdays[d.ID-1], questMark(d), d.RewardXP)
	}
}

func renderLoadout(w io.Writer, s domain.Snapshot) {
	unlocked := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	fmt.Fprintf(w, "Achievements: %d/%d unlocked\n", unlocked, len(s.Achievements))

	for _, t := range s.Titles {
		if t.Equipped {
			fmt.Fprintf(w, "Title: %s\n", t.Name)
		}
	}
}

func renderResult(w io.Writer, r *hunter.ActionResult) {
	if r.Quest != nil {
		fmt.Fprintf(w, "%s quest %d: %d/%d\n", label(string(r.Quest.Kind)), r.Quest.ID, r.Quest.Progress, r.Quest.Total)
	}
	if r.Day != nil {
		fmt.Fprintf(w, "Claimed %s login reward\n", weekdays[r.Day.Day-1])
		if r.Day.FullWeek {
			fmt.Fprintln(w, "Full week of logins!")
		}
	}
	if r.XPAwarded > 0 {
		fmt.Fprintf(w, "+%d XP\n", r.XPAwarded)
	}
	if r.LevelUp != nil && r.LevelUp.LeveledUp() {
		fmt.Fprintf(w, "LEVEL UP! %d -> %d\n", r.LevelUp.OldLevel, r.LevelUp.NewLevel)
	}
	for _, key := range r.Achievements {
		fmt.Fprintf(w, "Achievement unlocked: %s\n", label(key))
	}
	if r.Profile != nil {
		state := r.Profile.Snapshot.UserData
		fmt.Fprintf(w, "Level %d  XP %d/%d\n", state.Level, state.CurrentXP, state.XPToNextLevel)
	}
}
