package domain

import "time"

// ResetStatus describes the reset worker's schedule and its last run
type ResetStatus struct {
	LastRunAt       *time.Time `json:"last_run_at,omitempty"`
	LastResetCount  int        `json:"last_reset_count"`
	LastError       string     `json:"last_error,omitempty"`
	NextDailyReset  time.Time  `json:"next_daily_reset"`
	NextWeeklyReset time.Time  `json:"next_weekly_reset"`
	Timezone        string     `json:"timezone"`
}
