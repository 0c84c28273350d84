package hunter

import "time"

// Service defaults
const (
	DefaultSaveRetries          = 3
	DefaultCacheSize            = 1000
	DefaultCacheTTL             = 30 * time.Minute
	DefaultReconcileConcurrency = 4
)

// XP sources recorded on level-up events and metrics
const (
	SourceManual       = "manual"
	SourceDailyQuest   = "daily_quest"
	SourceWeeklyQuest  = "weekly_quest"
	SourceCalendarDay  = "calendar_day"
	SourceUnknownQuest = "quest"
)

// Log messages
const (
	LogMsgSnapshotLoaded       = "Loaded hunter snapshot"
	LogMsgSnapshotSeeded       = "No stored snapshot, seeding hunter"
	LogMsgSnapshotMalformed    = "Stored snapshot is malformed, seeding hunter"
	LogMsgSessionDetached      = "Snapshot store unavailable, running detached"
	LogMsgSessionReattached    = "Snapshot store reachable again, stored snapshot restored"
	LogMsgSnapshotSaveFailed   = "Failed to save hunter snapshot, keeping in-memory state"
	LogMsgSnapshotConflict     = "Snapshot revision conflict, reloading"
	LogMsgConflictsExhausted   = "Snapshot revision conflict persisted after retries"
	LogMsgLedgerReset          = "Reward ledger reset for new cycle"
	LogMsgLevelUp              = "Hunter leveled up"
	LogMsgReconcileFailed      = "Failed to reconcile hunter"
	LogMsgReconcileComplete    = "Reconciled hunters"
	LogMsgBonusAchievementGone = "Bonus achievement missing from snapshot, restoring from seed"
)
