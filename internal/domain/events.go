package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "hunter.level_up")
const (
	// EventTypeLevelUp is published once per action that gained at least one level.
	// The UI layer renders the celebration.
	EventTypeLevelUp = "hunter.level_up"

	// EventTypeRewardClaimed is published when a quest or calendar reward is claimed
	EventTypeRewardClaimed = "hunter.reward_claimed"

	// EventTypeQuestProgress is published when progress is contributed to a quest
	EventTypeQuestProgress = "hunter.quest_progress"

	// EventTypeAchievementUnlocked is published for every newly unlocked achievement
	EventTypeAchievementUnlocked = "hunter.achievement_unlocked"

	// EventTypeLedgerReset is published when a daily or weekly boundary resets a ledger
	EventTypeLedgerReset = "hunter.ledger_reset"
)
