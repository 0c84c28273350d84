package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameHTTPRequestsRejected = "http_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Hunter metric names
const (
	MetricNameXPAwarded            = "hunter_xp_awarded_total"
	MetricNameLevelUps             = "hunter_level_ups_total"
	MetricNameLevelsGained         = "hunter_levels_gained_total"
	MetricNameRewardsClaimed       = "hunter_rewards_claimed_total"
	MetricNameAchievementsUnlocked = "hunter_achievements_unlocked_total"
	MetricNameLedgerResets         = "hunter_ledger_resets_total"
	MetricNameSnapshotSaves        = "hunter_snapshot_saves_total"
	MetricNameSnapshotLoads        = "hunter_snapshot_loads_total"
	MetricNameDetachedSessions     = "hunter_detached_sessions"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRequestsRejected = "Requests turned away before reaching a handler, by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Hunter metric help text
const (
	HelpTextXPAwarded            = "Total XP applied to hunters"
	HelpTextLevelUps             = "Number of actions that gained at least one level"
	HelpTextLevelsGained         = "Total levels gained"
	HelpTextRewardsClaimed       = "Total rewards claimed by kind"
	HelpTextAchievementsUnlocked = "Total achievements unlocked"
	HelpTextLedgerResets         = "Total ledger resets by period"
	HelpTextSnapshotSaves        = "Snapshot save attempts by result"
	HelpTextSnapshotLoads        = "Snapshot loads by result"
	HelpTextDetachedSessions     = "Sessions currently running without persistence"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelKind        = "kind"
	LabelSource      = "source"
	LabelAchievement = "achievement"
	LabelPeriod      = "period"
	LabelResult      = "result"
	LabelReason      = "reason"
)

// Label values
const (
	ResultOK          = "ok"
	ResultConflict    = "conflict"
	ResultError       = "error"
	ResultMissing     = "missing"
	ResultMalformed   = "malformed"
	ResultUnavailable = "unavailable"
	PeriodDaily       = "daily"
	PeriodWeekly      = "weekly"
	UnmatchedRoute    = "unmatched"
	ReasonAuth        = "unauthorized"
	ReasonRateLimit   = "rate_limited"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP latency, in seconds
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload type"
)
