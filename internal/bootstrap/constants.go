package bootstrap

import "time"

// ServiceName tags every log line
const ServiceName = "hunter-system"

// File permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Session log files: one per process start, the newest LogFileRetentionCount are kept
// once LogFileRetentionLimit is reached
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionLimit  = 10
	LogFileRetentionCount  = 9
)

// Event publisher defaults, used when the config leaves them at zero
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Wrapped error prefixes
const (
	ErrMsgCreateLogsDir       = "failed to create logs directory"
	ErrMsgOpenLogFile         = "failed to open log file"
	ErrMsgCreateDeadLetterDir = "failed to create dead-letter directory"
	ErrMsgCreatePublisher     = "failed to create resilient publisher"
	ErrMsgFailedMigrate       = "failed to run migrations"
	ErrMsgFailedConnectStore  = "failed to connect to snapshot store"
	ErrMsgFailedLoadSeed      = "failed to load hunter seed"
)

// Startup log messages
const (
	LogMsgLoggingInitialized         = "Logging initialized"
	LogMsgStartingApp                = "Starting hunter system"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgConfigWarning              = "Configuration warning"
	LogMsgFailedDeleteOldLog         = "Failed to delete old log file"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgDeadLettersPending         = "Undelivered events from a previous run"
	LogMsgDeadLetterUnreadable       = "Could not read dead-letter file"
	LogMsgStoreInitialized           = "Snapshot store initialized"
	LogMsgSeedLoaded                 = "Hunter seed loaded"
	LogMsgSeedMissing                = "Hunter seed file not found, using built-in defaults"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
)

// Shutdown log messages
const (
	LogMsgShuttingDownServer    = "Shutting down..."
	LogMsgComponentStopped      = "Component stopped"
	LogMsgServerStopped         = "Server stopped"
	LogMsgServiceShutdownFailed = " shutdown failed"

	ServiceNameHunter = "hunter"
)
