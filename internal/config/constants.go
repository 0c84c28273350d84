package config

import "time"

const (
	// Configuration file paths
	ConfigPathHunterSeed = "configs/hunter/seed.json"
)

// Defaults
const (
	DefaultLogDir           = "logs"
	DefaultSQLitePath       = "data/hunter.db"
	DefaultDeadLetterPath   = "logs/event_deadletter.jsonl"
	DefaultDBMaxConns       = 20
	DefaultDBMaxConnIdle    = 5 * time.Minute
	DefaultDBMaxConnLife    = 30 * time.Minute
	DefaultSessionCacheSize = 1000
	DefaultSessionCacheTTL  = 30 * time.Minute
	DefaultSaveRetries      = 3
	DefaultEventMaxRetries  = 5
	DefaultEventRetryDelay  = 2 * time.Second
)
