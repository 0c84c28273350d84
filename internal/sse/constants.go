package sse

import (
	"time"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// Buffer sizes
const (
	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ReplayBufferSize is how many recent events are kept for Last-Event-ID replay
	ReplayBufferSize = 100
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// Event types for SSE
const (
	// EventTypeLevelUp is sent once per action that gained at least one level
	EventTypeLevelUp = domain.EventTypeLevelUp

	// EventTypeRewardClaimed is sent when a quest or calendar day is claimed
	EventTypeRewardClaimed = domain.EventTypeRewardClaimed

	// EventTypeAchievementUnlocked is sent when an achievement unlocks
	EventTypeAchievementUnlocked = domain.EventTypeAchievementUnlocked

	// EventTypeLedgerReset is sent when a new daily or weekly cycle clears quests
	EventTypeLedgerReset = domain.EventTypeLedgerReset

	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"
)

// Query parameters accepted by the stream endpoint
const (
	QueryParamTypes  = "types"
	QueryParamUserID = "user_id"
)

// Log messages
const (
	LogMsgClientConnected      = "SSE client connected"
	LogMsgClientDisconnected   = "SSE client disconnected"
	LogMsgEventBroadcast       = "Broadcasting SSE event"
	LogMsgEventDropped         = "SSE hub stopped, dropping event"
	LogMsgWriteError           = "Failed to write SSE event"
	LogMsgInvalidPayload       = "Invalid event payload for SSE"
	LogMsgSubscribed           = "SSE subscriber registered for event types"
	LogMsgStreamingUnsupported = "Response writer cannot flush, SSE unavailable"
)
