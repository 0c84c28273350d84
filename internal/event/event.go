package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	ID       string      `json:"id"`
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Hunter event types
const (
	HunterLevelUp             Type = domain.EventTypeLevelUp
	HunterRewardClaimed       Type = domain.EventTypeRewardClaimed
	HunterQuestProgress       Type = domain.EventTypeQuestProgress
	HunterAchievementUnlocked Type = domain.EventTypeAchievementUnlocked
	HunterLedgerReset         Type = domain.EventTypeLedgerReset
)

// Typed event payloads for type safety

// LevelUpPayloadV1 is the typed payload for level up events. One event covers every
// level gained by a single action.
type LevelUpPayloadV1 struct {
	UserID       string           `json:"user_id"`
	OldLevel     int              `json:"old_level"`
	NewLevel     int              `json:"new_level"`
	LevelsGained int              `json:"levels_gained"`
	XPAdded      int64            `json:"xp_added"`
	Stats        map[string]int64 `json:"stats,omitempty"`
	Source       string           `json:"source,omitempty"`
	Timestamp    int64            `json:"timestamp"`
}

// RewardClaimedPayloadV1 is the typed payload for reward claim events
type RewardClaimedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	RewardID  int    `json:"reward_id"`
	XPAwarded int64  `json:"xp_awarded"`
	Timestamp int64  `json:"timestamp"`
}

// QuestProgressPayloadV1 is the typed payload for quest progress events
type QuestProgressPayloadV1 struct {
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	QuestID   int    `json:"quest_id"`
	Progress  int    `json:"progress"`
	Total     int    `json:"total"`
	Completed bool   `json:"completed"`
	Timestamp int64  `json:"timestamp"`
}

// AchievementUnlockedPayloadV1 is the typed payload for achievement unlock events
type AchievementUnlockedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Key       string `json:"key"`
	Title     string `json:"title"`
	Rarity    string `json:"rarity,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// LedgerResetPayloadV1 is the typed payload for ledger reset events
type LedgerResetPayloadV1 struct {
	UserID      string    `json:"user_id"`
	DailyReset  bool      `json:"daily_reset"`
	WeeklyReset bool      `json:"weekly_reset"`
	ResetTime   time.Time `json:"reset_time"`
}

// Type-safe event constructors

func newEvent(t Type, payload interface{}, metadata Metadata) Event {
	return Event{
		ID:       uuid.NewString(),
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: metadata,
	}
}

// NewLevelUpEvent creates a level up event for the result of one XP application
func NewLevelUpEvent(userID string, result domain.AddXPResult, source string) Event {
	return newEvent(HunterLevelUp, LevelUpPayloadV1{
		UserID:       userID,
		OldLevel:     result.OldLevel,
		NewLevel:     result.NewLevel,
		LevelsGained: result.LevelsGained,
		XPAdded:      result.XPAdded,
		Stats:        result.State.Clone().Stats,
		Source:       source,
		Timestamp:    time.Now().Unix(),
	}, Metadata{MetadataKeySource: source})
}

// NewRewardClaimedEvent creates a reward claimed event
func NewRewardClaimedEvent(userID string, kind domain.RewardKind, rewardID int, xp int64) Event {
	return newEvent(HunterRewardClaimed, RewardClaimedPayloadV1{
		UserID:    userID,
		Kind:      string(kind),
		RewardID:  rewardID,
		XPAwarded: xp,
		Timestamp: time.Now().Unix(),
	}, nil)
}

// NewQuestProgressEvent creates a quest progress event
func NewQuestProgressEvent(userID string, inst domain.RewardInstance) Event {
	return newEvent(HunterQuestProgress, QuestProgressPayloadV1{
		UserID:    userID,
		Kind:      string(inst.Kind),
		QuestID:   inst.ID,
		Progress:  inst.Progress,
		Total:     inst.Total,
		Completed: inst.Completed(),
		Timestamp: time.Now().Unix(),
	}, nil)
}

// NewAchievementUnlockedEvent creates an achievement unlocked event
func NewAchievementUnlockedEvent(userID string, a domain.Achievement) Event {
	return newEvent(HunterAchievementUnlocked, AchievementUnlockedPayloadV1{
		UserID:    userID,
		Key:       a.Key,
		Title:     a.Title,
		Rarity:    a.Rarity,
		Timestamp: time.Now().Unix(),
	}, nil)
}

// NewLedgerResetEvent creates a ledger reset event
func NewLedgerResetEvent(userID string, daily, weekly bool, resetTime time.Time) Event {
	return newEvent(HunterLedgerReset, LedgerResetPayloadV1{
		UserID:      userID,
		DailyReset:  daily,
		WeeklyReset: weekly,
		ResetTime:   resetTime,
	}, nil)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	// Handlers run synchronously, in subscription order.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// DecodePayload returns an event payload as T. In-process events already carry T; payloads
// read back from JSON (dead letters) go through a marshal round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var out T
	data, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf("encode %T payload: %w", input, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode payload as %T: %w", out, err)
	}
	return out, nil
}
