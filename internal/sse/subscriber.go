package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/HunterSystem_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relevant event types.
// Quest progress is not streamed; it is not a celebration.
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.HunterLevelUp, s.handleLevelUp)
	s.bus.Subscribe(event.HunterRewardClaimed, s.handleRewardClaimed)
	s.bus.Subscribe(event.HunterAchievementUnlocked, s.handleAchievementUnlocked)
	s.bus.Subscribe(event.HunterLedgerReset, s.handleLedgerReset)

	slog.Info(LogMsgSubscribed,
		"types", []string{
			string(event.HunterLevelUp),
			string(event.HunterRewardClaimed),
			string(event.HunterAchievementUnlocked),
			string(event.HunterLedgerReset),
		})
}

// handleLevelUp broadcasts level up celebrations
func (s *Subscriber) handleLevelUp(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	source := payload.Source
	if src, ok := evt.GetMetadataValue(event.MetadataKeySource).(string); ok && source == "" {
		source = src
	}

	s.broadcast(EventTypeLevelUp, payload.UserID, LevelUpPayload{
		UserID:       payload.UserID,
		OldLevel:     payload.OldLevel,
		NewLevel:     payload.NewLevel,
		LevelsGained: payload.LevelsGained,
		Source:       source,
	})
	return nil
}

// handleRewardClaimed broadcasts reward claims
func (s *Subscriber) handleRewardClaimed(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.RewardClaimedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.broadcast(EventTypeRewardClaimed, payload.UserID, RewardClaimedPayload{
		UserID:    payload.UserID,
		Kind:      payload.Kind,
		RewardID:  payload.RewardID,
		XPAwarded: payload.XPAwarded,
	})
	return nil
}

// handleAchievementUnlocked broadcasts achievement unlocks
func (s *Subscriber) handleAchievementUnlocked(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.broadcast(EventTypeAchievementUnlocked, payload.UserID, AchievementUnlockedPayload{
		UserID: payload.UserID,
		Key:    payload.Key,
		Title:  payload.Title,
		Rarity: payload.Rarity,
	})
	return nil
}

// handleLedgerReset broadcasts cycle resets
func (s *Subscriber) handleLedgerReset(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LedgerResetPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}

	s.broadcast(EventTypeLedgerReset, payload.UserID, LedgerResetPayload{
		UserID:      payload.UserID,
		DailyReset:  payload.DailyReset,
		WeeklyReset: payload.WeeklyReset,
	})
	return nil
}

func (s *Subscriber) broadcast(eventType, userID string, payload interface{}) {
	if !s.hub.Broadcast(eventType, userID, payload) {
		slog.Warn(LogMsgEventDropped, "event_type", eventType, "user_id", userID)
		return
	}
	slog.Debug(LogMsgEventBroadcast, "event_type", eventType, "user_id", userID)
}
