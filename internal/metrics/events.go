package metrics

import (
	"context"

	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// EventMetricsCollector subscribes to hunter events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all hunter events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.HunterLevelUp,
		event.HunterRewardClaimed,
		event.HunterQuestProgress,
		event.HunterAchievementUnlocked,
		event.HunterLedgerReset,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.HunterLevelUp:
		payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt, err)
		}
		LevelUps.Inc()
		LevelsGained.Add(float64(payload.LevelsGained))

	case event.HunterRewardClaimed:
		payload, err := event.DecodePayload[event.RewardClaimedPayloadV1](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt, err)
		}
		RewardsClaimed.WithLabelValues(payload.Kind).Inc()

	case event.HunterAchievementUnlocked:
		payload, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt, err)
		}
		AchievementsUnlocked.WithLabelValues(payload.Key).Inc()

	case event.HunterLedgerReset:
		payload, err := event.DecodePayload[event.LedgerResetPayloadV1](evt.Payload)
		if err != nil {
			return e.unexpected(ctx, evt, err)
		}
		if payload.DailyReset {
			LedgerResets.WithLabelValues(PeriodDaily).Inc()
		}
		if payload.WeeklyReset {
			LedgerResets.WithLabelValues(PeriodWeekly).Inc()
		}
	}

	return nil
}

// unexpected logs and swallows a payload that could not be decoded, so that a bad
// payload never sends the event to the retry queue
func (e *EventMetricsCollector) unexpected(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
	return nil
}
