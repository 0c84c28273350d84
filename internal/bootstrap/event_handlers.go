package bootstrap

import (
	"log/slog"

	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/metrics"
	"github.com/osse101/HunterSystem_Go/internal/sse"
)

// EventHandlerDependencies are the sinks attached to the bus; SSEHub may be nil
type EventHandlerDependencies struct {
	EventBus event.Bus
	SSEHub   *sse.Hub
}

// RegisterEventHandlers attaches the metrics collector and, when a hub is
// given, the SSE bridge to the bus
func RegisterEventHandlers(deps EventHandlerDependencies) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.SSEHub == nil {
		return
	}
	sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)
}
