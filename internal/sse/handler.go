package sse

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HeaderLastEventID is sent by browsers when an EventSource reconnects
const HeaderLastEventID = "Last-Event-ID"

var keepaliveFrame = []byte(": keepalive\n\n")

// Handler streams hub events to one HTTP client. The stream can be narrowed
// with ?types=a,b and ?user_id=; a Last-Event-ID header replays missed events.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := http.NewResponseController(w)

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")

		eventTypes := parseTypes(r.URL.Query().Get(QueryParamTypes))
		userID := r.URL.Query().Get(QueryParamUserID)

		client := hub.Register(eventTypes, userID)
		log := slog.With("client_id", client.ID)
		log.Info(LogMsgClientConnected,
			"filters", eventTypes,
			"user_id", userID,
			"total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected,
				"dropped", client.Dropped(),
				"total_clients", hub.ClientCount())
		}()

		send := func(frame []byte) bool {
			_ = rc.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if _, err := w.Write(frame); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			if err := rc.Flush(); err != nil {
				if errors.Is(err, http.ErrNotSupported) {
					log.Error(LogMsgStreamingUnsupported)
				}
				return false
			}
			return true
		}
		sendEvent := func(e Event) bool {
			frame, err := FormatSSEMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, "event_type", e.Type, "error", err)
				return true
			}
			return send(frame)
		}

		hello := Event{
			Type:      EventTypeConnected,
			UserID:    userID,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID, "filters": eventTypes},
		}
		if !sendEvent(hello) {
			return
		}
		for _, missed := range hub.Replay(client, r.Header.Get(HeaderLastEventID)) {
			if !sendEvent(missed) {
				return
			}
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, ok := <-client.EventChannel:
				if !ok || !sendEvent(e) {
					return
				}
			case <-ticker.C:
				if !send(keepaliveFrame) {
					return
				}
			}
		}
	}
}

func parseTypes(raw string) []string {
	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}
