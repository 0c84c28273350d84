package sse

import (
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent over SSE. IDs are increasing decimal
// sequence numbers so a reconnecting browser can resume with Last-Event-ID.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`

	seq uint64
}

// Client represents a connected SSE client
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events
	UserID       string          // empty means every hunter

	dropped atomic.Uint64
}

// Dropped returns how many events were skipped because the client fell behind
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

func (c *Client) wants(event Event) bool {
	if c.EventFilter != nil && !c.EventFilter[event.Type] {
		return false
	}
	return c.UserID == "" || c.UserID == event.UserID
}

// Hub fans events out to connected clients and keeps a short history for replay
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	history []Event
	seq     uint64
	closed  bool
	now     func() time.Time
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		history: make([]Event, 0, ReplayBufferSize),
		now:     time.Now,
	}
}

// Stop closes every client stream; later broadcasts are refused
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, client := range h.clients {
		close(client.EventChannel)
		delete(h.clients, id)
	}
}

// Register adds a client. eventTypes limits the stream to those types and
// userID to one hunter; empty values mean no restriction.
func (h *Hub) Register(eventTypes []string, userID string) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
		UserID:       userID,
	}
	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.EventChannel)
		return client
	}
	h.clients[client.ID] = client
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast sends an event to all interested clients. Slow clients skip the
// event instead of blocking the publisher. It reports false once the hub is stopped.
func (h *Hub) Broadcast(eventType, userID string, payload interface{}) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}

	h.seq++
	event := Event{
		ID:        strconv.FormatUint(h.seq, 10),
		Type:      eventType,
		UserID:    userID,
		Timestamp: h.now().Unix(),
		Payload:   payload,
		seq:       h.seq,
	}

	if len(h.history) == ReplayBufferSize {
		copy(h.history, h.history[1:])
		h.history = h.history[:ReplayBufferSize-1]
	}
	h.history = append(h.history, event)

	for _, client := range h.clients {
		if !client.wants(event) {
			continue
		}
		select {
		case client.EventChannel <- event:
		default:
			client.dropped.Add(1)
		}
	}
	return true
}

// Replay returns the buffered events after lastEventID that the client wants.
// An unparsable or unknown ID replays nothing.
func (h *Hub) Replay(client *Client, lastEventID string) []Event {
	after, err := strconv.ParseUint(lastEventID, 10, 64)
	if err != nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	var out []Event
	for _, e := range h.history {
		if e.seq > after && client.wants(e) {
			out = append(out, e)
		}
	}
	return out
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// FormatSSEMessage formats an event as an SSE frame
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(data)+len(event.ID)+len(event.Type)+24)
	if event.ID != "" {
		msg = append(msg, "id: "+event.ID+"\n"...)
	}
	msg = append(msg, "event: "+event.Type+"\n"...)
	msg = append(msg, "data: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg, nil
}
