package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// DeadLetterSchemaVersion versions the JSON lines written by DeadLetterWriter
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one undeliverable event, one JSON object per line
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	UserID        string    `json:"user_id,omitempty"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSON lines file
type DeadLetterWriter struct {
	mu  sync.Mutex
	out io.WriteCloser
	now func() time.Time
}

// NewDeadLetterWriter opens (or creates) the dead-letter file for appending
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter file %s: %w", path, err)
	}
	return &DeadLetterWriter{out: f, now: time.Now}, nil
}

// Write records an event together with how often delivery was tried
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Event:         evt,
		UserID:        payloadUserID(evt.Payload),
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	entry.Timestamp = w.now().UTC()
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode dead letter for %s: %w", evt.Type, err)
	}

	logger.Warn(LogMsgEventDeadLettered,
		"event_type", evt.Type,
		"user_id", entry.UserID,
		"attempts", attempts,
		"error", entry.LastError)

	_, err = w.out.Write(append(line, '\n'))
	return err
}

// Close closes the underlying file
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Close()
}

// ReadDeadLetters parses a dead-letter stream. Payloads come back as generic JSON
// values; DecodePayload turns them into the typed payload again.
func ReadDeadLetters(r io.Reader) ([]DeadLetterEntry, error) {
	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return entries, fmt.Errorf("dead letter line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// payloadUserID pulls the hunter a payload belongs to, when it has one
func payloadUserID(payload interface{}) string {
	switch p := payload.(type) {
	case LevelUpPayloadV1:
		return p.UserID
	case RewardClaimedPayloadV1:
		return p.UserID
	case QuestProgressPayloadV1:
		return p.UserID
	case AchievementUnlockedPayloadV1:
		return p.UserID
	case LedgerResetPayloadV1:
		return p.UserID
	}
	return ""
}
