package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Reward ledger errors
	ErrMsgNotFound       = "reward not found"
	ErrMsgNotCompleted   = "reward not completed"
	ErrMsgAlreadyClaimed = "reward already claimed"

	// Progression errors
	ErrMsgConfiguration           = "invalid progression configuration"
	ErrMsgSkillMaxed              = "skill is already at max level"
	ErrMsgInsufficientSkillPoints = "insufficient skill points"
	ErrMsgTitleLocked             = "title is locked"

	// Persistence errors
	ErrMsgPersistenceUnavailable = "persistence unavailable"
	ErrMsgMalformedSnapshot      = "malformed snapshot"
	ErrMsgSnapshotConflict       = "snapshot revision conflict"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Reward ledger errors
	ErrNotFound       = errors.New(ErrMsgNotFound)
	ErrNotCompleted   = errors.New(ErrMsgNotCompleted)
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)

	// Progression errors
	ErrConfiguration           = errors.New(ErrMsgConfiguration)
	ErrSkillMaxed              = errors.New(ErrMsgSkillMaxed)
	ErrInsufficientSkillPoints = errors.New(ErrMsgInsufficientSkillPoints)
	ErrTitleLocked             = errors.New(ErrMsgTitleLocked)

	// Persistence errors
	ErrPersistenceUnavailable = errors.New(ErrMsgPersistenceUnavailable)
	ErrMalformedSnapshot      = errors.New(ErrMsgMalformedSnapshot)
	ErrSnapshotConflict       = errors.New(ErrMsgSnapshotConflict)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// MalformedSnapshotError reports a stored document that exists but cannot be decoded.
// Revision is the stored revision, so the row can be overwritten at Revision+1.
type MalformedSnapshotError struct {
	UserID   string
	Revision int64
	Cause    error
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("snapshot for user %s at revision %d: %v", e.UserID, e.Revision, e.Cause)
}

// Unwrap exposes the cause, which always wraps ErrMalformedSnapshot
func (e *MalformedSnapshotError) Unwrap() error {
	return e.Cause
}

// NewMalformedSnapshotError builds a MalformedSnapshotError whose cause wraps ErrMalformedSnapshot
func NewMalformedSnapshotError(userID string, revision int64, cause error) *MalformedSnapshotError {
	if !errors.Is(cause, ErrMalformedSnapshot) {
		cause = fmt.Errorf("%w: %v", ErrMalformedSnapshot, cause)
	}
	return &MalformedSnapshotError{UserID: userID, Revision: revision, Cause: cause}
}
