package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Profiles run to a few KB; buffers that grew past maxPooledBuffer are dropped
// instead of pinning the memory in the pool.
const (
	initialBufferSize = 4 << 10
	maxPooledBuffer   = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

// respondJSON encodes payload before touching the response, so an encoding failure
// still produces a clean 500 instead of a half-written body.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			bufferPool.Put(buf)
		}
	}()
	buf.Reset()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service error and sends the mapped status and message.
// Expected outcomes (4xx) are logged at info, everything else at error.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "status", status)
	} else {
		log.Info(opName+" rejected", "error", err, "status", status)
	}

	respondError(w, status, message)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."

	// Ledger messages
	ErrMsgRewardNotFoundError  = "Reward not found"
	ErrMsgNotCompletedError    = "That reward is not complete yet"
	ErrMsgAlreadyClaimedError  = "That reward has already been claimed"
	ErrMsgConcurrentWriteError = "Your hunter was updated elsewhere. Please try again."

	// Loadout messages
	ErrMsgSkillMaxedError      = "That skill is already at max level"
	ErrMsgNotEnoughPointsError = "Not enough skill points"
	ErrMsgTitleLockedError     = "That title is locked"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgRewardNotFoundError
	case errors.Is(err, domain.ErrNotCompleted):
		return http.StatusConflict, ErrMsgNotCompletedError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrSkillMaxed):
		return http.StatusConflict, ErrMsgSkillMaxedError
	case errors.Is(err, domain.ErrInsufficientSkillPoints):
		return http.StatusConflict, ErrMsgNotEnoughPointsError
	case errors.Is(err, domain.ErrTitleLocked):
		return http.StatusForbidden, ErrMsgTitleLockedError
	case errors.Is(err, domain.ErrSnapshotConflict):
		return http.StatusConflict, ErrMsgConcurrentWriteError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrPersistenceUnavailable), errors.Is(err, hunter.ErrShuttingDown):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Default to generic message so internal details never reach the client
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
