package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/osse101/HunterSystem_Go/internal/logger"
)

// ValidationErrorResponse lists the fields that failed validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes exactly one JSON object from the body into req and
// runs the struct validators on it. Unknown fields are rejected so a misspelt
// "quest_id" fails loudly instead of claiming quest 0.
//
// On error the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, opName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		msg := ErrMsgInvalidRequest
		if errors.Is(err, io.EOF) {
			msg = ErrMsgEmptyBody
		}
		log.Info(opName+" request rejected", "error", err)
		respondError(w, http.StatusBadRequest, msg)
		return err
	}
	if dec.More() {
		err := errors.New("trailing data after request object")
		log.Info(opName+" request rejected", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgTrailingData)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetQueryParam returns a required query parameter. When it is missing a 400 has
// already been written and ok is false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		logger.FromContext(r.Context()).Info("Missing query parameter", "param", name)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
		return "", false
	}
	return value, true
}

// LogRequestFields logs decoded request fields at debug level
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}
