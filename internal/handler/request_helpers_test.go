package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAndValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		fields  []string
	}{
		{name: "valid", body: `{"user_id":"hunter-1","skill_id":2}`},
		{name: "empty body", body: ``, wantErr: ErrMsgEmptyBody},
		{name: "broken json", body: `{"user_id":`, wantErr: ErrMsgInvalidRequest},
		{name: "unknown field", body: `{"user_id":"hunter-1","skillId":2}`, wantErr: ErrMsgInvalidRequest},
		{name: "two objects", body: `{"user_id":"a","skill_id":1}{"user_id":"b","skill_id":1}`, wantErr: ErrMsgTrailingData},
		{name: "validation", body: `{"user_id":"","skill_id":0}`, wantErr: ErrMsgInvalidRequestSummary, fields: []string{"user_id", "skill_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/hunter/skills/upgrade", strings.NewReader(tt.body))

			var req SkillRequest
			err := DecodeAndValidateRequest(r, w, &req, OpUpgrade)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "hunter-1", req.UserID)
				assert.Equal(t, 2, req.SkillID)
				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ValidationErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantErr, resp.Error)
			for _, f := range tt.fields {
				assert.Contains(t, resp.Fields, f)
			}
		})
	}
}

func TestGetQueryParam(t *testing.T) {
	w := httptest.NewRecorder()
	value, ok := GetQueryParam(httptest.NewRequest(http.MethodGet, "/hunter/profile?user_id=hunter-1", nil), w, "user_id")
	assert.True(t, ok)
	assert.Equal(t, "hunter-1", value)

	w = httptest.NewRecorder()
	_, ok = GetQueryParam(httptest.NewRequest(http.MethodGet, "/hunter/profile", nil), w, "user_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing user_id query parameter"}`, w.Body.String())
}
