package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxUserIDLength = 100

func TestValidator_RewardKind(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"daily", false},
		{"weekly", false},
		{"calendar_day", false},
		{"WEEKLY", false},
		{"calendar", false},
		{"", true}, // required
		{"monthly", true},
		{"dialy", true},
	}

	for _, tt := range tests {
		t.Run("kind="+tt.kind, func(t *testing.T) {
			err := v.ValidateStruct(QuestRequest{UserID: "hunter-1", Kind: tt.kind, QuestID: 1})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_UserID(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		userID  string
		wantErr bool
	}{
		{"valid id", "hunter-1", false},
		{"one char", "a", false},
		{"exactly max length", strings.Repeat("a", maxUserIDLength), false},
		{"over max length", strings.Repeat("a", maxUserIDLength+1), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(AddXPRequest{UserID: tt.userID, Amount: 10})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError_UsesJSONNames(t *testing.T) {
	err := GetValidator().ValidateStruct(ContributeRequest{Kind: "monthly", UserID: "", QuestID: 0, Amount: -1})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"kind":     "Must be one of daily, weekly, calendar_day",
		"user_id":  "This field is required",
		"quest_id": "Must be greater than 0",
		"amount":   "Must be at least 0",
	}, FormatValidationError(err))

	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
	assert.Nil(t, FormatValidationError(nil))
}
