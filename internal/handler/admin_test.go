package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

type MockResetRunner struct {
	mock.Mock
}

func (m *MockResetRunner) RunNow(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockResetRunner) Status() domain.ResetStatus {
	return m.Called().Get(0).(domain.ResetStatus)
}

func TestHandleReconcile_Success(t *testing.T) {
	runner := &MockResetRunner{}
	h := NewAdminHunterHandler(runner)
	runner.On("RunNow", mock.Anything).Return(3, nil)

	w := httptest.NewRecorder()
	h.HandleReconcile(w, httptest.NewRequest(http.MethodPost, "/admin/hunter/reconcile", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"hunters_reset":3`)
	runner.AssertExpectations(t)
}

func TestHandleReconcile_Failure(t *testing.T) {
	runner := &MockResetRunner{}
	h := NewAdminHunterHandler(runner)
	runner.On("RunNow", mock.Anything).Return(0, domain.ErrPersistenceUnavailable)

	w := httptest.NewRecorder()
	h.HandleReconcile(w, httptest.NewRequest(http.MethodPost, "/admin/hunter/reconcile", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleGetResetStatus(t *testing.T) {
	runner := &MockResetRunner{}
	h := NewAdminHunterHandler(runner)
	next := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	runner.On("Status").Return(domain.ResetStatus{NextDailyReset: next, NextWeeklyReset: next, Timezone: "UTC"})

	w := httptest.NewRecorder()
	h.HandleGetResetStatus(w, httptest.NewRequest(http.MethodGet, "/admin/hunter/reset-status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"next_daily_reset":"2026-10-19T00:00:00Z"`)
	assert.Contains(t, w.Body.String(), `"timezone":"UTC"`)
}
