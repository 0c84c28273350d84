package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HunterSystem_Go/internal/database/memory"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) (http.Handler, *memory.SnapshotRepository) {
	t.Helper()
	repo := memory.NewSnapshotRepository()
	now := time.Date(2026, 10, 18, 20, 30, 0, 0, time.UTC)

	svc, err := hunter.NewService(repo, nil, nil, hunter.Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })

	return NewRouter(testAPIKey, nil, Dependencies{Store: repo, Hunters: svc}), repo
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hunter/profile?user_id=hunter-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HunterFlow(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/hunter/profile?user_id=hunter-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile hunter.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, 12, profile.Snapshot.UserData.Level)
	assert.Equal(t, 7, profile.Today)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/hunter/xp", map[string]interface{}{"user_id": "hunter-1", "amount": 300})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"xp_awarded":300`)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/hunter/daily-reward/claim", map[string]interface{}{"user_id": "hunter-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/hunter/daily-reward/claim", map[string]interface{}{"user_id": "hunter-1"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/hunter/daily-reward/claim", map[string]interface{}{"user_id": "hunter-1", "day": 9})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stored, err := repo.Load(context.Background(), "hunter-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(2), stored.Revision)
}

func TestRouter_ReadyzUsesStore(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_AdminRoutesOnlyWithResetRunner(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/admin/hunter/reconcile", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
