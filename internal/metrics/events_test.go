package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	levelUps := testutil.ToFloat64(LevelUps)
	levels := testutil.ToFloat64(LevelsGained)
	dailyClaims := testutil.ToFloat64(RewardsClaimed.WithLabelValues(string(domain.RewardKindDaily)))
	weeklyResets := testutil.ToFloat64(LedgerResets.WithLabelValues(PeriodWeekly))

	result := domain.AddXPResult{OldLevel: 3, NewLevel: 6, LevelsGained: 3, XPAdded: 900}
	require.NoError(t, bus.Publish(ctx, event.NewLevelUpEvent("u1", result, "test")))
	require.NoError(t, bus.Publish(ctx, event.NewRewardClaimedEvent("u1", domain.RewardKindDaily, 1, 50)))
	require.NoError(t, bus.Publish(ctx, event.NewLedgerResetEvent("u1", true, true, time.Now())))

	assert.Equal(t, levelUps+1, testutil.ToFloat64(LevelUps))
	assert.Equal(t, levels+3, testutil.ToFloat64(LevelsGained))
	assert.Equal(t, dailyClaims+1, testutil.ToFloat64(RewardsClaimed.WithLabelValues(string(domain.RewardKindDaily))))
	assert.Equal(t, weeklyResets+1, testutil.ToFloat64(LedgerResets.WithLabelValues(PeriodWeekly)))
}

func TestEventMetricsCollector_BadPayloadIsSwallowed(t *testing.T) {
	errs := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.HunterLevelUp)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{Type: event.HunterLevelUp, Payload: "nope"})
	assert.NoError(t, err)
	assert.Equal(t, errs+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.HunterLevelUp))))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/hunters/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/hunters/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hunters/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/hunters/{id}", "418")))
}
