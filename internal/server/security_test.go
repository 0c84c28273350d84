package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/HunterSystem_Go/internal/metrics"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time { return c.t }

func newTestGuard(policy GuardPolicy, proxies ...string) (*ClientGuard, *stepClock) {
	clock := &stepClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	g := NewClientGuard(policy, proxies)
	g.now = clock.now
	g.windowStart = clock.t
	return g, clock
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"
	guard, _ := newTestGuard(DefaultGuardPolicy())
	h := AuthMiddleware(apiKey, guard)(okHandler)

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    int
	}{
		{"api key header", "/api/v1/hunter/profile", map[string]string{HeaderAPIKey: apiKey}, http.StatusOK},
		{"bearer token", "/api/v1/hunter/profile", map[string]string{HeaderAuthorization: "Bearer " + apiKey}, http.StatusOK},
		{"lowercase bearer", "/events", map[string]string{HeaderAuthorization: "bearer " + apiKey}, http.StatusOK},
		{"wrong key", "/api/v1/hunter/xp", map[string]string{HeaderAPIKey: "nope"}, http.StatusUnauthorized},
		{"basic auth is not a key", "/api/v1/hunter/xp", map[string]string{HeaderAuthorization: "Basic " + apiKey}, http.StatusUnauthorized},
		{"missing key", "/events", nil, http.StatusUnauthorized},
		{"healthz is public", "/healthz", nil, http.StatusOK},
		{"metrics is public", "/metrics", nil, http.StatusOK},
		{"version is public", "/version", nil, http.StatusOK},
		{"swagger is public", "/swagger/index.html", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthMiddleware_CountsRejections(t *testing.T) {
	guard, _ := newTestGuard(DefaultGuardPolicy())
	h := AuthMiddleware("secret-key", guard)(okHandler)
	before := testutil.ToFloat64(metrics.HTTPRequestsRejected.WithLabelValues(metrics.ReasonAuth))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hunter/xp", nil)
	req.RemoteAddr = "203.0.113.9:5000"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequestsRejected.WithLabelValues(metrics.ReasonAuth)))
	assert.Equal(t, 1, guard.clients["203.0.113.9"].failedAuth)
}

func TestRateLimitMiddleware(t *testing.T) {
	guard, clock := newTestGuard(GuardPolicy{Window: time.Minute, MaxRequests: 3, FailedAuthAlert: 5})
	h := RateLimitMiddleware(guard)(okHandler)

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/hunter/profile", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("192.168.1.100:1234").Code, "request %d", i)
	}

	blocked := send("192.168.1.100:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get(HeaderRetryAfter))

	assert.Equal(t, http.StatusOK, send("192.168.1.101:1234").Code, "other clients keep their budget")

	clock.t = clock.t.Add(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send("192.168.1.100:1234").Code, "a new window resets the budget")
}

func TestClientGuard_ClientIP(t *testing.T) {
	guard, _ := newTestGuard(DefaultGuardPolicy(), "10.0.0.0/8", "192.0.2.7", "not-an-ip")
	assert.Len(t, guard.proxies, 2)

	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"direct client", "198.51.100.4:443", "", "198.51.100.4"},
		{"untrusted hop ignored", "198.51.100.4:443", "1.2.3.4", "198.51.100.4"},
		{"trusted cidr", "10.1.2.3:443", "1.2.3.4, 203.0.113.5", "203.0.113.5"},
		{"trusted single address", "192.0.2.7:443", "203.0.113.6", "203.0.113.6"},
		{"trusted without header", "10.1.2.3:443", "", "10.1.2.3"},
		{"unparseable remote", "garbage", "203.0.113.5", "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, guard.ClientIP(req))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get("Referrer-Policy"))
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hunter/xp", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "HunterClient/1.0")

	loggingMiddleware(okHandler).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, LogMsgRequestHeaders)
	assert.Contains(t, out, "HunterClient/1.0")
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "mytoken")
}

func TestLoggingMiddleware_SkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	loggingMiddleware(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Empty(t, buf.String())
}
