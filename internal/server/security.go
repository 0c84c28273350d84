package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/logger"
	"github.com/osse101/HunterSystem_Go/internal/metrics"
)

// GuardPolicy bounds how much traffic a single client may send per window
type GuardPolicy struct {
	Window          time.Duration
	MaxRequests     int
	FailedAuthAlert int
}

// DefaultGuardPolicy allows a busy reader page plus SSE reconnects with room to spare
func DefaultGuardPolicy() GuardPolicy {
	return GuardPolicy{
		Window:          GuardWindow,
		MaxRequests:     GuardMaxRequests,
		FailedAuthAlert: GuardFailedAuthAlert,
	}
}

type clientCounters struct {
	requests   int
	failedAuth int
}

// ClientGuard counts requests and failed logins per client IP in fixed windows
type ClientGuard struct {
	policy  GuardPolicy
	proxies []netip.Prefix
	now     func() time.Time

	mu          sync.Mutex
	clients     map[string]*clientCounters
	windowStart time.Time
}

// NewClientGuard builds a guard. trustedProxies may hold single addresses or CIDR ranges;
// entries that parse as neither are logged and skipped.
func NewClientGuard(policy GuardPolicy, trustedProxies []string) *ClientGuard {
	g := &ClientGuard{
		policy:  policy,
		proxies: parseProxies(trustedProxies),
		now:     time.Now,
		clients: make(map[string]*clientCounters),
	}
	g.windowStart = g.now()
	return g
}

func parseProxies(raw []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(raw))
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		slog.Warn(LogMsgBadTrustedProxy, "entry", entry)
	}
	return prefixes
}

// counters returns the entry for ip, starting a new window first when the old one has passed.
// Caller must hold the mutex.
func (g *ClientGuard) counters(ip string) *clientCounters {
	if now := g.now(); now.Sub(g.windowStart) > g.policy.Window {
		g.clients = make(map[string]*clientCounters)
		g.windowStart = now
	}
	c, ok := g.clients[ip]
	if !ok {
		c = &clientCounters{}
		g.clients[ip] = c
	}
	return c
}

// Allow records a request and reports whether ip is still under its budget
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.counters(ip)
	c.requests++
	if c.requests <= g.policy.MaxRequests {
		return true
	}

	// first rejection, then every GuardAlertEvery-th
	if (c.requests-g.policy.MaxRequests)%GuardAlertEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", c.requests)
	}
	return false
}

// RecordFailedAuth counts a rejected API key and alerts once the threshold is reached
func (g *ClientGuard) RecordFailedAuth(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.counters(ip)
	c.failedAuth++
	if c.failedAuth >= g.policy.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", c.failedAuth)
	}
}

// ClientIP returns the caller's address. X-Forwarded-For is only honoured when the
// connection comes from a trusted proxy, and then only its last hop is used.
func (g *ClientGuard) ClientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}

	addr, err := netip.ParseAddr(remote)
	if err != nil || !g.trusted(addr.Unmap()) {
		return remote
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func (g *ClientGuard) trusted(addr netip.Addr) bool {
	for _, prefix := range g.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// apiKeyFromRequest accepts X-API-Key or an Authorization bearer token
func apiKeyFromRequest(r *http.Request) string {
	if key := r.Header.Get(HeaderAPIKey); key != "" {
		return key
	}
	auth := r.Header.Get(HeaderAuthorization)
	if len(auth) > len(BearerPrefix) && strings.EqualFold(auth[:len(BearerPrefix)], BearerPrefix) {
		return strings.TrimSpace(auth[len(BearerPrefix):])
	}
	return ""
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthMiddleware rejects requests to non-public paths that do not carry the API key
func AuthMiddleware(apiKey string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := apiKeyFromRequest(r)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := guard.ClientIP(r)
				guard.RecordFailedAuth(ip)
				metrics.HTTPRequestsRejected.WithLabelValues(metrics.ReasonAuth).Inc()

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware answers 429 once a client has spent its budget for the window
func RateLimitMiddleware(guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(guard.ClientIP(r)) {
				metrics.HTTPRequestsRejected.WithLabelValues(metrics.ReasonRateLimit).Inc()
				w.Header().Set(HeaderRetryAfter, retryAfterSeconds(guard.policy.Window))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(window time.Duration) string {
	return strconv.Itoa(int(window.Seconds()))
}

// RequestSizeLimitMiddleware caps request bodies
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the browser hardening headers on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
