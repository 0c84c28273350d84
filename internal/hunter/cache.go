package hunter

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/HunterSystem_Go/internal/domain"
	"github.com/osse101/HunterSystem_Go/internal/metrics"
)

// SessionSchemaVersion is the current version of the cached session shape.
// Increment this when the cached data structure changes to auto-invalidate old entries
const SessionSchemaVersion = "1.0"

// session is one hunter's in-memory state
type session struct {
	version        string
	snapshot       domain.Snapshot
	storedRevision int64 // revision last confirmed by the store, 0 if never saved
	detached       bool  // the store was unreachable when the session was loaded
	cachedAt       time.Time
}

// sessionCache keeps hunter sessions in an LRU with time-based expiration.
// It also tracks how many cached sessions are detached.
type sessionCache struct {
	lru *expirable.LRU[string, *session]
}

// newSessionCache creates a new session cache with the specified size and TTL
func newSessionCache(size int, ttl time.Duration) *sessionCache {
	onEvict := func(_ string, s *session) {
		if s.detached {
			metrics.DetachedSessions.Dec()
		}
	}
	return &sessionCache{
		lru: expirable.NewLRU[string, *session](size, onEvict, ttl),
	}
}

// Get retrieves a session. Entries with a stale schema version are dropped.
func (c *sessionCache) Get(userID string) (*session, bool) {
	s, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if s.version != SessionSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return s, true
}

// Set stores a session with the current schema version
func (c *sessionCache) Set(userID string, s *session) {
	s.version = SessionSchemaVersion
	s.cachedAt = time.Now()

	// replacing an entry does not fire the eviction callback
	if prev, ok := c.lru.Peek(userID); ok && prev.detached {
		metrics.DetachedSessions.Dec()
	}
	if s.detached {
		metrics.DetachedSessions.Inc()
	}
	c.lru.Add(userID, s)
}

// Invalidate removes a session
func (c *sessionCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}

// Keys returns the user IDs of every live session
func (c *sessionCache) Keys() []string {
	return c.lru.Keys()
}

// Clear removes all sessions
func (c *sessionCache) Clear() {
	c.lru.Purge()
}
