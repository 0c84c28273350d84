package hunter

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/HunterSystem_Go/internal/metrics"
)

func TestSessionCache_GetSet(t *testing.T) {
	c := newSessionCache(10, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)

	sess := &session{storedRevision: 3}
	c.Set("a", sess)

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(3), got.storedRevision)

	c.Invalidate("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestSessionCache_StaleVersionIsDropped(t *testing.T) {
	c := newSessionCache(10, time.Minute)
	sess := &session{}
	c.Set("a", sess)
	sess.version = "0.9"

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Empty(t, c.Keys())
}

func TestSessionCache_TracksDetachedSessions(t *testing.T) {
	before := testutil.ToFloat64(metrics.DetachedSessions)
	c := newSessionCache(2, time.Minute)

	c.Set("a", &session{})
	c.Set("b", &session{detached: true})
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DetachedSessions))

	c.Set("b", &session{detached: true})
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DetachedSessions), "replacing must not double count")

	c.Set("c", &session{}) // evicts a
	c.Set("d", &session{}) // evicts b
	assert.Equal(t, before, testutil.ToFloat64(metrics.DetachedSessions))

	c.Set("e", &session{detached: true})
	c.Clear()
	assert.Equal(t, before, testutil.ToFloat64(metrics.DetachedSessions))
}
