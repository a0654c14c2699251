package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, max int, window time.Duration) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := newWithClock(max, window, clock.Now)
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiterBlocksAfterMax(t *testing.T) {
	l, _ := newTestLimiter(t, 2, time.Minute)
	ip := "203.0.113.10"

	assert.True(t, l.Allow(ip), "first attempt")
	assert.True(t, l.Allow(ip), "second attempt")
	assert.False(t, l.Allow(ip), "third attempt should be blocked")
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(t, 1, time.Minute)
	ip := "203.0.113.20"

	assert.True(t, l.Allow(ip))
	assert.False(t, l.Allow(ip))

	clock.Advance(61 * time.Second)
	assert.True(t, l.Allow(ip), "attempt after window")
}

func TestLimiterIsPerKey(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)

	assert.True(t, l.Allow("203.0.113.30"))
	assert.True(t, l.Allow("203.0.113.31"))
	assert.False(t, l.Allow("203.0.113.30"))
}

func TestLimiterCheckDoesNotRecord(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ip := "203.0.113.40"

	assert.True(t, l.Check(ip))
	assert.True(t, l.Check(ip))

	l.Record(ip)
	assert.False(t, l.Check(ip))
}

func TestLimiterCheckUnknownKeyStoresNothing(t *testing.T) {
	l, clock := newTestLimiter(t, 1, time.Minute)

	for i := range 50 {
		assert.True(t, l.Check(fmt.Sprintf("198.51.100.%d", i)))
	}
	assert.Empty(t, l.hits)

	l.Record("198.51.100.1")
	require.Len(t, l.hits, 1)

	clock.Advance(2 * time.Minute)
	assert.True(t, l.Check("198.51.100.1"))
	assert.Empty(t, l.hits, "expired keys are dropped")
}

func TestLimiterStopIsIdempotent(t *testing.T) {
	l := New(1, time.Millisecond)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
