// Package ratelimit provides a per-key sliding-window rate limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows at most max hits per key within window.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a Limiter and starts a goroutine that drops expired keys once
// per window. Call Stop to end it.
func New(max int, window time.Duration) *Limiter {
	return newWithClock(max, window, time.Now)
}

func newWithClock(max int, window time.Duration, now func() time.Time) *Limiter {
	l := &Limiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    now,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := l.now().Add(-l.window)
			for key := range l.hits {
				l.prune(key, cutoff)
			}
			l.mu.Unlock()
		}
	}
}

// prune drops hits older than cutoff. Unknown keys are left out of the map
// and keys with no remaining hits are removed. Callers hold l.mu.
func (l *Limiter) prune(key string, cutoff time.Time) []time.Time {
	hits, ok := l.hits[key]
	if !ok {
		return nil
	}
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.hits, key)
		return nil
	}
	l.hits[key] = kept
	return kept
}

// Allow records a hit for key if it is still under the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if len(l.prune(key, now.Add(-l.window))) >= l.max {
		return false
	}
	l.hits[key] = append(l.hits[key], now)
	return true
}

// Check reports whether key is under the limit without recording a hit.
func (l *Limiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(key, l.now().Add(-l.window))) < l.max
}

// Record registers a hit for key regardless of the limit.
func (l *Limiter) Record(key string) {
	l.mu.Lock()
	l.hits[key] = append(l.hits[key], l.now())
	l.mu.Unlock()
}
