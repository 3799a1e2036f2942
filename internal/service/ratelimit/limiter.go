// Package ratelimit implements keyed token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// pruneEvery bounds how many Allow calls pass between sweeps of idle buckets.
const pruneEvery = 1024

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter holds one token bucket per key. A nil Limiter, or one built with
// capacity <= 0, admits everything.
type Limiter struct {
	mu         sync.Mutex
	m          map[string]*bucket
	capacity   float64
	refillRate float64 // tokens per second
	now        func() time.Time
	calls      int
}

func New(capacity int, refillPerSec float64) *Limiter {
	return &Limiter{
		m:          make(map[string]*bucket),
		capacity:   float64(capacity),
		refillRate: refillPerSec,
		now:        time.Now,
	}
}

// PerMinute builds a single-key style limiter admitting n requests per minute
// with a burst of one.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		return New(0, 0)
	}
	return New(1, float64(n)/60)
}

func (l *Limiter) disabled() bool {
	return l == nil || l.capacity <= 0
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	if l.disabled() {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%pruneEvery == 0 {
		l.prune(now)
	}

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.m[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * l.refillRate
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets that would be full again; they are indistinguishable
// from new ones.
func (l *Limiter) prune(now time.Time) {
	if l.refillRate <= 0 {
		return
	}
	full := time.Duration(l.capacity / l.refillRate * float64(time.Second))
	for k, b := range l.m {
		if now.Sub(b.last) >= full {
			delete(l.m, k)
		}
	}
}
