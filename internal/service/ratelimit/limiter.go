package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a keyed token bucket. The insights endpoint uses it to keep a
// burst of dashboard refreshes from fanning out into paid model calls.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	tokens   float64
	capacity float64
	rate     float64
	last     time.Time
}

func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consumes one token from key's bucket, creating it full on first use.
// capacity is the burst size, rate the refill in tokens per second.
func (l *Limiter) Allow(key string, capacity, rate float64) bool {
	if capacity < 1 {
		capacity = 1
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, rate: rate, last: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * b.rate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
