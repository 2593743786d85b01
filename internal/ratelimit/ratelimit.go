package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter gates public operations per caller. Allow returns false when the
// caller has exhausted its budget for the current window.
type Limiter interface {
	Allow(ctx context.Context, operation, identity string) (bool, error)
}

type memoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket
}

type bucket struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter returns a fixed-window in-process limiter. Suitable for
// single-instance deployments and tests; multi-instance deployments should
// use the Redis limiter.
func NewMemoryLimiter(limit int, window time.Duration) Limiter {
	return &memoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (l *memoryLimiter) Allow(ctx context.Context, operation, identity string) (bool, error) {
	key := operation + ":" + identity
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	if b.count >= l.limit {
		return false, nil
	}
	b.count++
	return true, nil
}
