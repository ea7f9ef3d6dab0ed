package ratelimit

import (
	"context"
	"sync"
	"time"
)

// maxSleepIncrement bounds each wait slice so Acquire stays responsive
// to context cancellation.
const maxSleepIncrement = time.Second

// RateLimiter is a token-bucket limiter. A burst of up to Capacity requests
// is allowed, after which requests are granted at RefillPerSecond.
type RateLimiter struct {
	mu              sync.Mutex
	capacity        float64
	refillPerSecond float64
	tokens          float64
	lastRefill      time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) bool
}

// NewRateLimiter creates a limiter with the given burst capacity and refill
// rate in tokens per second. The bucket starts full.
func NewRateLimiter(capacity int, refillPerSecond float64) *RateLimiter {
	return &RateLimiter{
		capacity:        float64(capacity),
		refillPerSecond: refillPerSecond,
		tokens:          float64(capacity),
		lastRefill:      time.Now(),
		now:             time.Now,
		sleep:           sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// refill replenishes tokens from elapsed time. Caller must hold mu.
func (rl *RateLimiter) refill() {
	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.refillPerSecond)
	rl.lastRefill = now
}

// TryAcquire takes a token without blocking. It reports whether one was
// available.
func (rl *RateLimiter) TryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// Acquire takes a token, blocking up to timeout for one to become available.
// It returns false when the predicted wait would exceed the remaining timeout
// or the context is cancelled; no token is consumed in either case.
func (rl *RateLimiter) Acquire(ctx context.Context, timeout time.Duration) bool {
	start := rl.now()
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens >= 1 {
			rl.tokens--
			rl.mu.Unlock()
			return true
		}
		wait := time.Duration((1 - rl.tokens) / rl.refillPerSecond * float64(time.Second))
		rl.mu.Unlock()

		elapsed := rl.now().Sub(start)
		if elapsed+wait > timeout {
			return false
		}
		if !rl.sleep(ctx, min(wait, maxSleepIncrement)) {
			return false
		}
	}
}
