package httpclients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"courtside.ai/data-service/app/utils/ratelimit"
	"resty.dev/v3"
)

// ErrRateBudgetExhausted reports that the local token budget ran out before
// the acquisition timeout. It is terminal for the call: no retries follow.
var ErrRateBudgetExhausted = errors.New("rate limiter budget exhausted")

// CallFunc performs one upstream request attempt.
type CallFunc func(ctx context.Context) (*resty.Response, error)

// ResilientCaller wraps upstream calls with rate-limiter acquisition and
// exponential backoff on throttling or transient failures. It never panics;
// callers always receive an explicit (response, error) outcome.
type ResilientCaller struct {
	limiter        *ratelimit.RateLimiter
	attempts       int
	initialBackoff time.Duration
	acquireTimeout time.Duration

	sleep func(ctx context.Context, d time.Duration) bool
}

type ResilientCallerConfig struct {
	Attempts       int
	InitialBackoff time.Duration
	AcquireTimeout time.Duration
}

func (c ResilientCallerConfig) normalize() ResilientCallerConfig {
	if c.Attempts <= 0 {
		c.Attempts = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = time.Second
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = 30 * time.Second
	}
	return c
}

func NewResilientCaller(limiter *ratelimit.RateLimiter, config ResilientCallerConfig) *ResilientCaller {
	config = config.normalize()
	return &ResilientCaller{
		limiter:        limiter,
		attempts:       config.Attempts,
		initialBackoff: config.InitialBackoff,
		acquireTimeout: config.AcquireTimeout,
		sleep:          sleepContext,
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

// Do runs call with up to the configured number of attempts. Each attempt
// first acquires a rate-limiter token; failing that, the call aborts
// immediately with ErrRateBudgetExhausted. Throttling responses and transport
// errors are retried after a doubling backoff; the final attempt's failure is
// returned as-is.
func (rc *ResilientCaller) Do(ctx context.Context, call CallFunc) (*resty.Response, error) {
	backoff := rc.initialBackoff
	var lastErr error

	for attempt := 1; attempt <= rc.attempts; attempt++ {
		if !rc.limiter.Acquire(ctx, rc.acquireTimeout) {
			// A cancelled caller is not a budget problem.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrRateBudgetExhausted
		}

		resp, err := call(ctx)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode() == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("upstream throttled (status %d)", resp.StatusCode())
		case resp.IsSuccess():
			return resp, nil
		default:
			lastErr = fmt.Errorf("upstream returned status %d", resp.StatusCode())
		}

		if attempt == rc.attempts {
			break
		}
		if !rc.sleep(ctx, backoff) {
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, lastErr
}
