package cursetools

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket limiter that also honours server-sent
// X-RateLimit headers.
type RateLimiter struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	pauseUntil time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per interval.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
	}
}

// Wait blocks until a token is available or context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	pause := time.Until(r.pauseUntil)
	r.mu.Unlock()

	if pause > 0 {
		timer := time.NewTimer(pause)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return r.limiter.Wait(ctx)
}

// UpdateFromHeaders pauses the limiter until the advertised reset time when
// the server reports an exhausted budget.
func (r *RateLimiter) UpdateFromHeaders(headers http.Header) {
	remaining := headers.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}

	n, err := strconv.Atoi(remaining)
	if err != nil || n > 0 {
		return
	}

	reset, err := strconv.ParseInt(headers.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return
	}

	resetTime := time.Unix(reset, 0)
	r.mu.Lock()
	if resetTime.After(r.pauseUntil) {
		r.pauseUntil = resetTime
	}
	r.mu.Unlock()
}
