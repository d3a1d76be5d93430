// Package ratelimit paces outbound Riot API calls. The budget is a flat
// calls-per-window allowance; spreading it evenly means one call every
// window/maxCalls. This approximates a token bucket closely enough for a
// single sequential caller.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// New builds a limiter allowing maxCalls per window, with no bursting.
func New(maxCalls int, window time.Duration) *Limiter {
	interval := window / time.Duration(maxCalls)
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		delay:   interval,
	}
}

// Delay returns the pacing interval between consecutive calls.
func (l *Limiter) Delay() time.Duration {
	return l.delay
}

// Wait blocks until the next call is allowed or ctx is cancelled. Call it
// before every outbound API request.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
