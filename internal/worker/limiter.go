package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles how fast batch sessions start
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing sessionsPerSecond starts with the
// given burst. A non-positive rate disables throttling.
func NewLimiter(sessionsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Limit(sessionsPerSecond)
	if sessionsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Wait blocks until a session may start or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a session may start now without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Burst returns the configured burst size
func (l *Limiter) Burst() int {
	return l.limiter.Burst()
}
