package ports

import (
	"context"
	"time"
)

// RateDecision is the outcome of one rate limit check.
type RateDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts requests per client key within a rolling window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
