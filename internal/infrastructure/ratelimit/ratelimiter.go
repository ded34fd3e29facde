package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts requests per key inside a rolling window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
