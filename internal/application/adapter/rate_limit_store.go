package adapter

import (
	"context"
	"time"
)

// RateLimitDecision is the outcome of consuming one request from a quota.
type RateLimitDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	// Allow records a request for key and reports whether it fits within limit per window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error)
}
