package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-dashboard/backend/internal/application/adapter"
)

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimitStore counts requests in Redis with INCR and a window TTL.
type RedisRateLimitStore struct {
	client *redis.Client
}

// NewRedisRateLimitStore creates a new Redis-backed rate limit store.
func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// Allow increments the counter for key and reports whether it is within limit.
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (adapter.RateLimitDecision, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return adapter.RateLimitDecision{}, fmt.Errorf("rate limit counter: %w", err)
	}

	ttl, err := s.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return adapter.RateLimitDecision{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	// A key without expiry starts a new window.
	if ttl < 0 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return adapter.RateLimitDecision{}, fmt.Errorf("rate limit expiry: %w", err)
		}
		ttl = window
	}

	return decide(int(count), limit, ttl, window), nil
}

// MemoryRateLimitStore is a process-local fixed-window counter.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// NewMemoryRateLimitStore creates a new in-process rate limit store.
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Allow records a request for key.
func (s *MemoryRateLimitStore) Allow(_ context.Context, key string, limit int, window time.Duration) (adapter.RateLimitDecision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		entry = &rateLimitEntry{resetTime: now.Add(window)}
		s.entries[key] = entry
	}
	entry.attempts++

	return decide(entry.attempts, limit, entry.resetTime.Sub(now), window), nil
}

// Cleanup removes expired entries.
func (s *MemoryRateLimitStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RunCleanup calls Cleanup every interval until ctx is cancelled.
func (s *MemoryRateLimitStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// FallbackRateLimitStore uses the primary store and switches to the fallback when it errors.
type FallbackRateLimitStore struct {
	primary  adapter.RateLimitStore
	fallback adapter.RateLimitStore
}

// NewFallbackRateLimitStore creates a store that degrades to fallback on primary errors.
func NewFallbackRateLimitStore(primary, fallback adapter.RateLimitStore) *FallbackRateLimitStore {
	return &FallbackRateLimitStore{primary: primary, fallback: fallback}
}

// Allow consults the primary store, then the fallback if the primary is unreachable.
func (s *FallbackRateLimitStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (adapter.RateLimitDecision, error) {
	if s.primary != nil {
		decision, err := s.primary.Allow(ctx, key, limit, window)
		if err == nil {
			return decision, nil
		}
		slog.WarnContext(ctx, "Rate limit store unavailable, using in-process counter", "error", err)
	}
	return s.fallback.Allow(ctx, key, limit, window)
}

func decide(count, limit int, ttl, window time.Duration) adapter.RateLimitDecision {
	if ttl <= 0 {
		ttl = window
	}
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	d := adapter.RateLimitDecision{Allowed: count <= limit, Remaining: remaining}
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.RateLimitStore = (*RedisRateLimitStore)(nil)
	_ adapter.RateLimitStore = (*MemoryRateLimitStore)(nil)
	_ adapter.RateLimitStore = (*FallbackRateLimitStore)(nil)
)
