package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/finance-dashboard/backend/internal/application/adapter"
)

func TestRedisRateLimitStore_Allow(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		d, err := store.Allow(ctx, "owner-1", 2, time.Minute)
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !d.Allowed || d.Remaining != 2-i {
			t.Errorf("request %d: decision = %+v", i, d)
		}
	}

	d, err := store.Allow(ctx, "owner-1", 2, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if d.Allowed || d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("third request decision = %+v", d)
	}

	if d, _ := store.Allow(ctx, "owner-2", 2, time.Minute); !d.Allowed {
		t.Error("other owners have their own quota")
	}

	srv.FastForward(time.Minute + time.Second)
	if d, _ := store.Allow(ctx, "owner-1", 2, time.Minute); !d.Allowed {
		t.Error("quota should reset after the window")
	}
}

func TestMemoryRateLimitStore_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryRateLimitStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if d, _ := store.Allow(ctx, "k", 1, time.Minute); !d.Allowed {
		t.Fatal("first request should pass")
	}
	d, _ := store.Allow(ctx, "k", 1, time.Minute)
	if d.Allowed || d.RetryAfter != time.Minute {
		t.Errorf("second request decision = %+v", d)
	}

	now = now.Add(2 * time.Minute)
	store.Cleanup()
	if len(store.entries) != 0 {
		t.Errorf("expired entries should be removed, have %d", len(store.entries))
	}
	if d, _ := store.Allow(ctx, "k", 1, time.Minute); !d.Allowed {
		t.Error("request after window should pass")
	}
}

func TestMemoryRateLimitStore_RunCleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryRateLimitStore()
	store.now = func() time.Time { return now }
	store.entries["expired"] = &rateLimitEntry{attempts: 3, resetTime: now.Add(-time.Second)}
	store.entries["live"] = &rateLimitEntry{attempts: 1, resetTime: now.Add(time.Minute)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunCleanup(ctx, time.Millisecond)
		close(done)
	}()

	remaining := func() int {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.entries)
	}
	deadline := time.Now().Add(time.Second)
	for remaining() != 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
	if _, ok := store.entries["live"]; !ok || remaining() != 1 {
		t.Errorf("entries after cleanup = %v, want only the live window", store.entries)
	}
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (adapter.RateLimitDecision, error) {
	return adapter.RateLimitDecision{}, errors.New("dial tcp: connection refused")
}

func TestFallbackRateLimitStore_Allow(t *testing.T) {
	fallback := NewMemoryRateLimitStore()
	store := NewFallbackRateLimitStore(failingStore{}, fallback)

	d, err := store.Allow(context.Background(), "k", 1, time.Minute)
	if err != nil || !d.Allowed {
		t.Fatalf("decision = %+v, err = %v", d, err)
	}
	if d, _ := store.Allow(context.Background(), "k", 1, time.Minute); d.Allowed {
		t.Error("fallback counter should enforce the limit")
	}
}
