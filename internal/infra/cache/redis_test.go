package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/finance-dashboard/backend/config"
)

func TestNewRedisConnection(t *testing.T) {
	srv := miniredis.RunT(t)

	r, err := NewRedisConnection(&config.RedisConfig{URL: "redis://" + srv.Addr() + "/0"})
	if err != nil {
		t.Fatalf("NewRedisConnection() error = %v", err)
	}
	if !r.HealthCheck() {
		t.Error("expected healthy connection")
	}

	srv.Close()
	if r.HealthCheck() {
		t.Error("expected unhealthy connection after server stops")
	}
	_ = r.Close()
}

func TestNewRedisConnection_InvalidURL(t *testing.T) {
	if _, err := NewRedisConnection(&config.RedisConfig{URL: "://nope"}); err == nil {
		t.Error("expected error for invalid url")
	}
}
