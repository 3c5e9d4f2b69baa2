package dependency

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"

	"github.com/finance-dashboard/backend/config"
	"github.com/finance-dashboard/backend/internal/infra/cache"
	"github.com/finance-dashboard/backend/internal/infra/db"
	"github.com/finance-dashboard/backend/internal/integration/persistence/model"
)

const analyticsBody = `{"as_of":"2025-06-30","transactions":[{"id":"1","description":"Salary","amount":4000,"date":"2025-06-10"}]}`

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Email.WorkerEnabled = false
	cfg.Database.MaxOpenConns = 1
	return cfg
}

func serve(t *testing.T, h http.Handler, method, path, owner, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewInjector_WithoutBackingStores(t *testing.T) {
	injector, err := NewInjector(testConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewInjector() error = %v", err)
	}
	if injector.EmailWorker != nil {
		t.Error("expected no email worker without a database")
	}
	if injector.RateLimitCounters == nil {
		t.Error("in-memory rate limit counters should always be wired for cleanup")
	}
	engine := injector.Router.Setup("test")

	if w := serve(t, engine, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
	if w := serve(t, engine, http.MethodPost, "/api/v1/analytics/budget", "", analyticsBody); w.Code != http.StatusOK {
		t.Errorf("budget status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := serve(t, engine, http.MethodGet, "/api/v1/goals", "owner-1", ""); w.Code != http.StatusNotFound {
		t.Errorf("goals status = %d, want 404 without a database", w.Code)
	}
	if w := serve(t, engine, http.MethodPost, "/api/v1/assistant/ask", "owner-1", `{"question":"hi"}`); w.Code != http.StatusServiceUnavailable {
		t.Errorf("assistant status = %d, want 503 without an API key", w.Code)
	}
}

func TestNewInjector_WithBackingStores(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.AssistantRequests = 1

	database, err := db.Open(sqlite.Open(":memory:"), &cfg.Database)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.AutoMigrate(&model.GoalModel{}, &model.EmailQueueModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	redisCache := cache.NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	injector, err := NewInjector(cfg, database, redisCache)
	if err != nil {
		t.Fatalf("NewInjector() error = %v", err)
	}
	engine := injector.Router.Setup("test")

	w := serve(t, engine, http.MethodPost, "/api/v1/goals", "owner-1", `{"name":"Car","target_amount":9000}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create goal status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := serve(t, engine, http.MethodGet, "/api/v1/goals", "owner-1", ""); w.Code != http.StatusOK {
		t.Errorf("list goals status = %d", w.Code)
	}

	report := `{"email":"jo@example.com","transactions":[{"description":"Salary","amount":4000,"date":"2025-06-10"}]}`
	if w := serve(t, engine, http.MethodPost, "/api/v1/reports/wellness", "owner-1", report); w.Code != http.StatusAccepted {
		t.Errorf("report status = %d, body = %s", w.Code, w.Body.String())
	}

	// The first request spends the quota even though the assistant is unconfigured.
	serve(t, engine, http.MethodPost, "/api/v1/assistant/ask", "owner-1", `{"question":"hi"}`)
	if w := serve(t, engine, http.MethodPost, "/api/v1/assistant/ask", "owner-1", `{"question":"hi"}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("assistant status = %d, want 429", w.Code)
	}
	if !mr.Exists("ratelimit:assistant:owner-1") {
		t.Errorf("expected a redis counter, keys = %v", mr.Keys())
	}
}
