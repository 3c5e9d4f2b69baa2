// Command api serves the finance dashboard analytics, goals and report endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finance-dashboard/backend/config"
	"github.com/finance-dashboard/backend/internal/infra/cache"
	"github.com/finance-dashboard/backend/internal/infra/db"
	"github.com/finance-dashboard/backend/internal/infra/dependency"
	"github.com/finance-dashboard/backend/internal/integration/persistence/model"
)

const (
	shutdownTimeout          = 10 * time.Second
	rateLimitCleanupInterval = time.Hour
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel,
	})))

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited properly")
}

func run(cfg *config.Config) error {
	slog.Info("Starting Finance Dashboard API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer closeWith("database", database.Close)
	}

	// Without Redis the rate limiters keep their counters in memory.
	redisCache, err := cache.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, rate limits are kept in memory", "error", err)
		redisCache = nil
	} else {
		defer closeWith("redis", redisCache.Close)
	}

	injector, err := dependency.NewInjector(cfg, database, redisCache)
	if err != nil {
		return fmt.Errorf("wire dependencies: %w", err)
	}
	if injector.EmailWorker != nil {
		go injector.EmailWorker.Start(ctx)
	}
	go injector.RateLimitCounters.RunCleanup(ctx, rateLimitCleanupInterval)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}

// openDatabase returns nil without an error when PostgreSQL is unreachable; goal
// and report routes are then left out.
func openDatabase(cfg *config.Config) (*db.Database, error) {
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database", "error", err)
		return nil, nil
	}

	if err := database.AutoMigrate(&model.GoalModel{}, &model.EmailQueueModel{}); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("Database migrations completed successfully")
	return database, nil
}

func closeWith(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		slog.Error("Failed to close connection", "resource", name, "error", err)
	}
}
