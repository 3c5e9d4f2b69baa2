// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-dashboard/backend/config"
	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/application/usecase/dashboard"
	"github.com/finance-dashboard/backend/internal/application/usecase/goal"
	"github.com/finance-dashboard/backend/internal/application/usecase/insight"
	"github.com/finance-dashboard/backend/internal/application/usecase/report"
	"github.com/finance-dashboard/backend/internal/domain/analytics"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/infra/cache"
	"github.com/finance-dashboard/backend/internal/infra/db"
	"github.com/finance-dashboard/backend/internal/infra/server/router"
	"github.com/finance-dashboard/backend/internal/integration/adapters"
	"github.com/finance-dashboard/backend/internal/integration/email"
	"github.com/finance-dashboard/backend/internal/integration/email/templates"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/controller"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-dashboard/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Router      *router.Router
	EmailWorker *email.Worker // Nil without a database

	// RateLimitCounters holds the in-memory quota counters, used alone without
	// Redis and as the fallback when Redis errors.
	RateLimitCounters *adapters.MemoryRateLimitStore
}

// Option overrides a collaborator, mainly for tests.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock pins the reference time used for analytics windows and goal plans.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewInjector creates a new dependency injector with all dependencies wired.
// database and redisCache may be nil; the routes that need them are then left out.
func NewInjector(cfg *config.Config, database *db.Database, redisCache *cache.Redis, opts ...Option) (*Injector, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create the analytics engine
	rules, err := analytics.LoadRuleSet(cfg.Analytics.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics rules: %w", err)
	}
	engine := analytics.NewEngine(rules)

	defaultRegion, ok := entity.ParseRegion(cfg.Analytics.DefaultRegion)
	if !ok {
		slog.Warn("Unknown default region, using AU", "region", cfg.Analytics.DefaultRegion)
		defaultRegion = entity.DefaultRegion
	}
	dashboardOpts := dashboard.Options{MaxRecords: cfg.Analytics.MaxRecords, Now: o.now}

	// Create dashboard use cases
	classifyUseCase := dashboard.NewClassifyTransactionsUseCase(engine, dashboardOpts)
	budgetUseCase := dashboard.NewGetBudgetSummaryUseCase(engine, dashboardOpts)
	overviewUseCase := dashboard.NewGetAccountOverviewUseCase(dashboardOpts)
	wellnessUseCase := dashboard.NewGetWellnessUseCase(engine, dashboardOpts)
	contextUseCase := dashboard.NewBuildFinanceContextUseCase(engine, dashboardOpts, defaultRegion)

	// Create assistant use case
	geminiService := adapters.NewGeminiService(adapters.GeminiConfig{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
		Timeout:     cfg.Gemini.Timeout,
	})
	if !geminiService.IsAvailable() {
		slog.Warn("GEMINI_API_KEY not set, assistant requests will be rejected")
	}
	askUseCase := insight.NewAskAssistantUseCase(contextUseCase, wellnessUseCase, geminiService)

	// Create rate limit store, Redis backed when available
	memoryCounters := adapters.NewMemoryRateLimitStore()
	var rateLimitStore adapter.RateLimitStore = memoryCounters
	if redisCache != nil {
		rateLimitStore = adapters.NewFallbackRateLimitStore(
			adapters.NewRedisRateLimitStore(redisCache.Client()),
			rateLimitStore,
		)
	}
	assistantRateLimiter := middleware.NewRateLimiter(rateLimitStore, "assistant", cfg.RateLimit.AssistantRequests, cfg.RateLimit.Window)
	reportRateLimiter := middleware.NewRateLimiter(rateLimitStore, "report", cfg.RateLimit.ReportRequests, cfg.RateLimit.Window)

	// Create controllers
	dbHealthChecker := func() bool { return false }
	redisHealthChecker := func() bool { return false }
	if database != nil {
		dbHealthChecker = database.HealthCheck
	}
	if redisCache != nil {
		redisHealthChecker = redisCache.HealthCheck
	}
	healthController := controller.NewHealthController(dbHealthChecker, redisHealthChecker)

	analyticsController := controller.NewAnalyticsController(
		classifyUseCase,
		budgetUseCase,
		overviewUseCase,
		wellnessUseCase,
		contextUseCase,
	)
	assistantController := controller.NewAssistantController(askUseCase)

	injector := &Injector{Config: cfg, RateLimitCounters: memoryCounters}

	// Goals and reports need the database
	var goalController *controller.GoalController
	var reportController *controller.ReportController
	if database != nil {
		goalRepo := persistence.NewGoalRepository(database.DB())
		emailQueueRepo := persistence.NewEmailQueueRepository(database.DB())

		clock := goal.Clock(o.now)
		goalController = controller.NewGoalController(
			goal.NewCreateGoalUseCase(goalRepo, clock),
			goal.NewGetGoalUseCase(goalRepo, clock),
			goal.NewListGoalsUseCase(goalRepo, clock),
			goal.NewUpdateGoalUseCase(goalRepo, clock),
			goal.NewDeleteGoalUseCase(goalRepo),
		)

		emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL, o.now)
		reportController = controller.NewReportController(report.NewQueueWellnessReportUseCase(wellnessUseCase, emailService))

		switch {
		case !cfg.Email.WorkerEnabled:
			slog.Info("Email worker disabled")
		case cfg.Email.ResendAPIKey == "":
			slog.Warn("RESEND_API_KEY not set, queued reports will stay pending")
		default:
			renderer, err := templates.NewRenderer()
			if err != nil {
				return nil, fmt.Errorf("failed to load email templates: %w", err)
			}
			sender, err := email.NewResendClient(email.ResendConfig{
				APIKey:    cfg.Email.ResendAPIKey,
				FromName:  cfg.Email.FromName,
				FromEmail: cfg.Email.FromEmail,
				BaseURL:   cfg.Email.ResendBaseURL,
			})
			if err != nil {
				return nil, err
			}
			injector.EmailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
				Now:          o.now,
			})
		}
	} else {
		slog.Warn("Goal and report routes not initialized due to missing database connection")
	}

	injector.Router = router.NewRouter(
		healthController,
		analyticsController,
		assistantController,
		goalController,
		reportController,
		assistantRateLimiter,
		reportRateLimiter,
	)

	return injector, nil
}
