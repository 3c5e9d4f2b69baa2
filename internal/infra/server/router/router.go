// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-dashboard/backend/internal/integration/entrypoint/controller"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	analyticsController  *controller.AnalyticsController
	assistantController  *controller.AssistantController
	goalController       *controller.GoalController
	reportController     *controller.ReportController
	assistantRateLimiter *middleware.RateLimiter
	reportRateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	analyticsController *controller.AnalyticsController,
	assistantController *controller.AssistantController,
	goalController *controller.GoalController,
	reportController *controller.ReportController,
	assistantRateLimiter *middleware.RateLimiter,
	reportRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:     healthController,
		analyticsController:  analyticsController,
		assistantController:  assistantController,
		goalController:       goalController,
		reportController:     reportController,
		assistantRateLimiter: assistantRateLimiter,
		reportRateLimiter:    reportRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Analytics routes are stateless and need no owner
		if r.analyticsController != nil {
			analytics := v1.Group("/analytics")
			{
				analytics.POST("/classify", r.analyticsController.Classify)
				analytics.POST("/budget", r.analyticsController.Budget)
				analytics.POST("/overview", r.analyticsController.Overview)
				analytics.POST("/wellness", r.analyticsController.Wellness)
				analytics.POST("/context", r.analyticsController.Context)
			}
		}

		// Assistant routes (require owner, rate limited per owner)
		if r.assistantController != nil {
			assistant := v1.Group("/assistant")
			assistant.Use(middleware.RequireOwner())
			if r.assistantRateLimiter != nil {
				assistant.Use(r.assistantRateLimiter.Middleware())
			}
			{
				assistant.POST("/ask", r.assistantController.Ask)
			}
		}

		// Goal routes (require owner)
		if r.goalController != nil {
			goals := v1.Group("/goals")
			goals.Use(middleware.RequireOwner())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
			}
		}

		// Report routes (require owner, rate limited per owner)
		if r.reportController != nil {
			reports := v1.Group("/reports")
			reports.Use(middleware.RequireOwner())
			if r.reportRateLimiter != nil {
				reports.Use(r.reportRateLimiter.Middleware())
			}
			{
				reports.POST("/wellness", r.reportController.QueueWellnessReport)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
