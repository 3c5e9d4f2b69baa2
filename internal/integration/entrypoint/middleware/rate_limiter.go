package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/dto"
)

// RateLimiter enforces a fixed-window quota per owner (or client IP when no owner is set).
type RateLimiter struct {
	store  adapter.RateLimitStore
	scope  string
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new rate limiter. scope namespaces the counters per route group.
func NewRateLimiter(store adapter.RateLimitStore, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  store,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		key, ok := GetOwnerIDFromContext(c)
		if !ok {
			key = "ip:" + c.ClientIP()
		}

		decision, err := rl.store.Allow(c.Request.Context(), rl.scope+":"+key, rl.limit, rl.window)
		if err != nil {
			// Counting failures never block the request.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
