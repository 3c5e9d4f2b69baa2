// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// OwnerIDHeader carries the caller's opaque owner identifier.
	OwnerIDHeader = "X-Owner-ID"
	// OwnerIDKey is the context key for the request owner.
	OwnerIDKey ContextKey = "owner_id"

	maxOwnerIDLength = 128
)

// RequireOwner rejects requests without a usable X-Owner-ID header.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := strings.TrimSpace(c.GetHeader(OwnerIDHeader))
		if ownerID == "" || len(ownerID) > maxOwnerIDLength {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "X-Owner-ID header is required",
				Code:  string(domainerror.ErrCodeMissingOwnerID),
			})
			c.Abort()
			return
		}

		c.Set(string(OwnerIDKey), ownerID)
		c.Next()
	}
}

// GetOwnerIDFromContext retrieves the owner ID set by RequireOwner.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(OwnerIDKey))
	if !exists {
		return "", false
	}
	ownerID, ok := value.(string)
	return ownerID, ok && ownerID != ""
}
