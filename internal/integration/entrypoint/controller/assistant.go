package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-dashboard/backend/internal/application/usecase/insight"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/dto"
)

// AssistantController handles the LLM assistant endpoint.
type AssistantController struct {
	askUseCase *insight.AskAssistantUseCase
}

// NewAssistantController creates a new assistant controller instance.
func NewAssistantController(askUseCase *insight.AskAssistantUseCase) *AssistantController {
	return &AssistantController{askUseCase: askUseCase}
}

// Ask handles POST /assistant/ask requests.
func (c *AssistantController) Ask(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.AskAssistantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAnalyticsPayload),
		})
		return
	}

	dataset, ok := toDataset(ctx, &req.AnalyticsRequest)
	if !ok {
		return
	}

	output, err := c.askUseCase.Execute(ctx.Request.Context(), insight.AskAssistantInput{
		OwnerID:         ownerID,
		Question:        req.Question,
		Dataset:         dataset,
		Region:          req.Region,
		LastUpdated:     req.ParsedLastUpdated(),
		IncludeWellness: req.IncludeWellness,
	})
	if err != nil {
		c.handleAssistantError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAskAssistantResponse(output))
}

// handleAssistantError handles assistant errors and returns appropriate HTTP responses.
func (c *AssistantController) handleAssistantError(ctx *gin.Context, err error) {
	var insightErr *domainerror.InsightError
	if errors.As(err, &insightErr) {
		status := getStatusCodeForInsightError(insightErr.Code)
		if status >= http.StatusInternalServerError {
			slog.WarnContext(ctx.Request.Context(), "Assistant request failed",
				"code", insightErr.Code,
				"error", insightErr.Err,
			)
		}
		ctx.JSON(status, dto.AssistantErrorResponse{
			Error:     insightErr.Message,
			Code:      string(insightErr.Code),
			Retryable: insightErr.Retryable,
		})
		return
	}

	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		handleAnalyticsError(ctx, err)
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Assistant request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForInsightError maps insight error codes to HTTP status codes.
func getStatusCodeForInsightError(code domainerror.InsightErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidQuestion:
		return http.StatusBadRequest
	case domainerror.ErrCodeAssistantNotConfigured,
		domainerror.ErrCodeAssistantUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeAssistantRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeAssistantTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
