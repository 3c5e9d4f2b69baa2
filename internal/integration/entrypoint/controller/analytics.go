package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-dashboard/backend/internal/application/usecase/dashboard"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles the stateless analytics endpoints.
type AnalyticsController struct {
	classifyUseCase *dashboard.ClassifyTransactionsUseCase
	budgetUseCase   *dashboard.GetBudgetSummaryUseCase
	overviewUseCase *dashboard.GetAccountOverviewUseCase
	wellnessUseCase *dashboard.GetWellnessUseCase
	contextUseCase  *dashboard.BuildFinanceContextUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	classifyUseCase *dashboard.ClassifyTransactionsUseCase,
	budgetUseCase *dashboard.GetBudgetSummaryUseCase,
	overviewUseCase *dashboard.GetAccountOverviewUseCase,
	wellnessUseCase *dashboard.GetWellnessUseCase,
	contextUseCase *dashboard.BuildFinanceContextUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		classifyUseCase: classifyUseCase,
		budgetUseCase:   budgetUseCase,
		overviewUseCase: overviewUseCase,
		wellnessUseCase: wellnessUseCase,
		contextUseCase:  contextUseCase,
	}
}

// Classify handles POST /analytics/classify requests.
func (c *AnalyticsController) Classify(ctx *gin.Context) {
	dataset, _, ok := bindAnalytics(ctx)
	if !ok {
		return
	}

	output, err := c.classifyUseCase.Execute(ctx.Request.Context(), dashboard.ClassifyTransactionsInput{
		Transactions: dataset.Transactions,
	})
	if err != nil {
		handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClassifyResponse(output))
}

// Budget handles POST /analytics/budget requests.
func (c *AnalyticsController) Budget(ctx *gin.Context) {
	dataset, _, ok := bindAnalytics(ctx)
	if !ok {
		return
	}

	output, err := c.budgetUseCase.Execute(ctx.Request.Context(), dashboard.GetBudgetSummaryInput{Dataset: dataset})
	if err != nil {
		handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(output.AsOf, output.Summary))
}

// Overview handles POST /analytics/overview requests.
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	dataset, _, ok := bindAnalytics(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.GetAccountOverviewInput{Dataset: dataset})
	if err != nil {
		handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountOverviewResponse(output.Overview))
}

// Wellness handles POST /analytics/wellness requests.
func (c *AnalyticsController) Wellness(ctx *gin.Context) {
	dataset, _, ok := bindAnalytics(ctx)
	if !ok {
		return
	}

	output, err := c.wellnessUseCase.Execute(ctx.Request.Context(), dashboard.GetWellnessInput{Dataset: dataset})
	if err != nil {
		handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWellnessResponse(output.AsOf, output.Metrics))
}

// Context handles POST /analytics/context requests.
func (c *AnalyticsController) Context(ctx *gin.Context) {
	dataset, req, ok := bindAnalytics(ctx)
	if !ok {
		return
	}

	output, err := c.contextUseCase.Execute(ctx.Request.Context(), dashboard.BuildFinanceContextInput{
		Dataset:     dataset,
		Region:      req.Region,
		LastUpdated: req.ParsedLastUpdated(),
	})
	if err != nil {
		handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinanceContextResponse(output.Context))
}

// bindAnalytics parses the request body and converts it into a dataset.
// It writes the error response itself and reports false when the request cannot proceed.
func bindAnalytics(ctx *gin.Context) (dashboard.Dataset, *dto.AnalyticsRequest, bool) {
	var req dto.AnalyticsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidAnalyticsPayload),
		})
		return dashboard.Dataset{}, nil, false
	}

	dataset, ok := toDataset(ctx, &req)
	return dataset, &req, ok
}

// toDataset validates the shared analytics fields of a bound request.
func toDataset(ctx *gin.Context, req *dto.AnalyticsRequest) (dashboard.Dataset, bool) {
	if _, err := req.ParsedRegion(); err != nil {
		handleAnalyticsError(ctx, err)
		return dashboard.Dataset{}, false
	}

	dataset, err := req.ToDataset()
	if err != nil {
		handleAnalyticsError(ctx, err)
		return dashboard.Dataset{}, false
	}
	return dataset, true
}

// handleAnalyticsError handles analytics errors and returns appropriate HTTP responses.
func handleAnalyticsError(ctx *gin.Context, err error) {
	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		ctx.JSON(getStatusCodeForAnalyticsError(analyticsErr.Code), dto.ErrorResponse{
			Error: analyticsErr.Message,
			Code:  string(analyticsErr.Code),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Analytics request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAnalyticsError maps analytics error codes to HTTP status codes.
func getStatusCodeForAnalyticsError(code domainerror.AnalyticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeTooManyRecords:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeInvalidAnalyticsPayload,
		domainerror.ErrCodeInvalidRegion,
		domainerror.ErrCodeInvalidAsOf:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
