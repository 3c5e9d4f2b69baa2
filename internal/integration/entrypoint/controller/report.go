package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-dashboard/backend/internal/application/usecase/report"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/dto"
)

// ReportController handles emailed report endpoints.
type ReportController struct {
	queueUseCase *report.QueueWellnessReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(queueUseCase *report.QueueWellnessReportUseCase) *ReportController {
	return &ReportController{queueUseCase: queueUseCase}
}

// QueueWellnessReport handles POST /reports/wellness requests.
func (c *ReportController) QueueWellnessReport(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.WellnessReportRequest
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
	region, _ := req.ParsedRegion()

	output, err := c.queueUseCase.Execute(ctx.Request.Context(), report.QueueWellnessReportInput{
		OwnerID:        ownerID,
		RecipientEmail: req.Email,
		RecipientName:  req.Name,
		Region:         entity.Region(region),
		Dataset:        dataset,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.ToWellnessReportResponse(output))
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodeInvalidRecipient {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		handleAnalyticsError(ctx, err)
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Failed to queue wellness report", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to queue report",
	})
}
