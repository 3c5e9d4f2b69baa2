package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/usecase/goal"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/dto"
	"github.com/finance-dashboard/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	createUseCase *goal.CreateGoalUseCase
	getUseCase    *goal.GetGoalUseCase
	listUseCase   *goal.ListGoalsUseCase
	updateUseCase *goal.UpdateGoalUseCase
	deleteUseCase *goal.DeleteGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	listUseCase *goal.ListGoalsUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
) *GoalController {
	return &GoalController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /goals.
func (c *GoalController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	var req dto.CreateGoalRequest
	if !bindGoalBody(ctx, &req) {
		return
	}
	targetDate, ok := goalDate(ctx, req.TargetDate)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		OwnerID:       ownerID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount.Decimal,
		CurrentAmount: req.CurrentAmount.Decimal,
		TargetDate:    targetDate,
		Category:      budgetCategory(req.Category),
	})
	c.respond(ctx, http.StatusCreated, output, err)
}

// List handles GET /goals. An optional savings_capacity drives the projections.
func (c *GoalController) List(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}
	capacity, ok := parseSavingsCapacity(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		OwnerID:         ownerID,
		SavingsCapacity: capacity,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output))
}

func (c *GoalController) Get(ctx *gin.Context) {
	ownerID, goalID, ok := ownedGoal(ctx)
	if !ok {
		return
	}
	capacity, ok := parseSavingsCapacity(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		GoalID:          goalID,
		OwnerID:         ownerID,
		SavingsCapacity: capacity,
	})
	c.respond(ctx, http.StatusOK, output, err)
}

// Update handles PATCH /goals/:id. Absent fields are left unchanged.
func (c *GoalController) Update(ctx *gin.Context) {
	ownerID, goalID, ok := ownedGoal(ctx)
	if !ok {
		return
	}
	var req dto.UpdateGoalRequest
	if !bindGoalBody(ctx, &req) {
		return
	}
	targetDate, ok := goalDate(ctx, req.TargetDate)
	if !ok {
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:          goalID,
		OwnerID:         ownerID,
		Name:            req.Name,
		TargetDate:      targetDate,
		ClearTargetDate: req.ClearTargetDate,
		Category:        budgetCategory(req.Category),
	}
	if req.TargetAmount != nil {
		input.TargetAmount = &req.TargetAmount.Decimal
	}
	if req.CurrentAmount != nil {
		input.CurrentAmount = &req.CurrentAmount.Decimal
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	c.respond(ctx, http.StatusOK, output, err)
}

func (c *GoalController) Delete(ctx *gin.Context) {
	ownerID, goalID, ok := ownedGoal(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{GoalID: goalID, OwnerID: ownerID})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *GoalController) respond(ctx *gin.Context, status int, output *goal.GoalOutput, err error) {
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}
	ctx.JSON(status, dto.ToGoalResponse(output))
}

var goalErrorStatus = map[domainerror.GoalErrorCode]int{
	domainerror.ErrCodeGoalNotFound:         http.StatusNotFound,
	domainerror.ErrCodeInvalidGoalName:      http.StatusBadRequest,
	domainerror.ErrCodeInvalidTargetAmount:  http.StatusBadRequest,
	domainerror.ErrCodeInvalidCurrentAmount: http.StatusBadRequest,
	domainerror.ErrCodeTargetDateInPast:     http.StatusBadRequest,
	domainerror.ErrCodeInvalidGoalCategory:  http.StatusBadRequest,
	domainerror.ErrCodeMissingGoalFields:    http.StatusBadRequest,
}

func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		status, known := goalErrorStatus[goalErr.Code]
		if !known {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{Error: goalErr.Message, Code: string(goalErr.Code)})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Goal request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An internal error occurred"})
}

func requireOwner(ctx *gin.Context) (string, bool) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Owner not identified",
			Code:  string(domainerror.ErrCodeMissingOwnerID),
		})
	}
	return ownerID, ok
}

// ownedGoal resolves the caller and the :id path parameter. A malformed id is
// reported as not found.
func ownedGoal(ctx *gin.Context) (string, uuid.UUID, bool) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return "", uuid.Nil, false
	}
	goalID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid goal ID format",
			Code:  string(domainerror.ErrCodeGoalNotFound),
		})
		return "", uuid.Nil, false
	}
	return ownerID, goalID, true
}

func badGoalRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeMissingGoalFields),
	})
}

func bindGoalBody(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		badGoalRequest(ctx, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func goalDate(ctx *gin.Context, raw *string) (*time.Time, bool) {
	date, ok := dto.ParseGoalDate(raw)
	if !ok {
		badGoalRequest(ctx, "target_date must be a date like 2025-12-31")
	}
	return date, ok
}

func budgetCategory(raw *string) *entity.BudgetCategory {
	if raw == nil {
		return nil
	}
	category := entity.BudgetCategory(*raw)
	return &category
}

// parseSavingsCapacity reads the optional savings_capacity query parameter.
func parseSavingsCapacity(ctx *gin.Context) (*decimal.Decimal, bool) {
	raw := ctx.Query("savings_capacity")
	if raw == "" {
		return nil, true
	}
	capacity, err := decimal.NewFromString(raw)
	if err != nil || capacity.IsNegative() {
		badGoalRequest(ctx, "savings_capacity must be a non-negative number")
		return nil, false
	}
	return &capacity, true
}
