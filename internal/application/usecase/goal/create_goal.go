package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	OwnerID       string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Category      *entity.BudgetCategory // Optional, defaults to Savings
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, clock Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*GoalOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(input.TargetAmount); err != nil {
		return nil, err
	}
	if err := validateCurrent(input.CurrentAmount); err != nil {
		return nil, err
	}

	category := entity.BudgetSavings
	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		category = *input.Category
	}

	now := uc.clock.now()
	if input.TargetDate != nil && input.TargetDate.Before(now) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeTargetDateInPast,
			"target date must be in the future",
			domainerror.ErrTargetDateInPast,
		)
	}

	goal := entity.NewGoal(input.OwnerID, name, input.TargetAmount, input.CurrentAmount, input.TargetDate, category)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("Goal created", "goal_id", goal.ID, "owner_id", goal.OwnerID)

	return newGoalOutput(goal, now, nil), nil
}
