package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID          uuid.UUID
	OwnerID         string
	Name            *string
	TargetAmount    *decimal.Decimal
	CurrentAmount   *decimal.Decimal
	TargetDate      *time.Time
	ClearTargetDate bool
	Category        *entity.BudgetCategory
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, clock Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{goalRepo: goalRepo, clock: clock}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*GoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		goal.Name = name
	}

	if input.TargetAmount != nil {
		if err := validateTarget(*input.TargetAmount); err != nil {
			return nil, err
		}
		goal.TargetAmount = *input.TargetAmount
	}

	if input.CurrentAmount != nil {
		if err := validateCurrent(*input.CurrentAmount); err != nil {
			return nil, err
		}
		goal.CurrentAmount = *input.CurrentAmount
	}

	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		goal.Category = *input.Category
	}

	// An existing goal may keep or move to a past date; only creation rejects it.
	switch {
	case input.ClearTargetDate:
		goal.TargetDate = nil
	case input.TargetDate != nil:
		goal.TargetDate = input.TargetDate
	}

	now := uc.clock.now()
	goal.UpdatedAt = now

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return newGoalOutput(goal, now, nil), nil
}
