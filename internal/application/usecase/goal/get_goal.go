package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/adapter"
)

// GetGoalInput represents the input for retrieving a goal.
type GetGoalInput struct {
	GoalID          uuid.UUID
	OwnerID         string
	SavingsCapacity *decimal.Decimal // Optional monthly savings used for the on-track check
}

// GetGoalUseCase handles retrieving a single goal.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    Clock
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, clock Clock) *GetGoalUseCase {
	return &GetGoalUseCase{goalRepo: goalRepo, clock: clock}
}

// Execute retrieves the goal with its progress.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	return newGoalOutput(goal, uc.clock.now(), input.SavingsCapacity), nil
}
