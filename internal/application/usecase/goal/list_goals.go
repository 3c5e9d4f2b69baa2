package goal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/adapter"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	OwnerID         string
	SavingsCapacity *decimal.Decimal
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals              []*GoalOutput
	TotalTarget        decimal.Decimal
	TotalSaved         decimal.Decimal
	TotalMonthlyNeeded decimal.Decimal
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	clock    Clock
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, clock Clock) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo, clock: clock}
}

// Execute lists the owner's goals with progress and totals.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	now := uc.clock.now()
	out := &ListGoalsOutput{
		Goals:              make([]*GoalOutput, 0, len(goals)),
		TotalTarget:        decimal.Zero,
		TotalSaved:         decimal.Zero,
		TotalMonthlyNeeded: decimal.Zero,
	}

	for _, g := range goals {
		item := newGoalOutput(g, now, input.SavingsCapacity)
		out.Goals = append(out.Goals, item)
		out.TotalTarget = out.TotalTarget.Add(g.TargetAmount)
		out.TotalSaved = out.TotalSaved.Add(g.CurrentAmount)
		out.TotalMonthlyNeeded = out.TotalMonthlyNeeded.Add(item.Progress.MonthlyContribution)
	}

	return out, nil
}
