package dashboard

import (
	"context"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/analytics"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// GetBudgetSummaryInput represents the input for the 50/30/20 summary.
type GetBudgetSummaryInput struct {
	Dataset
}

// GetBudgetSummaryOutput represents the output of the 50/30/20 summary.
type GetBudgetSummaryOutput struct {
	AsOf    time.Time
	Summary valueobject.BudgetSummary
}

// GetBudgetSummaryUseCase summarises the trailing 30 days against the 50/30/20 targets.
type GetBudgetSummaryUseCase struct {
	engine *analytics.Engine
	opts   Options
}

// NewGetBudgetSummaryUseCase creates a new GetBudgetSummaryUseCase instance.
func NewGetBudgetSummaryUseCase(engine *analytics.Engine, opts Options) *GetBudgetSummaryUseCase {
	return &GetBudgetSummaryUseCase{engine: engine, opts: opts.withDefaults()}
}

// Execute computes the budget summary.
func (uc *GetBudgetSummaryUseCase) Execute(ctx context.Context, input GetBudgetSummaryInput) (*GetBudgetSummaryOutput, error) {
	asOf, err := uc.opts.resolve(input.Dataset)
	if err != nil {
		return nil, err
	}

	return &GetBudgetSummaryOutput{
		AsOf:    asOf,
		Summary: uc.engine.Summarise(input.Transactions, asOf),
	}, nil
}
