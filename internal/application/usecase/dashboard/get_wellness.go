package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/analytics"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// GetWellnessInput represents the input for the wellness score.
type GetWellnessInput struct {
	Dataset
}

// GetWellnessOutput represents the output of the wellness score.
type GetWellnessOutput struct {
	AsOf    time.Time
	Metrics valueobject.WellnessMetrics
}

// GetWellnessUseCase scores financial wellness from accounts and recent transactions.
type GetWellnessUseCase struct {
	engine *analytics.Engine
	opts   Options
}

// NewGetWellnessUseCase creates a new GetWellnessUseCase instance.
func NewGetWellnessUseCase(engine *analytics.Engine, opts Options) *GetWellnessUseCase {
	return &GetWellnessUseCase{engine: engine, opts: opts.withDefaults()}
}

// Execute computes the wellness metrics.
func (uc *GetWellnessUseCase) Execute(ctx context.Context, input GetWellnessInput) (*GetWellnessOutput, error) {
	asOf, err := uc.opts.resolve(input.Dataset)
	if err != nil {
		return nil, err
	}

	metrics := uc.engine.ScoreWellness(input.Accounts, input.Transactions, asOf)

	slog.DebugContext(ctx, "Wellness scored",
		"score", metrics.Score,
		"dti_label", metrics.DTILabel,
		"accounts", len(input.Accounts),
		"transactions", len(input.Transactions),
	)

	return &GetWellnessOutput{AsOf: asOf, Metrics: metrics}, nil
}
