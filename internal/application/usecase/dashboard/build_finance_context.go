package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/analytics"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// BuildFinanceContextInput represents the input for the finance context.
type BuildFinanceContextInput struct {
	Dataset
	Region      string // "AU" or "US", empty selects the configured default
	LastUpdated *time.Time
}

// BuildFinanceContextOutput represents the output of the finance context.
type BuildFinanceContextOutput struct {
	Context valueobject.FinanceContext
}

// BuildFinanceContextUseCase detects patterns and rolls up the window for the assistant and reports.
type BuildFinanceContextUseCase struct {
	engine        *analytics.Engine
	opts          Options
	defaultRegion entity.Region
}

// NewBuildFinanceContextUseCase creates a new BuildFinanceContextUseCase instance.
func NewBuildFinanceContextUseCase(engine *analytics.Engine, opts Options, defaultRegion entity.Region) *BuildFinanceContextUseCase {
	if defaultRegion == "" {
		defaultRegion = entity.DefaultRegion
	}
	return &BuildFinanceContextUseCase{
		engine:        engine,
		opts:          opts.withDefaults(),
		defaultRegion: defaultRegion,
	}
}

// Execute builds the finance context.
func (uc *BuildFinanceContextUseCase) Execute(ctx context.Context, input BuildFinanceContextInput) (*BuildFinanceContextOutput, error) {
	asOf, err := uc.opts.resolve(input.Dataset)
	if err != nil {
		return nil, err
	}

	region := uc.defaultRegion
	if input.Region != "" {
		parsed, ok := entity.ParseRegion(input.Region)
		if !ok {
			return nil, domainerror.NewAnalyticsError(
				domainerror.ErrCodeInvalidRegion,
				fmt.Sprintf("region must be AU or US, got %q", input.Region),
				domainerror.ErrInvalidRegion,
			)
		}
		region = parsed
	}

	return &BuildFinanceContextOutput{
		Context: uc.engine.BuildContext(input.Accounts, input.Transactions, region, input.LastUpdated, asOf),
	}, nil
}
