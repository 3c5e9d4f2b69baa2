package dashboard

import (
	"context"

	"github.com/finance-dashboard/backend/internal/domain/analytics"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// GetAccountOverviewInput represents the input for the account overview.
type GetAccountOverviewInput struct {
	Dataset
}

// GetAccountOverviewOutput represents the output of the account overview.
type GetAccountOverviewOutput struct {
	Overview valueobject.AccountOverview
}

// GetAccountOverviewUseCase normalises balances into assets, liabilities and spendable cash.
type GetAccountOverviewUseCase struct {
	opts Options
}

// NewGetAccountOverviewUseCase creates a new GetAccountOverviewUseCase instance.
func NewGetAccountOverviewUseCase(opts Options) *GetAccountOverviewUseCase {
	return &GetAccountOverviewUseCase{opts: opts.withDefaults()}
}

// Execute computes the account overview.
func (uc *GetAccountOverviewUseCase) Execute(ctx context.Context, input GetAccountOverviewInput) (*GetAccountOverviewOutput, error) {
	if _, err := uc.opts.resolve(input.Dataset); err != nil {
		return nil, err
	}

	return &GetAccountOverviewOutput{
		Overview: analytics.ComputeOverview(input.Accounts),
	}, nil
}
