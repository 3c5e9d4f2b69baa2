package valueobject

import (
	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AccountBalance is an account with its sign-normalised balance.
type AccountBalance struct {
	Account         entity.Account
	ComputedBalance decimal.Decimal
	IsLiability     bool
}

// AccountOverview buckets accounts into assets, liabilities and spendable cash.
type AccountOverview struct {
	Accounts          []AccountBalance
	SpendingAvailable decimal.Decimal
	TotalAssets       decimal.Decimal
	TotalLiabilities  decimal.Decimal
	NetWorth          decimal.Decimal
	MortgageAccounts  []AccountBalance
}
