package analytics

import (
	"regexp"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

var mortgageNamePattern = regexp.MustCompile(`(?i)mortgage|home loan|loan`)

// NormaliseBalance applies the liability sign convention: positive CreditCard and Loan
// balances are negated. The result is rounded to cents.
func NormaliseBalance(a entity.Account) decimal.Decimal {
	b := a.Balance
	if a.Type.IsDebtType() && b.IsPositive() {
		b = b.Neg()
	}
	return b.Round(2)
}

// IsMortgageLike reports whether an account looks like a home loan.
func IsMortgageLike(a entity.Account) bool {
	return a.Type == entity.AccountTypeLoan || mortgageNamePattern.MatchString(a.Name)
}

// ComputeOverview normalises balances and buckets accounts into assets and liabilities.
func ComputeOverview(accounts []entity.Account) valueobject.AccountOverview {
	o := valueobject.AccountOverview{
		Accounts:          make([]valueobject.AccountBalance, 0, len(accounts)),
		SpendingAvailable: decimal.Zero,
		TotalAssets:       decimal.Zero,
		TotalLiabilities:  decimal.Zero,
		NetWorth:          decimal.Zero,
		MortgageAccounts:  []valueobject.AccountBalance{},
	}

	for _, a := range accounts {
		computed := NormaliseBalance(a)
		ab := valueobject.AccountBalance{
			Account:         a,
			ComputedBalance: computed,
			IsLiability:     computed.IsNegative(),
		}
		o.Accounts = append(o.Accounts, ab)

		if a.Type.IsCash() && computed.IsPositive() {
			o.SpendingAvailable = o.SpendingAvailable.Add(computed)
		}

		if ab.IsLiability {
			o.TotalLiabilities = o.TotalLiabilities.Add(computed.Abs())
			if IsMortgageLike(a) {
				o.MortgageAccounts = append(o.MortgageAccounts, ab)
			}
		} else {
			o.TotalAssets = o.TotalAssets.Add(computed)
		}
	}

	o.SpendingAvailable = o.SpendingAvailable.Round(2)
	o.TotalAssets = o.TotalAssets.Round(2)
	o.TotalLiabilities = o.TotalLiabilities.Round(2)
	o.NetWorth = o.TotalAssets.Sub(o.TotalLiabilities).Round(2)

	return o
}
