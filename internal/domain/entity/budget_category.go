package entity

import "github.com/shopspring/decimal"

// BudgetCategory is one of the three 50/30/20 budget buckets.
type BudgetCategory string

const (
	BudgetEssentials BudgetCategory = "Essentials"
	BudgetLifestyle  BudgetCategory = "Lifestyle"
	BudgetSavings    BudgetCategory = "Savings"
)

// BudgetCategories returns the buckets in display order.
func BudgetCategories() []BudgetCategory {
	return []BudgetCategory{BudgetEssentials, BudgetLifestyle, BudgetSavings}
}

// TargetPercentage returns the share of income the bucket should take.
func (c BudgetCategory) TargetPercentage() decimal.Decimal {
	switch c {
	case BudgetEssentials:
		return decimal.NewFromInt(50)
	case BudgetLifestyle:
		return decimal.NewFromInt(30)
	case BudgetSavings:
		return decimal.NewFromInt(20)
	default:
		return decimal.Zero
	}
}

// IsValid returns true if the category is one of the three buckets.
func (c BudgetCategory) IsValid() bool {
	switch c {
	case BudgetEssentials, BudgetLifestyle, BudgetSavings:
		return true
	}
	return false
}
