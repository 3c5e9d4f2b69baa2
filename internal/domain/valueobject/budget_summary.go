// Package valueobject defines derived, immutable results computed by the domain layer.
package valueobject

import (
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BudgetSummary is the 50/30/20 breakdown of a trailing 30-day window.
type BudgetSummary struct {
	Income            decimal.Decimal
	Totals            map[entity.BudgetCategory]decimal.Decimal
	Percentages       map[entity.BudgetCategory]float64
	TargetPercentages map[entity.BudgetCategory]float64
	TargetAmounts     map[entity.BudgetCategory]decimal.Decimal
	Adjustments       map[entity.BudgetCategory]float64 // actual% - target%
	Surplus           decimal.Decimal
	SavingsAllocated  decimal.Decimal
	Expenses          decimal.Decimal
	TotalOutflow      decimal.Decimal
	WindowStart       time.Time
	WindowEnd         time.Time

	// WindowTransactions holds every dated transaction inside the window, inflows included.
	WindowTransactions []entity.Transaction
}

// NewEmptyBudgetSummary returns a summary with every bucket present and zeroed.
func NewEmptyBudgetSummary(windowStart, windowEnd time.Time) BudgetSummary {
	s := BudgetSummary{
		Income:             decimal.Zero,
		Totals:             make(map[entity.BudgetCategory]decimal.Decimal, 3),
		Percentages:        make(map[entity.BudgetCategory]float64, 3),
		TargetPercentages:  make(map[entity.BudgetCategory]float64, 3),
		TargetAmounts:      make(map[entity.BudgetCategory]decimal.Decimal, 3),
		Adjustments:        make(map[entity.BudgetCategory]float64, 3),
		Surplus:            decimal.Zero,
		SavingsAllocated:   decimal.Zero,
		Expenses:           decimal.Zero,
		TotalOutflow:       decimal.Zero,
		WindowStart:        windowStart,
		WindowEnd:          windowEnd,
		WindowTransactions: []entity.Transaction{},
	}
	for _, c := range entity.BudgetCategories() {
		s.Totals[c] = decimal.Zero
		s.TargetPercentages[c] = c.TargetPercentage().InexactFloat64()
		s.TargetAmounts[c] = decimal.Zero
	}
	return s
}
