package analytics

import (
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// Summarise aggregates the trailing 30-day window ending at asOf into a 50/30/20 summary.
// A zero asOf means now. Transactions without a valid date are skipped.
func (e *Engine) Summarise(txs []entity.Transaction, asOf time.Time) valueobject.BudgetSummary {
	start, end := Window(asOf)
	s := valueobject.NewEmptyBudgetSummary(start, end)

	for _, tx := range txs {
		if !inWindow(tx.Date, start, end) {
			continue
		}
		s.WindowTransactions = append(s.WindowTransactions, tx)

		if tx.IsInflow() {
			s.Income = s.Income.Add(tx.Amount)
			continue
		}
		if c, ok := e.Classify(tx); ok {
			s.Totals[c] = s.Totals[c].Add(tx.Amount.Abs())
		}
	}

	for _, c := range entity.BudgetCategories() {
		target := c.TargetPercentage()
		pct := decimal.Zero
		if s.Income.IsPositive() {
			pct = s.Totals[c].Div(s.Income).Mul(hundred)
		}
		s.Percentages[c] = pct.InexactFloat64()
		s.TargetAmounts[c] = target.Div(hundred).Mul(s.Income).Round(2)
		s.Adjustments[c] = pct.Sub(target).InexactFloat64()
	}

	s.Expenses = s.Totals[entity.BudgetEssentials].Add(s.Totals[entity.BudgetLifestyle])
	s.TotalOutflow = s.Expenses.Add(s.Totals[entity.BudgetSavings])
	s.Surplus = maxDecimal(decimal.Zero, s.Income.Sub(s.TotalOutflow))
	s.SavingsAllocated = s.Totals[entity.BudgetSavings].Add(s.Surplus)

	return s
}
