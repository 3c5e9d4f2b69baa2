package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func balancedMonth(t *testing.T) []entity.Transaction {
	return []entity.Transaction{
		txn(t, "Salary ACME", "5000", "2025-06-01"),
		txn(t, "Rent payment", "-2500", "2025-06-02"),
		txn(t, "Qantas flight", "-1500", "2025-06-10"),
		txn(t, "Transfer to savings", "-1000", "2025-06-15"),
	}
}

func TestEngine_Summarise(t *testing.T) {
	engine := NewEngine(nil)
	asOf := date(t, "2025-06-30")

	t.Run("on-target month has zero adjustments", func(t *testing.T) {
		s := engine.Summarise(balancedMonth(t), asOf)

		assertDecimal(t, "income", s.Income, "5000")
		assertDecimal(t, "essentials", s.Totals[entity.BudgetEssentials], "2500")
		assertDecimal(t, "lifestyle", s.Totals[entity.BudgetLifestyle], "1500")
		assertDecimal(t, "savings", s.Totals[entity.BudgetSavings], "1000")
		assertDecimal(t, "expenses", s.Expenses, "4000")
		assertDecimal(t, "totalOutflow", s.TotalOutflow, "5000")
		assertDecimal(t, "surplus", s.Surplus, "0")
		assertDecimal(t, "savingsAllocated", s.SavingsAllocated, "1000")
		assertDecimal(t, "target essentials", s.TargetAmounts[entity.BudgetEssentials], "2500")
		assertDecimal(t, "target lifestyle", s.TargetAmounts[entity.BudgetLifestyle], "1500")
		assertDecimal(t, "target savings", s.TargetAmounts[entity.BudgetSavings], "1000")

		for _, c := range entity.BudgetCategories() {
			if !approx(s.Adjustments[c], 0) {
				t.Errorf("adjustment[%s] = %v, want 0", c, s.Adjustments[c])
			}
			if !approx(s.Percentages[c], s.TargetPercentages[c]) {
				t.Errorf("percentage[%s] = %v, want %v", c, s.Percentages[c], s.TargetPercentages[c])
			}
		}
		if len(s.WindowTransactions) != 4 {
			t.Errorf("window transactions = %d, want 4", len(s.WindowTransactions))
		}
	})

	t.Run("unspent income counts as savings", func(t *testing.T) {
		txs := []entity.Transaction{
			txn(t, "Salary ACME", "5000", "2025-06-01"),
			txn(t, "Coles", "-3000", "2025-06-03"),
		}
		s := engine.Summarise(txs, asOf)

		assertDecimal(t, "surplus", s.Surplus, "2000")
		assertDecimal(t, "savingsAllocated", s.SavingsAllocated, "2000")
		if !approx(s.Adjustments[entity.BudgetEssentials], 10) {
			t.Errorf("essentials adjustment = %v, want 10", s.Adjustments[entity.BudgetEssentials])
		}
	})

	t.Run("window excludes old, future and undated records", func(t *testing.T) {
		txs := []entity.Transaction{
			txn(t, "Salary ACME", "1000", "2025-06-20"),
			txn(t, "Old salary", "9000", "2025-05-30"),
			txn(t, "Future salary", "9000", "2025-07-02"),
			{Description: "Undated", Amount: dec("9000")},
		}
		s := engine.Summarise(txs, asOf)

		assertDecimal(t, "income", s.Income, "1000")
		if len(s.WindowTransactions) != 1 {
			t.Errorf("window transactions = %d, want 1", len(s.WindowTransactions))
		}
		if !s.WindowStart.Equal(asOf.Add(-30 * 24 * time.Hour)) {
			t.Errorf("window start = %v", s.WindowStart)
		}
	})

	t.Run("empty input yields zero summary", func(t *testing.T) {
		s := engine.Summarise(nil, asOf)

		assertDecimal(t, "income", s.Income, "0")
		assertDecimal(t, "totalOutflow", s.TotalOutflow, "0")
		for _, c := range entity.BudgetCategories() {
			if s.Percentages[c] != 0 {
				t.Errorf("percentage[%s] = %v, want 0", c, s.Percentages[c])
			}
		}
	})

	t.Run("zero as-of falls back to now", func(t *testing.T) {
		recent := entity.Transaction{Description: "Salary", Amount: dec("10"), Date: time.Now().Add(-time.Hour)}
		s := engine.Summarise([]entity.Transaction{recent}, time.Time{})
		assertDecimal(t, "income", s.Income, "10")
	})
}

func TestEngine_Summarise_Idempotent(t *testing.T) {
	engine := NewEngine(nil)
	asOf := date(t, "2025-06-30")
	txs := balancedMonth(t)
	original := make([]entity.Transaction, len(txs))
	copy(original, txs)

	first := engine.Summarise(txs, asOf)
	second := engine.Summarise(txs, asOf)

	if !first.Income.Equal(second.Income) || !first.SavingsAllocated.Equal(second.SavingsAllocated) {
		t.Error("repeated summaries differ")
	}
	if !reflect.DeepEqual(first.Percentages, second.Percentages) || !reflect.DeepEqual(first.Adjustments, second.Adjustments) {
		t.Error("repeated percentages differ")
	}
	if !reflect.DeepEqual(txs, original) {
		t.Error("input slice was modified")
	}
}

func TestEngine_Summarise_Conservation(t *testing.T) {
	engine := NewEngine(nil)
	asOf := date(t, "2025-06-30")
	descriptions := []string{"Coles", "Netflix", "Vanguard", "Mystery", "Loan", "Gym membership", "Salary"}

	var txs []entity.Transaction
	for i := 0; i < 60; i++ {
		amount := decimal.NewFromInt(int64((i*37)%400 - 250)).Add(decimal.New(int64(i%100), -2))
		txs = append(txs, entity.Transaction{
			Description: descriptions[i%len(descriptions)],
			Amount:      amount,
			Date:        asOf.Add(-time.Duration(i%40) * 24 * time.Hour),
		})
	}

	s := engine.Summarise(txs, asOf)
	sum := s.Totals[entity.BudgetEssentials].Add(s.Totals[entity.BudgetLifestyle]).Add(s.Totals[entity.BudgetSavings])

	if !sum.Equal(s.TotalOutflow) {
		t.Errorf("sum of totals %s != totalOutflow %s", sum, s.TotalOutflow)
	}
	if !s.TotalOutflow.Equal(s.Expenses.Add(s.Totals[entity.BudgetSavings])) {
		t.Errorf("totalOutflow %s != expenses + savings", s.TotalOutflow)
	}
}
