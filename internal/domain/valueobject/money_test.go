package valueobject

import (
	"testing"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		region entity.Region
		amount string
		want   string
	}{
		{"grouped thousands", entity.RegionAU, "1234.5", "$1,234.50"},
		{"negative", entity.RegionUS, "-80", "-$80.00"},
		{"rounded to cents", entity.RegionUS, "0.125", "$0.13"},
		{"zero", entity.RegionAU, "0", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(tt.region, decimal.RequireFromString(tt.amount)); got != tt.want {
				t.Errorf("FormatMoney() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewEmptyBudgetSummary(t *testing.T) {
	s := NewEmptyBudgetSummary(time.Time{}, time.Time{})

	for _, c := range entity.BudgetCategories() {
		if _, ok := s.Totals[c]; !ok {
			t.Errorf("missing total for %s", c)
		}
	}
	if s.TargetPercentages[entity.BudgetEssentials] != 50 || s.TargetPercentages[entity.BudgetLifestyle] != 30 || s.TargetPercentages[entity.BudgetSavings] != 20 {
		t.Errorf("target percentages = %v", s.TargetPercentages)
	}
	if s.WindowTransactions == nil {
		t.Error("window transactions should be an empty slice")
	}
}
