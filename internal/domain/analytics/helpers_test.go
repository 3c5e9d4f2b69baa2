package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func txn(t *testing.T, description, amount, day string) entity.Transaction {
	t.Helper()
	return entity.Transaction{
		ID:          description + "-" + day,
		AccountID:   "acc-checking",
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Date:        date(t, day),
	}
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got.String(), want)
	}
}
