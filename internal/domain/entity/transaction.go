// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single bank transaction.
type Transaction struct {
	ID          string
	AccountID   string
	Description string
	Amount      decimal.Decimal // Negative for outflows, positive for inflows
	Date        time.Time       // Zero when the source date could not be parsed
	Category    string          // Advisory hint from the provider, may be empty
}

// IsInflow returns true for credits.
func (t Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}

// IsOutflow returns true for debits.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsNegative()
}

// HasValidDate returns true if the transaction date was parsed successfully.
func (t Transaction) HasValidDate() bool {
	return !t.Date.IsZero()
}
