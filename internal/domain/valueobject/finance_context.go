package valueobject

import (
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Cadence is the inferred recurrence interval of a repeating charge.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// RecurringCandidate is a merchant charged on a regular cadence.
type RecurringCandidate struct {
	Merchant       string
	Cadence        Cadence
	AverageAmount  decimal.Decimal
	AverageGapDays float64
	LastDate       time.Time
	Occurrences    int
}

// DuplicateTransaction flags same-merchant, same-amount charges close together.
type DuplicateTransaction struct {
	Merchant string
	Amount   decimal.Decimal
	Dates    []time.Time // only the charges within two days of another, ascending
}

// AccountSummary is the passthrough view of an account.
type AccountSummary struct {
	ID       string
	Name     string
	Type     entity.AccountType
	Balance  decimal.Decimal
	Currency string
}

// TransactionSummary is a raw transaction annotated with its display category.
type TransactionSummary struct {
	ID               string
	AccountID        string
	Date             time.Time
	Description      string
	Amount           decimal.Decimal
	Category         string
	MerchantCategory string
}

// CategoryTotal is outflow spend rolled up by provider category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MerchantTotal is outflow spend rolled up by normalised merchant.
type MerchantTotal struct {
	Merchant string
	Total    decimal.Decimal
	Count    int
}

// FinanceContext is the aggregate handed to the narrative assistant.
type FinanceContext struct {
	Region           entity.Region
	Currency         string
	LastUpdated      *time.Time
	AsOf             time.Time
	AccountCount     int
	TransactionCount int
	Accounts         []AccountSummary
	RawTransactions  []TransactionSummary
	WindowStart      time.Time
	WindowEnd        time.Time
	WindowIncome     decimal.Decimal
	WindowOutgoing   decimal.Decimal
	WindowNet        decimal.Decimal
	TopCategories    []CategoryTotal
	TopMerchants     []MerchantTotal
	Recurring        []RecurringCandidate
	Duplicates       []DuplicateTransaction
}
