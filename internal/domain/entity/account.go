// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType represents the kind of bank account an Account was sourced from.
type AccountType string

const (
	AccountTypeChecking   AccountType = "Checking"
	AccountTypeSavings    AccountType = "Savings"
	AccountTypeCreditCard AccountType = "CreditCard"
	AccountTypeLoan       AccountType = "Loan"
)

// ParseAccountType maps a provider account type onto the closed set.
// Unknown values fall back to Checking.
func ParseAccountType(value string) AccountType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "_", "")) {
	case "savings":
		return AccountTypeSavings
	case "creditcard", "credit":
		return AccountTypeCreditCard
	case "loan", "mortgage":
		return AccountTypeLoan
	default:
		return AccountTypeChecking
	}
}

// IsDebtType reports whether the account type carries owed money.
func (t AccountType) IsDebtType() bool {
	return t == AccountTypeCreditCard || t == AccountTypeLoan
}

// IsCash reports whether the account type holds spendable cash.
func (t AccountType) IsCash() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// Account represents a bank account supplied by the aggregation provider.
// Balance is in major currency units.
type Account struct {
	ID       string
	Name     string
	Type     AccountType
	Balance  decimal.Decimal
	Currency string
}
