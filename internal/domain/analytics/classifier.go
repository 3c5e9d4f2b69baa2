// Package analytics derives budget, wellness and pattern aggregates from raw
// account and transaction records. Every function is pure: inputs are never
// mutated and windowed computations take an explicit reference instant.
package analytics

import (
	"strings"

	"github.com/finance-dashboard/backend/internal/domain/entity"
)

// Display categories returned by MerchantCategory when no rule matches.
const (
	MerchantCategoryIncome  = "Income"
	MerchantCategoryGeneral = "General Spending"
)

// Engine runs the analytics pipeline against a classification rule set.
type Engine struct {
	rules *RuleSet
}

// NewEngine creates an Engine. A nil rule set selects the embedded defaults.
func NewEngine(rules *RuleSet) *Engine {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Engine{rules: rules}
}

// Rules returns the rule set in use.
func (e *Engine) Rules() *RuleSet {
	return e.rules
}

// Classify assigns an outflow to a budget bucket. Inflows and zero amounts return false.
//
// Savings keywords win over Essentials, which win over Lifestyle, so that text such as
// "Loan Repayment to Savings" lands in Savings.
func (e *Engine) Classify(tx entity.Transaction) (entity.BudgetCategory, bool) {
	if !tx.IsOutflow() {
		return "", false
	}

	text := searchText(tx)
	r := e.rules.Budget

	switch {
	case containsAny(text, r.Savings):
		return entity.BudgetSavings, true
	case containsAny(text, r.Essentials):
		return entity.BudgetEssentials, true
	case containsAny(text, r.Lifestyle):
		return entity.BudgetLifestyle, true
	case containsAny(text, r.DebtFallback):
		return entity.BudgetEssentials, true
	case containsAny(text, r.LifestyleFallback):
		return entity.BudgetLifestyle, true
	default:
		return entity.BudgetEssentials, true
	}
}

// MerchantCategory returns the display label for a transaction.
func (e *Engine) MerchantCategory(tx entity.Transaction) string {
	text := searchText(tx)
	for _, rule := range e.rules.MerchantRules {
		if containsAny(text, rule.Keywords) {
			return rule.Category
		}
	}

	if label, ok := e.rules.RawCategories[strings.ToLower(strings.TrimSpace(tx.Category))]; ok && label != "" {
		return label
	}

	if tx.Amount.IsNegative() {
		return MerchantCategoryGeneral
	}
	return MerchantCategoryIncome
}

func searchText(tx entity.Transaction) string {
	return strings.ToLower(tx.Description + " " + tx.Category)
}

// normaliseMerchant is the grouping key for merchant rollups and pattern detection.
func normaliseMerchant(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
