package dto

import (
	"time"

	"github.com/finance-dashboard/backend/internal/application/usecase/dashboard"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// BucketResponse is one 50/30/20 bucket.
type BucketResponse struct {
	Total            float64 `json:"total"`
	Percentage       float64 `json:"percentage"`
	TargetPercentage float64 `json:"target_percentage"`
	TargetAmount     float64 `json:"target_amount"`
	Adjustment       float64 `json:"adjustment"`
}

// BudgetSummaryResponse represents the 50/30/20 summary.
type BudgetSummaryResponse struct {
	AsOf               time.Time                 `json:"as_of"`
	WindowStart        time.Time                 `json:"window_start"`
	WindowEnd          time.Time                 `json:"window_end"`
	Income             float64                   `json:"income"`
	Buckets            map[string]BucketResponse `json:"buckets"`
	Expenses           float64                   `json:"expenses"`
	TotalOutflow       float64                   `json:"total_outflow"`
	Surplus            float64                   `json:"surplus"`
	SavingsAllocated   float64                   `json:"savings_allocated"`
	WindowTransactions int                       `json:"window_transactions"`
}

// ToBudgetSummaryResponse converts a BudgetSummary to its DTO.
func ToBudgetSummaryResponse(asOf time.Time, s valueobject.BudgetSummary) BudgetSummaryResponse {
	buckets := make(map[string]BucketResponse, 3)
	for _, c := range entity.BudgetCategories() {
		buckets[string(c)] = BucketResponse{
			Total:            money(s.Totals[c]),
			Percentage:       s.Percentages[c],
			TargetPercentage: s.TargetPercentages[c],
			TargetAmount:     money(s.TargetAmounts[c]),
			Adjustment:       s.Adjustments[c],
		}
	}

	return BudgetSummaryResponse{
		AsOf:               asOf,
		WindowStart:        s.WindowStart,
		WindowEnd:          s.WindowEnd,
		Income:             money(s.Income),
		Buckets:            buckets,
		Expenses:           money(s.Expenses),
		TotalOutflow:       money(s.TotalOutflow),
		Surplus:            money(s.Surplus),
		SavingsAllocated:   money(s.SavingsAllocated),
		WindowTransactions: len(s.WindowTransactions),
	}
}

// AccountBalanceResponse is an account with its normalised balance.
type AccountBalanceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Balance         float64 `json:"balance"`
	ComputedBalance float64 `json:"computed_balance"`
	IsLiability     bool    `json:"is_liability"`
	Currency        string  `json:"currency,omitempty"`
}

// AccountOverviewResponse represents the account overview.
type AccountOverviewResponse struct {
	Accounts          []AccountBalanceResponse `json:"accounts"`
	SpendingAvailable float64                  `json:"spending_available"`
	TotalAssets       float64                  `json:"total_assets"`
	TotalLiabilities  float64                  `json:"total_liabilities"`
	NetWorth          float64                  `json:"net_worth"`
	MortgageAccounts  []AccountBalanceResponse `json:"mortgage_accounts"`
}

// ToAccountOverviewResponse converts an AccountOverview to its DTO.
func ToAccountOverviewResponse(o valueobject.AccountOverview) AccountOverviewResponse {
	return AccountOverviewResponse{
		Accounts:          toAccountBalances(o.Accounts),
		SpendingAvailable: money(o.SpendingAvailable),
		TotalAssets:       money(o.TotalAssets),
		TotalLiabilities:  money(o.TotalLiabilities),
		NetWorth:          money(o.NetWorth),
		MortgageAccounts:  toAccountBalances(o.MortgageAccounts),
	}
}

func toAccountBalances(in []valueobject.AccountBalance) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, len(in))
	for i, b := range in {
		out[i] = AccountBalanceResponse{
			ID:              b.Account.ID,
			Name:            b.Account.Name,
			Type:            string(b.Account.Type),
			Balance:         money(b.Account.Balance),
			ComputedBalance: money(b.ComputedBalance),
			IsLiability:     b.IsLiability,
			Currency:        b.Account.Currency,
		}
	}
	return out
}

// ComponentScoresResponse holds each wellness component in [0, 1].
type ComponentScoresResponse struct {
	DTI                float64 `json:"dti"`
	SavingsRate        float64 `json:"savings_rate"`
	EmergencyFund      float64 `json:"emergency_fund"`
	NetWorth           float64 `json:"net_worth"`
	Stability          float64 `json:"stability"`
	CreditUtilization  float64 `json:"credit_utilization"`
	FinancialBehaviour float64 `json:"financial_behaviour"`
	IncomeGrowth       float64 `json:"income_growth"`
}

// LiabilityDriverResponse is an account contributing to debt payments.
type LiabilityDriverResponse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// WellnessResponse represents the wellness metrics.
type WellnessResponse struct {
	AsOf                 time.Time                 `json:"as_of"`
	Score                int                       `json:"score"`
	DTI                  float64                   `json:"dti"`
	DTILabel             string                    `json:"dti_label"`
	FocusMessage         string                    `json:"focus_message"`
	ComponentScores      ComponentScoresResponse   `json:"component_scores"`
	MonthlyIncome        float64                   `json:"monthly_income"`
	Expenses             float64                   `json:"expenses"`
	TotalOutflow         float64                   `json:"total_outflow"`
	SavingsAllocated     float64                   `json:"savings_allocated"`
	SavingsRate          float64                   `json:"savings_rate"`
	MonthlyDebtPayments  float64                   `json:"monthly_debt_payments"`
	LiabilitiesByAccount []LiabilityDriverResponse `json:"liabilities_by_account"`
	NetWorth             float64                   `json:"net_worth"`
	PreviousNetWorth     float64                   `json:"previous_net_worth"`
	TotalAssets          float64                   `json:"total_assets"`
	TotalLiabilities     float64                   `json:"total_liabilities"`
	LiquidAssets         float64                   `json:"liquid_assets"`
	EmergencyFundMonths  float64                   `json:"emergency_fund_months"`
	StabilityRatio       float64                   `json:"stability_ratio"`
	CreditCardBalance    float64                   `json:"credit_card_balance"`
	CreditUtilisation    float64                   `json:"credit_utilisation"`
	AverageAbsDeviation  float64                   `json:"average_abs_deviation"`
	FirstHalfIncome      float64                   `json:"first_half_income"`
	SecondHalfIncome     float64                   `json:"second_half_income"`
	IncomeGrowthRatio    float64                   `json:"income_growth_ratio"`
	Budget               BudgetSummaryResponse     `json:"budget"`
	Overview             AccountOverviewResponse   `json:"overview"`
}

// ToWellnessResponse converts WellnessMetrics to its DTO.
func ToWellnessResponse(asOf time.Time, m valueobject.WellnessMetrics) WellnessResponse {
	drivers := make([]LiabilityDriverResponse, len(m.LiabilitiesByAccount))
	for i, d := range m.LiabilitiesByAccount {
		drivers[i] = LiabilityDriverResponse{Name: d.Name, Amount: money(d.Amount)}
	}

	c := m.ComponentScores
	return WellnessResponse{
		AsOf:         asOf,
		Score:        m.Score,
		DTI:          m.DTI,
		DTILabel:     string(m.DTILabel),
		FocusMessage: m.FocusMessage,
		ComponentScores: ComponentScoresResponse{
			DTI:                c.DTI,
			SavingsRate:        c.SavingsRate,
			EmergencyFund:      c.EmergencyFund,
			NetWorth:           c.NetWorth,
			Stability:          c.Stability,
			CreditUtilization:  c.CreditUtilization,
			FinancialBehaviour: c.FinancialBehaviour,
			IncomeGrowth:       c.IncomeGrowth,
		},
		MonthlyIncome:        money(m.MonthlyIncome),
		Expenses:             money(m.Expenses),
		TotalOutflow:         money(m.TotalOutflow),
		SavingsAllocated:     money(m.SavingsAllocated),
		SavingsRate:          m.SavingsRate,
		MonthlyDebtPayments:  money(m.MonthlyDebtPayments),
		LiabilitiesByAccount: drivers,
		NetWorth:             money(m.NetWorth),
		PreviousNetWorth:     money(m.PreviousNetWorth),
		TotalAssets:          money(m.TotalAssets),
		TotalLiabilities:     money(m.TotalLiabilities),
		LiquidAssets:         money(m.LiquidAssets),
		EmergencyFundMonths:  m.EmergencyFundMonths,
		StabilityRatio:       m.StabilityRatio,
		CreditCardBalance:    money(m.CreditCardBalance),
		CreditUtilisation:    m.CreditUtilisation,
		AverageAbsDeviation:  m.AverageAbsDeviation,
		FirstHalfIncome:      money(m.FirstHalfIncome),
		SecondHalfIncome:     money(m.SecondHalfIncome),
		IncomeGrowthRatio:    m.IncomeGrowthRatio,
		Budget:               ToBudgetSummaryResponse(asOf, m.Budget),
		Overview:             ToAccountOverviewResponse(m.Overview),
	}
}

// TransactionResponse is a transaction annotated with its display category.
type TransactionResponse struct {
	ID               string  `json:"id"`
	AccountID        string  `json:"account_id"`
	Date             *string `json:"date"`
	Description      string  `json:"description"`
	Amount           float64 `json:"amount"`
	Category         string  `json:"category,omitempty"`
	MerchantCategory string  `json:"merchant_category"`
	BudgetCategory   *string `json:"budget_category,omitempty"`
}

// ClassifyResponse represents classified transactions.
type ClassifyResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Counts       map[string]int        `json:"counts"`
	Unclassified int                   `json:"unclassified"`
}

// ToClassifyResponse converts the classification output to its DTO.
func ToClassifyResponse(out *dashboard.ClassifyTransactionsOutput) ClassifyResponse {
	txs := make([]TransactionResponse, len(out.Transactions))
	for i, ct := range out.Transactions {
		tx := ct.Transaction
		txs[i] = TransactionResponse{
			ID:               tx.ID,
			AccountID:        tx.AccountID,
			Date:             optionalDate(tx.Date),
			Description:      tx.Description,
			Amount:           money(tx.Amount),
			Category:         tx.Category,
			MerchantCategory: ct.MerchantCategory,
		}
		if ct.BudgetCategory != nil {
			c := string(*ct.BudgetCategory)
			txs[i].BudgetCategory = &c
		}
	}

	counts := make(map[string]int, len(out.Counts))
	for c, n := range out.Counts {
		counts[string(c)] = n
	}

	return ClassifyResponse{Transactions: txs, Counts: counts, Unclassified: out.Unclassified}
}

// RecurringResponse is a merchant charged on a regular cadence.
type RecurringResponse struct {
	Merchant       string  `json:"merchant"`
	Cadence        string  `json:"cadence"`
	AverageAmount  float64 `json:"average_amount"`
	AverageGapDays float64 `json:"average_gap_days"`
	LastDate       string  `json:"last_date"`
	Occurrences    int     `json:"occurrences"`
}

// DuplicateResponse flags repeated same-amount charges.
type DuplicateResponse struct {
	Merchant string   `json:"merchant"`
	Amount   float64  `json:"amount"`
	Dates    []string `json:"dates"`
}

// CategoryTotalResponse is spend rolled up by provider category.
type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MerchantTotalResponse is spend rolled up by merchant.
type MerchantTotalResponse struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// AccountSummaryResponse is an account as reported by the provider.
type AccountSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency,omitempty"`
}

// FinanceContextResponse represents the finance context aggregate.
type FinanceContextResponse struct {
	Region           string                   `json:"region"`
	Currency         string                   `json:"currency"`
	LastUpdated      *time.Time               `json:"last_updated"`
	AsOf             time.Time                `json:"as_of"`
	AccountCount     int                      `json:"account_count"`
	TransactionCount int                      `json:"transaction_count"`
	Accounts         []AccountSummaryResponse `json:"accounts"`
	RawTransactions  []TransactionResponse    `json:"raw_transactions"`
	WindowStart      time.Time                `json:"window_start"`
	WindowEnd        time.Time                `json:"window_end"`
	WindowIncome     float64                  `json:"window_income"`
	WindowOutgoing   float64                  `json:"window_outgoing"`
	WindowNet        float64                  `json:"window_net"`
	TopCategories    []CategoryTotalResponse  `json:"top_categories"`
	TopMerchants     []MerchantTotalResponse  `json:"top_merchants"`
	Recurring        []RecurringResponse      `json:"recurring"`
	Duplicates       []DuplicateResponse      `json:"duplicates"`
}

// ToFinanceContextResponse converts a FinanceContext to its DTO.
func ToFinanceContextResponse(fc valueobject.FinanceContext) FinanceContextResponse {
	resp := FinanceContextResponse{
		Region:           string(fc.Region),
		Currency:         fc.Currency,
		LastUpdated:      fc.LastUpdated,
		AsOf:             fc.AsOf,
		AccountCount:     fc.AccountCount,
		TransactionCount: fc.TransactionCount,
		Accounts:         make([]AccountSummaryResponse, len(fc.Accounts)),
		RawTransactions:  make([]TransactionResponse, len(fc.RawTransactions)),
		WindowStart:      fc.WindowStart,
		WindowEnd:        fc.WindowEnd,
		WindowIncome:     money(fc.WindowIncome),
		WindowOutgoing:   money(fc.WindowOutgoing),
		WindowNet:        money(fc.WindowNet),
		TopCategories:    make([]CategoryTotalResponse, len(fc.TopCategories)),
		TopMerchants:     make([]MerchantTotalResponse, len(fc.TopMerchants)),
		Recurring:        make([]RecurringResponse, len(fc.Recurring)),
		Duplicates:       make([]DuplicateResponse, len(fc.Duplicates)),
	}

	for i, a := range fc.Accounts {
		resp.Accounts[i] = AccountSummaryResponse{
			ID:       a.ID,
			Name:     a.Name,
			Type:     string(a.Type),
			Balance:  money(a.Balance),
			Currency: a.Currency,
		}
	}
	for i, t := range fc.RawTransactions {
		resp.RawTransactions[i] = TransactionResponse{
			ID:               t.ID,
			AccountID:        t.AccountID,
			Date:             optionalDate(t.Date),
			Description:      t.Description,
			Amount:           money(t.Amount),
			Category:         t.Category,
			MerchantCategory: t.MerchantCategory,
		}
	}
	for i, c := range fc.TopCategories {
		resp.TopCategories[i] = CategoryTotalResponse{Category: c.Category, Total: money(c.Total)}
	}
	for i, m := range fc.TopMerchants {
		resp.TopMerchants[i] = MerchantTotalResponse{Merchant: m.Merchant, Total: money(m.Total), Count: m.Count}
	}
	for i, r := range fc.Recurring {
		resp.Recurring[i] = RecurringResponse{
			Merchant:       r.Merchant,
			Cadence:        string(r.Cadence),
			AverageAmount:  money(r.AverageAmount),
			AverageGapDays: r.AverageGapDays,
			LastDate:       r.LastDate.Format("2006-01-02"),
			Occurrences:    r.Occurrences,
		}
	}
	for i, d := range fc.Duplicates {
		dates := make([]string, len(d.Dates))
		for j, t := range d.Dates {
			dates[j] = t.Format("2006-01-02")
		}
		resp.Duplicates[i] = DuplicateResponse{Merchant: d.Merchant, Amount: money(d.Amount), Dates: dates}
	}

	return resp
}
