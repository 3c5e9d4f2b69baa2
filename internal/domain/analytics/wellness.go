package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

// Component weights. They sum to 1.
const (
	WeightDTI                = 0.20
	WeightSavingsRate        = 0.20
	WeightEmergencyFund      = 0.15
	WeightNetWorth           = 0.15
	WeightStability          = 0.10
	WeightCreditUtilization  = 0.10
	WeightFinancialBehaviour = 0.05
	WeightIncomeGrowth       = 0.05
)

const (
	dtiCeiling            = 1.2
	targetSavingsRate     = 0.2
	emergencyFundTarget   = 6.0
	creditLimitMultiplier = 3
	maxLiabilityDrivers   = 2

	// UnlinkedLiabilityName groups debt payments whose account is not in the request.
	UnlinkedLiabilityName = "Other liabilities"
)

// Focus messages keyed to the DTI label.
const (
	FocusExcellent = "Debt is well under control. Keep building your savings and investments."
	FocusGood      = "Debt is manageable. Direct any surplus toward your savings goals."
	FocusElevated  = "Debt repayments take a large share of income. Prioritise paying down high-interest balances."
	FocusHigh      = "Debt repayments are consuming most of your income. Focus on reducing debt before new spending."
)

// ScoreWellness combines the budget summary, the account overview and the window
// transactions into eight sub-scores and a weighted 0-100 score.
func (e *Engine) ScoreWellness(accounts []entity.Account, txs []entity.Transaction, asOf time.Time) valueobject.WellnessMetrics {
	asOf = ResolveAsOf(asOf)
	overview := ComputeOverview(accounts)
	budget := e.Summarise(txs, asOf)

	m := valueobject.WellnessMetrics{
		MonthlyIncome:    budget.Income.Round(2),
		Expenses:         budget.Expenses.Round(2),
		TotalOutflow:     budget.TotalOutflow.Round(2),
		SavingsAllocated: budget.SavingsAllocated.Round(2),
		NetWorth:         overview.NetWorth,
		TotalAssets:      overview.TotalAssets,
		TotalLiabilities: overview.TotalLiabilities,
		Budget:           budget,
		Overview:         overview,
	}
	income := budget.Income
	hasIncome := income.IsPositive()

	// Debt servicing.
	debt, drivers := e.debtPayments(accounts, budget.WindowTransactions)
	m.MonthlyDebtPayments = debt.Round(2)
	m.LiabilitiesByAccount = drivers

	m.DTI = 1
	if hasIncome {
		m.DTI = ratio(debt, income)
	}
	m.ComponentScores.DTI = clampScore((1 - math.Min(m.DTI, dtiCeiling)/dtiCeiling) * 100)

	// Savings rate.
	if hasIncome {
		m.SavingsRate = ratio(budget.SavingsAllocated, income)
	}
	m.ComponentScores.SavingsRate = clampScore(m.SavingsRate / targetSavingsRate * 100)

	// Behaviour: distance from the 50/30/20 targets.
	var deviation float64
	for _, c := range entity.BudgetCategories() {
		deviation += math.Abs(budget.Adjustments[c])
	}
	m.AverageAbsDeviation = deviation / float64(len(entity.BudgetCategories()))
	m.ComponentScores.FinancialBehaviour = clampScore(100 - m.AverageAbsDeviation*2)

	// Emergency fund.
	liquid := decimal.Zero
	for _, ab := range overview.Accounts {
		if !ab.IsLiability && ab.Account.Type.IsCash() {
			liquid = liquid.Add(ab.ComputedBalance)
		}
	}
	m.LiquidAssets = liquid.Round(2)
	months := emergencyFundTarget
	if budget.Expenses.IsPositive() {
		months = ratio(liquid, budget.Expenses)
	}
	m.EmergencyFundMonths = math.Min(months, emergencyFundTarget)
	m.ComponentScores.EmergencyFund = clampScore(math.Min(months, emergencyFundTarget) / emergencyFundTarget * 100)

	// Net worth.
	m.PreviousNetWorth = overview.NetWorth.Sub(income.Sub(budget.TotalOutflow)).Round(2)
	switch {
	case overview.TotalAssets.IsPositive():
		m.ComponentScores.NetWorth = clampScore((ratio(overview.NetWorth, overview.TotalAssets) + 1) * 50)
	case overview.NetWorth.IsPositive():
		m.ComponentScores.NetWorth = 70
	default:
		m.ComponentScores.NetWorth = 40
	}

	// Stability.
	m.StabilityRatio = -1
	if hasIncome {
		m.StabilityRatio = ratio(income.Sub(budget.Expenses), income)
	}
	m.ComponentScores.Stability = clampScore((m.StabilityRatio + 1) * 50)

	// Credit utilisation against an assumed limit of three months' income.
	cardBalance := decimal.Zero
	for _, ab := range overview.Accounts {
		if ab.Account.Type == entity.AccountTypeCreditCard {
			cardBalance = cardBalance.Add(ab.ComputedBalance.Abs())
		}
	}
	m.CreditCardBalance = cardBalance.Round(2)
	if hasIncome {
		m.CreditUtilisation = ratio(cardBalance, income.Mul(decimal.NewFromInt(creditLimitMultiplier)))
	}
	m.ComponentScores.CreditUtilization = clampScore((1 - math.Min(m.CreditUtilisation, 1)) * 100)

	// Income growth across the two halves of the window.
	first, second := splitIncome(budget)
	m.FirstHalfIncome = first.Round(2)
	m.SecondHalfIncome = second.Round(2)
	switch {
	case first.IsPositive():
		m.IncomeGrowthRatio = ratio(second.Sub(first), first)
	case second.IsPositive():
		m.IncomeGrowthRatio = 1
	}
	m.ComponentScores.IncomeGrowth = clampScore((m.IncomeGrowthRatio + 1) / 2 * 100)

	m.Score = weightedScore(m.ComponentScores)
	m.DTILabel, m.FocusMessage = labelDTI(m.DTI)

	return m
}

func (e *Engine) debtPayments(accounts []entity.Account, window []entity.Transaction) (decimal.Decimal, []valueobject.LiabilityDriver) {
	byID := make(map[string]entity.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	total := decimal.Zero
	buckets := make(map[string]decimal.Decimal)

	for _, tx := range window {
		if !tx.IsOutflow() {
			continue
		}
		acct, known := byID[tx.AccountID]
		debtAccount := known && (acct.Type.IsDebtType() || IsMortgageLike(acct))
		if !debtAccount && !containsAny(searchText(tx), e.rules.DebtKeywords) {
			continue
		}

		amount := tx.Amount.Abs()
		total = total.Add(amount)

		name := UnlinkedLiabilityName
		if known && acct.Name != "" {
			name = acct.Name
		}
		buckets[name] = buckets[name].Add(amount)
	}

	drivers := make([]valueobject.LiabilityDriver, 0, len(buckets))
	for name, amount := range buckets {
		drivers = append(drivers, valueobject.LiabilityDriver{Name: name, Amount: amount.Round(2)})
	}
	sort.Slice(drivers, func(i, j int) bool {
		if !drivers[i].Amount.Equal(drivers[j].Amount) {
			return drivers[i].Amount.GreaterThan(drivers[j].Amount)
		}
		return drivers[i].Name < drivers[j].Name
	})
	if len(drivers) > maxLiabilityDrivers {
		drivers = drivers[:maxLiabilityDrivers]
	}

	return total, drivers
}

// splitIncome sums inflows on each side of the window midpoint.
func splitIncome(budget valueobject.BudgetSummary) (first, second decimal.Decimal) {
	mid := budget.WindowStart.Add(budget.WindowEnd.Sub(budget.WindowStart) / 2)
	first, second = decimal.Zero, decimal.Zero
	for _, tx := range budget.WindowTransactions {
		if !tx.IsInflow() {
			continue
		}
		if tx.Date.Before(mid) {
			first = first.Add(tx.Amount)
		} else {
			second = second.Add(tx.Amount)
		}
	}
	return first, second
}

func weightedScore(c valueobject.ComponentScores) int {
	score := WeightDTI*c.DTI +
		WeightSavingsRate*c.SavingsRate +
		WeightEmergencyFund*c.EmergencyFund +
		WeightNetWorth*c.NetWorth +
		WeightStability*c.Stability +
		WeightCreditUtilization*c.CreditUtilization +
		WeightFinancialBehaviour*c.FinancialBehaviour +
		WeightIncomeGrowth*c.IncomeGrowth
	return int(clampScore(math.Round(score)))
}

func labelDTI(dti float64) (valueobject.DTILabel, string) {
	switch {
	case dti <= 0.25:
		return valueobject.DTIExcellent, FocusExcellent
	case dti <= 0.35:
		return valueobject.DTIGood, FocusGood
	case dti <= 0.5:
		return valueobject.DTIElevated, FocusElevated
	default:
		return valueobject.DTIHigh, FocusHigh
	}
}
