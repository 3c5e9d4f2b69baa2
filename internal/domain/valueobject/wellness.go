package valueobject

import "github.com/shopspring/decimal"

// DTILabel grades a debt-to-income ratio.
type DTILabel string

const (
	DTIExcellent DTILabel = "Excellent"
	DTIGood      DTILabel = "Good"
	DTIElevated  DTILabel = "Elevated"
	DTIHigh      DTILabel = "High"
)

// ComponentScores holds the eight sub-scores, each within [0, 100].
type ComponentScores struct {
	DTI                float64
	SavingsRate        float64
	EmergencyFund      float64
	NetWorth           float64
	Stability          float64
	CreditUtilization  float64
	FinancialBehaviour float64
	IncomeGrowth       float64
}

// LiabilityDriver is an account contributing to monthly debt payments.
type LiabilityDriver struct {
	Name   string
	Amount decimal.Decimal
}

// WellnessMetrics is the composite financial wellness result.
type WellnessMetrics struct {
	Score           int
	DTI             float64
	DTILabel        DTILabel
	FocusMessage    string
	ComponentScores ComponentScores

	MonthlyIncome        decimal.Decimal
	Expenses             decimal.Decimal
	TotalOutflow         decimal.Decimal
	SavingsAllocated     decimal.Decimal
	SavingsRate          float64
	MonthlyDebtPayments  decimal.Decimal
	LiabilitiesByAccount []LiabilityDriver
	NetWorth             decimal.Decimal
	PreviousNetWorth     decimal.Decimal
	TotalAssets          decimal.Decimal
	TotalLiabilities     decimal.Decimal
	LiquidAssets         decimal.Decimal
	EmergencyFundMonths  float64
	StabilityRatio       float64
	CreditCardBalance    decimal.Decimal
	CreditUtilisation    float64
	AverageAbsDeviation  float64
	FirstHalfIncome      decimal.Decimal
	SecondHalfIncome     decimal.Decimal
	IncomeGrowthRatio    float64

	Budget   BudgetSummary
	Overview AccountOverview
}
