package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal owned by a dashboard user.
type Goal struct {
	ID            uuid.UUID
	OwnerID       string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Category      BudgetCategory
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(ownerID, name string, targetAmount, currentAmount decimal.Decimal, targetDate *time.Time, category BudgetCategory) *Goal {
	now := time.Now().UTC()
	if !category.IsValid() {
		category = BudgetSavings
	}

	return &Goal{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		Category:      category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GoalProgress is the derived funding plan for a goal at a reference instant.
type GoalProgress struct {
	PercentComplete     float64
	Remaining           decimal.Decimal
	MonthsRemaining     int
	MonthlyContribution decimal.Decimal
	OnTrack             *bool // Nil when no savings capacity was supplied
}

// Progress computes how far the goal is funded and what it still needs per month.
// savingsCapacity is the monthly amount the owner can put aside; nil skips the on-track check.
func (g *Goal) Progress(asOf time.Time, savingsCapacity *decimal.Decimal) GoalProgress {
	p := GoalProgress{Remaining: decimal.Zero, MonthlyContribution: decimal.Zero}

	if g.TargetAmount.IsPositive() {
		pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		p.PercentComplete = pct
	}

	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	p.Remaining = remaining.Round(2)

	if g.TargetDate != nil && g.TargetDate.After(asOf) {
		p.MonthsRemaining = monthsBetween(asOf, *g.TargetDate)
	}

	switch {
	case remaining.IsZero():
		p.MonthlyContribution = decimal.Zero
	case p.MonthsRemaining > 0:
		p.MonthlyContribution = remaining.Div(decimal.NewFromInt(int64(p.MonthsRemaining))).Round(2)
	default:
		p.MonthlyContribution = p.Remaining
	}

	if savingsCapacity != nil {
		onTrack := p.MonthlyContribution.LessThanOrEqual(*savingsCapacity)
		p.OnTrack = &onTrack
	}

	return p
}

// monthsBetween counts whole calendar months from start to end, rounding a partial month up.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() > start.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}
