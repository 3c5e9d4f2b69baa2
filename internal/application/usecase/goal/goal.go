// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

const maxGoalNameLength = 100

// GoalOutput is a goal with its funding plan at the time of the request.
type GoalOutput struct {
	Goal     *entity.Goal
	Progress entity.GoalProgress
}

// Clock returns the current time. Tests replace it to pin target-date checks.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}

func newGoalOutput(g *entity.Goal, asOf time.Time, capacity *decimal.Decimal) *GoalOutput {
	return &GoalOutput{Goal: g, Progress: g.Progress(asOf, capacity)}
}

// findOwnedGoal loads a goal and hides goals belonging to other owners.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, id uuid.UUID, ownerID string) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.OwnerID != ownerID {
		return nil, goalNotFound()
	}
	return goal, nil
}

func goalNotFound() error {
	return domainerror.NewGoalError(domainerror.ErrCodeGoalNotFound, "goal not found", domainerror.ErrGoalNotFound)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxGoalNameLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalName,
			"name must be between 1 and 100 characters",
			domainerror.ErrInvalidGoalName,
		)
	}
	return name, nil
}

func validateTarget(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	return nil
}

func validateCurrent(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidCurrentAmount,
			"current amount cannot be negative",
			domainerror.ErrInvalidCurrentAmount,
		)
	}
	return nil
}

func validateCategory(c entity.BudgetCategory) error {
	if !c.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalCategory,
			"category must be 'Essentials', 'Lifestyle' or 'Savings'",
			domainerror.ErrInvalidGoalCategory,
		)
	}
	return nil
}
