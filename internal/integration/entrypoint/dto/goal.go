package dto

import (
	"time"

	"github.com/finance-dashboard/backend/internal/application/usecase/goal"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name          string         `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  FlexibleAmount `json:"target_amount"`
	CurrentAmount FlexibleAmount `json:"current_amount"`
	TargetDate    *string        `json:"target_date,omitempty"`
	Category      *string        `json:"category,omitempty" binding:"omitempty,oneof=Essentials Lifestyle Savings"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name            *string         `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount    *FlexibleAmount `json:"target_amount,omitempty"`
	CurrentAmount   *FlexibleAmount `json:"current_amount,omitempty"`
	TargetDate      *string         `json:"target_date,omitempty"`
	ClearTargetDate bool            `json:"clear_target_date,omitempty"`
	Category        *string         `json:"category,omitempty" binding:"omitempty,oneof=Essentials Lifestyle Savings"`
}

// ParseGoalDate parses an optional goal target date. ok is false when a value is present but malformed.
func ParseGoalDate(value *string) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}
	t, ok := parseDate(*value)
	if !ok {
		return nil, false
	}
	return &t, true
}

// GoalProgressResponse is the derived funding plan for a goal.
type GoalProgressResponse struct {
	PercentComplete     float64 `json:"percent_complete"`
	Remaining           float64 `json:"remaining"`
	MonthsRemaining     int     `json:"months_remaining"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	OnTrack             *bool   `json:"on_track,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string               `json:"id"`
	OwnerID       string               `json:"owner_id"`
	Name          string               `json:"name"`
	TargetAmount  float64              `json:"target_amount"`
	CurrentAmount float64              `json:"current_amount"`
	TargetDate    *string              `json:"target_date,omitempty"`
	Category      string               `json:"category"`
	Progress      GoalProgressResponse `json:"progress"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals              []GoalResponse `json:"goals"`
	TotalTarget        float64        `json:"total_target"`
	TotalSaved         float64        `json:"total_saved"`
	TotalMonthlyNeeded float64        `json:"total_monthly_needed"`
}

// ToGoalResponse converts a GoalOutput to a GoalResponse DTO.
func ToGoalResponse(output *goal.GoalOutput) GoalResponse {
	g := output.Goal
	p := output.Progress

	response := GoalResponse{
		ID:            g.ID.String(),
		OwnerID:       g.OwnerID,
		Name:          g.Name,
		TargetAmount:  money(g.TargetAmount),
		CurrentAmount: money(g.CurrentAmount),
		Category:      string(g.Category),
		Progress: GoalProgressResponse{
			PercentComplete:     p.PercentComplete,
			Remaining:           money(p.Remaining),
			MonthsRemaining:     p.MonthsRemaining,
			MonthlyContribution: money(p.MonthlyContribution),
			OnTrack:             p.OnTrack,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}

	if g.TargetDate != nil {
		response.TargetDate = optionalDate(*g.TargetDate)
	}

	return response
}

// ToGoalListResponse converts the list output to GoalListResponse.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, len(output.Goals))
	for i, g := range output.Goals {
		goals[i] = ToGoalResponse(g)
	}
	return GoalListResponse{
		Goals:              goals,
		TotalTarget:        money(output.TotalTarget),
		TotalSaved:         money(output.TotalSaved),
		TotalMonthlyNeeded: money(output.TotalMonthlyNeeded),
	}
}
