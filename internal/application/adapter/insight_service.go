// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// InsightRequest is a user question together with the aggregate it should be answered from.
type InsightRequest struct {
	OwnerID  string
	Question string
	Context  valueobject.FinanceContext
	Wellness *valueobject.WellnessMetrics // Optional, enriches the prompt when present
}

// InsightAnswer is the narrative reply from the LLM collaborator.
type InsightAnswer struct {
	Answer string
	Model  string
}

// InsightService defines the interface for the narrative assistant.
type InsightService interface {
	// Answer asks the model to respond to the question using only the supplied context.
	Answer(ctx context.Context, request *InsightRequest) (*InsightAnswer, error)

	// IsAvailable checks if the assistant is properly configured.
	IsAvailable() bool
}
