package dto

import (
	"github.com/finance-dashboard/backend/internal/application/usecase/insight"
)

// AskAssistantRequest is a question together with the data snapshot it refers to.
type AskAssistantRequest struct {
	AnalyticsRequest
	Question        string `json:"question" binding:"required"`
	IncludeWellness bool   `json:"include_wellness"`
}

// AskAssistantResponse is the assistant's answer.
type AskAssistantResponse struct {
	Answer  string                 `json:"answer"`
	Model   string                 `json:"model"`
	Context FinanceContextResponse `json:"context"`
}

// ToAskAssistantResponse converts the use case output to its DTO.
func ToAskAssistantResponse(out *insight.AskAssistantOutput) AskAssistantResponse {
	return AskAssistantResponse{
		Answer:  out.Answer,
		Model:   out.Model,
		Context: ToFinanceContextResponse(out.Context),
	}
}

// AssistantErrorResponse adds retry guidance to an assistant failure.
type AssistantErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}
