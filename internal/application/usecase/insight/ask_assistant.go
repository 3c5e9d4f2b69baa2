package insight

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/application/usecase/dashboard"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// MaxQuestionLength is the longest question accepted, in characters.
const MaxQuestionLength = 1000

// AskAssistantInput represents the input for asking the assistant a question.
type AskAssistantInput struct {
	OwnerID         string
	Question        string
	Dataset         dashboard.Dataset
	Region          string
	LastUpdated     *time.Time
	IncludeWellness bool
}

// AskAssistantOutput represents the assistant's reply.
type AskAssistantOutput struct {
	Answer  string
	Model   string
	Context valueobject.FinanceContext
}

// AskAssistantUseCase answers free-text questions from the finance context.
type AskAssistantUseCase struct {
	buildContext *dashboard.BuildFinanceContextUseCase
	wellness     *dashboard.GetWellnessUseCase
	service      adapter.InsightService
}

// NewAskAssistantUseCase creates a new AskAssistantUseCase instance.
func NewAskAssistantUseCase(
	buildContext *dashboard.BuildFinanceContextUseCase,
	wellness *dashboard.GetWellnessUseCase,
	service adapter.InsightService,
) *AskAssistantUseCase {
	return &AskAssistantUseCase{
		buildContext: buildContext,
		wellness:     wellness,
		service:      service,
	}
}

// Execute validates the question, builds the context and asks the assistant.
func (uc *AskAssistantUseCase) Execute(ctx context.Context, input AskAssistantInput) (*AskAssistantOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" || utf8.RuneCountInString(question) > MaxQuestionLength {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInvalidQuestion,
			"question must be between 1 and 1000 characters",
			false,
			domainerror.ErrInvalidQuestion,
		)
	}

	if uc.service == nil || !uc.service.IsAvailable() {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeAssistantNotConfigured,
			"assistant is not configured",
			false,
			domainerror.ErrAssistantNotConfigured,
		)
	}

	built, err := uc.buildContext.Execute(ctx, dashboard.BuildFinanceContextInput{
		Dataset:     input.Dataset,
		Region:      input.Region,
		LastUpdated: input.LastUpdated,
	})
	if err != nil {
		return nil, err
	}

	request := &adapter.InsightRequest{
		OwnerID:  input.OwnerID,
		Question: question,
		Context:  built.Context,
	}

	if input.IncludeWellness {
		dataset := input.Dataset
		dataset.AsOf = built.Context.AsOf
		scored, err := uc.wellness.Execute(ctx, dashboard.GetWellnessInput{Dataset: dataset})
		if err != nil {
			return nil, err
		}
		request.Wellness = &scored.Metrics
	}

	start := time.Now()
	answer, err := uc.service.Answer(ctx, request)
	if err != nil {
		classified := classifyProviderError(err)
		slog.Warn("Assistant request failed",
			"owner_id", input.OwnerID,
			"code", classified.Code,
			"retryable", classified.Retryable,
			"error", err,
		)
		return nil, classified
	}

	if strings.TrimSpace(answer.Answer) == "" {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeAssistantEmptyAnswer,
			"assistant returned an empty answer",
			true,
			domainerror.ErrAssistantEmptyAnswer,
		)
	}

	slog.Info("Assistant answered",
		"owner_id", input.OwnerID,
		"model", answer.Model,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &AskAssistantOutput{
		Answer:  strings.TrimSpace(answer.Answer),
		Model:   answer.Model,
		Context: built.Context,
	}, nil
}
