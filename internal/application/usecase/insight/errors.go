// Package insight contains the narrative assistant use cases.
package insight

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

var providerMessages = map[domainerror.InsightErrorCode]string{
	domainerror.ErrCodeAssistantRateLimited: "The assistant is receiving too many requests. Try again in a few minutes.",
	domainerror.ErrCodeAssistantAuthFailed:  "The assistant is misconfigured. Please contact support.",
	domainerror.ErrCodeAssistantTimeout:     "The assistant took too long to answer. Try a shorter question.",
	domainerror.ErrCodeAssistantUnavailable: "The assistant is temporarily unavailable. Try again later.",
	domainerror.ErrCodeAssistantUnknown:     "The assistant could not answer this question. Try again.",
}

// classifyProviderError maps an LLM provider failure onto a coded InsightError.
// Errors that are already InsightErrors pass through unchanged.
func classifyProviderError(err error) *domainerror.InsightError {
	var insightErr *domainerror.InsightError
	if errors.As(err, &insightErr) {
		return insightErr
	}

	newErr := func(code domainerror.InsightErrorCode, retryable bool, sentinel error) *domainerror.InsightError {
		if sentinel != nil {
			err = errors.Join(sentinel, err)
		}
		return domainerror.NewInsightError(code, providerMessages[code], retryable, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newErr(domainerror.ErrCodeAssistantTimeout, true, domainerror.ErrAssistantUnavailable)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "rate limit", "quota", "429", "resource exhausted"):
		return newErr(domainerror.ErrCodeAssistantRateLimited, true, domainerror.ErrAssistantRateLimited)
	case containsAny(msg, "401", "403", "invalid api key", "api key not valid", "unauthorized", "permission denied", "authentication"):
		return newErr(domainerror.ErrCodeAssistantAuthFailed, false, domainerror.ErrAssistantNotConfigured)
	case containsAny(msg, "deadline", "timeout", "timed out"):
		return newErr(domainerror.ErrCodeAssistantTimeout, true, domainerror.ErrAssistantUnavailable)
	case containsAny(msg, "connection", "network", "dial", "unavailable", "503", "502"):
		return newErr(domainerror.ErrCodeAssistantUnavailable, true, domainerror.ErrAssistantUnavailable)
	default:
		return newErr(domainerror.ErrCodeAssistantUnknown, true, nil)
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
