package insight

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.InsightErrorCode
		expectRetry  bool
	}{
		// Timeout/cancellation errors
		{name: "context deadline exceeded", err: context.DeadlineExceeded, expectedCode: domainerror.ErrCodeAssistantTimeout, expectRetry: true},
		{name: "context canceled", err: context.Canceled, expectedCode: domainerror.ErrCodeAssistantTimeout, expectRetry: true},
		{name: "request timed out", err: errors.New("request timed out"), expectedCode: domainerror.ErrCodeAssistantTimeout, expectRetry: true},
		// Rate limiting errors
		{name: "quota error", err: errors.New("googleapi: Error 429: Quota exceeded"), expectedCode: domainerror.ErrCodeAssistantRateLimited, expectRetry: true},
		{name: "resource exhausted", err: errors.New("rpc error: code = ResourceExhausted desc = resource exhausted"), expectedCode: domainerror.ErrCodeAssistantRateLimited, expectRetry: true},
		// Authentication errors
		{name: "invalid key", err: errors.New("API key not valid. Please pass a valid API key."), expectedCode: domainerror.ErrCodeAssistantAuthFailed, expectRetry: false},
		{name: "403 forbidden", err: errors.New("googleapi: Error 403: permission denied"), expectedCode: domainerror.ErrCodeAssistantAuthFailed, expectRetry: false},
		// Network errors
		{name: "dial failure", err: errors.New("dial tcp: lookup generativelanguage.googleapis.com: no such host"), expectedCode: domainerror.ErrCodeAssistantUnavailable, expectRetry: true},
		{name: "service unavailable", err: errors.New("503 service unavailable"), expectedCode: domainerror.ErrCodeAssistantUnavailable, expectRetry: true},
		// Everything else
		{name: "unknown", err: errors.New("something odd"), expectedCode: domainerror.ErrCodeAssistantUnknown, expectRetry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyProviderError(tt.err)

			if result.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, result.Code)
			}
			if result.Retryable != tt.expectRetry {
				t.Errorf("expected retryable %v, got %v", tt.expectRetry, result.Retryable)
			}
			if result.Message == "" {
				t.Error("expected non-empty message")
			}
			if !errors.Is(result, tt.err) {
				t.Error("classified error should wrap the provider error")
			}
		})
	}
}

func TestClassifyProviderError_PassThrough(t *testing.T) {
	original := domainerror.NewInsightError(domainerror.ErrCodeAssistantEmptyAnswer, "empty", true, nil)
	if got := classifyProviderError(original); got != original {
		t.Errorf("expected the same error back, got %v", got)
	}
}
