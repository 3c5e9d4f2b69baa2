package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

func TestGeminiService_IsAvailable(t *testing.T) {
	if NewGeminiService(GeminiConfig{}).IsAvailable() {
		t.Error("service without key should be unavailable")
	}
	if !NewGeminiService(GeminiConfig{APIKey: "key"}).IsAvailable() {
		t.Error("service with key should be available")
	}

	_, err := NewGeminiService(GeminiConfig{}).Answer(context.Background(), &adapter.InsightRequest{})
	if !errors.Is(err, ErrGeminiNotConfigured) {
		t.Errorf("expected ErrGeminiNotConfigured, got %v", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	request := &adapter.InsightRequest{
		Question: "Can I afford a holiday?",
		Context: valueobject.FinanceContext{
			Region:      entity.RegionAU,
			Currency:    "AUD",
			AsOf:        asOf,
			WindowStart: asOf.AddDate(0, 0, -30),
			WindowEnd:   asOf,
			Accounts: []valueobject.AccountSummary{
				{Name: "Everyday", Type: entity.AccountTypeChecking, Balance: decimal.NewFromFloat(1234.5)},
			},
			WindowIncome:   decimal.NewFromInt(5000),
			WindowOutgoing: decimal.NewFromInt(3200),
			WindowNet:      decimal.NewFromInt(1800),
			Recurring: []valueobject.RecurringCandidate{
				{Merchant: "netflix", Cadence: valueobject.CadenceMonthly, AverageAmount: decimal.NewFromFloat(15.99), LastDate: asOf},
			},
		},
		Wellness: &valueobject.WellnessMetrics{Score: 72, DTI: 0.2, DTILabel: valueobject.DTIExcellent, FocusMessage: "Keep going"},
	}

	prompt := BuildPrompt(request)

	for _, want := range []string{
		"REGION: AU (AUD)",
		"- Everyday (Checking): $1,234.50",
		"- Income: $5,000.00",
		"- netflix: monthly, about $15.99",
		"- Score: 72/100",
		"Can I afford a holiday?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "TOP MERCHANTS") {
		t.Error("empty sections should be omitted")
	}
}
