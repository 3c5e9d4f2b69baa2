// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

// promptTransactionLimit caps how many raw transactions are listed in the prompt.
const promptTransactionLimit = 40

// ErrGeminiNotConfigured is returned when Answer is called without an API key.
var ErrGeminiNotConfigured = errors.New("gemini service is not configured")

// GeminiConfig configures the Gemini-backed assistant.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// GeminiService implements the InsightService using Google Gemini.
type GeminiService struct {
	cfg GeminiConfig
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(cfg GeminiConfig) *GeminiService {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	return &GeminiService{cfg: cfg}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.cfg.APIKey != ""
}

// Answer asks Gemini to answer the question from the supplied finance context.
func (s *GeminiService) Answer(ctx context.Context, request *adapter.InsightRequest) (*adapter.InsightAnswer, error) {
	if !s.IsAvailable() {
		return nil, ErrGeminiNotConfigured
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.cfg.Model)
	model.SetTemperature(float32(s.cfg.Temperature))
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))

	resp, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return &adapter.InsightAnswer{Answer: responseText(resp), Model: s.cfg.Model}, nil
}

const systemInstruction = `You are a personal finance assistant for a single household.
Answer only from the figures provided. If the data cannot answer the question, say so.
Keep answers short and practical. Do not give investment, tax or legal advice.
Quote amounts exactly as formatted in the data.`

// BuildPrompt renders the finance context and question as plain text.
func BuildPrompt(request *adapter.InsightRequest) string {
	fc := request.Context
	var sb strings.Builder

	fmt.Fprintf(&sb, "REGION: %s (%s)\n", fc.Region, fc.Currency)
	fmt.Fprintf(&sb, "AS OF: %s\n", fc.AsOf.Format("2006-01-02"))
	if fc.LastUpdated != nil {
		fmt.Fprintf(&sb, "DATA LAST UPDATED: %s\n", fc.LastUpdated.Format(time.RFC3339))
	}
	fmt.Fprintf(&sb, "ACCOUNTS: %d, TRANSACTIONS: %d\n", fc.AccountCount, fc.TransactionCount)

	sb.WriteString("\nACCOUNTS:\n")
	if len(fc.Accounts) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, a := range fc.Accounts {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", a.Name, a.Type, valueobject.FormatMoney(fc.Region, a.Balance))
	}

	fmt.Fprintf(&sb, "\nLAST 30 DAYS (%s to %s):\n", fc.WindowStart.Format("2006-01-02"), fc.WindowEnd.Format("2006-01-02"))
	fmt.Fprintf(&sb, "- Income: %s\n", valueobject.FormatMoney(fc.Region, fc.WindowIncome))
	fmt.Fprintf(&sb, "- Outgoing: %s\n", valueobject.FormatMoney(fc.Region, fc.WindowOutgoing))
	fmt.Fprintf(&sb, "- Net: %s\n", valueobject.FormatMoney(fc.Region, fc.WindowNet))

	if len(fc.TopCategories) > 0 {
		sb.WriteString("\nTOP CATEGORIES:\n")
		for _, c := range fc.TopCategories {
			fmt.Fprintf(&sb, "- %s: %s\n", c.Category, valueobject.FormatMoney(fc.Region, c.Total))
		}
	}

	if len(fc.TopMerchants) > 0 {
		sb.WriteString("\nTOP MERCHANTS:\n")
		for _, m := range fc.TopMerchants {
			fmt.Fprintf(&sb, "- %s: %s across %d transactions\n", m.Merchant, valueobject.FormatMoney(fc.Region, m.Total), m.Count)
		}
	}

	if len(fc.Recurring) > 0 {
		sb.WriteString("\nRECURRING CHARGES:\n")
		for _, r := range fc.Recurring {
			fmt.Fprintf(&sb, "- %s: %s, about %s, last on %s\n",
				r.Merchant, r.Cadence, valueobject.FormatMoney(fc.Region, r.AverageAmount), r.LastDate.Format("2006-01-02"))
		}
	}

	if len(fc.Duplicates) > 0 {
		sb.WriteString("\nPOSSIBLE DUPLICATE CHARGES:\n")
		for _, d := range fc.Duplicates {
			dates := make([]string, len(d.Dates))
			for i, t := range d.Dates {
				dates[i] = t.Format("2006-01-02")
			}
			fmt.Fprintf(&sb, "- %s: %s on %s\n", d.Merchant, valueobject.FormatMoney(fc.Region, d.Amount), strings.Join(dates, ", "))
		}
	}

	if w := request.Wellness; w != nil {
		sb.WriteString("\nWELLNESS:\n")
		fmt.Fprintf(&sb, "- Score: %d/100\n", w.Score)
		fmt.Fprintf(&sb, "- Debt-to-income: %s (%s)\n", valueobject.FormatPercent(fc.Region, w.DTI*100), w.DTILabel)
		fmt.Fprintf(&sb, "- Savings rate: %s\n", valueobject.FormatPercent(fc.Region, w.SavingsRate*100))
		fmt.Fprintf(&sb, "- Emergency fund: %.1f months\n", w.EmergencyFundMonths)
		fmt.Fprintf(&sb, "- Net worth: %s\n", valueobject.FormatMoney(fc.Region, w.NetWorth))
		fmt.Fprintf(&sb, "- Focus: %s\n", w.FocusMessage)
	}

	if len(fc.RawTransactions) > 0 {
		sb.WriteString("\nRECENT TRANSACTIONS (newest first):\n")
		for i, tx := range fc.RawTransactions {
			if i == promptTransactionLimit {
				fmt.Fprintf(&sb, "(%d more not shown)\n", len(fc.RawTransactions)-promptTransactionLimit)
				break
			}
			date := "unknown date"
			if !tx.Date.IsZero() {
				date = tx.Date.Format("2006-01-02")
			}
			fmt.Fprintf(&sb, "- %s %s %s [%s]\n", date, tx.Description, valueobject.FormatMoney(fc.Region, tx.Amount), tx.MerchantCategory)
		}
	}

	fmt.Fprintf(&sb, "\nQUESTION:\n%s\n", request.Question)
	return sb.String()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
