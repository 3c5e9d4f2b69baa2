// Package report contains use cases that deliver wellness reports.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/application/usecase/dashboard"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/domain/valueobject"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// QueueWellnessReportInput represents the input for queueing a wellness report.
type QueueWellnessReportInput struct {
	OwnerID        string
	RecipientEmail string
	RecipientName  string
	Region         entity.Region
	Dataset        dashboard.Dataset
}

// QueueWellnessReportOutput represents the output of queueing a wellness report.
type QueueWellnessReportOutput struct {
	JobID       string
	ScheduledAt string
	Score       int
	DTILabel    valueobject.DTILabel
}

// QueueWellnessReportUseCase scores the dataset and queues the result as an email.
type QueueWellnessReportUseCase struct {
	wellness     *dashboard.GetWellnessUseCase
	emailService adapter.EmailService
}

// NewQueueWellnessReportUseCase creates a new QueueWellnessReportUseCase instance.
func NewQueueWellnessReportUseCase(wellness *dashboard.GetWellnessUseCase, emailService adapter.EmailService) *QueueWellnessReportUseCase {
	return &QueueWellnessReportUseCase{
		wellness:     wellness,
		emailService: emailService,
	}
}

// Execute computes the wellness metrics and queues the report.
func (uc *QueueWellnessReportUseCase) Execute(ctx context.Context, input QueueWellnessReportInput) (*QueueWellnessReportOutput, error) {
	recipient := strings.ToLower(strings.TrimSpace(input.RecipientEmail))
	if !emailRegex.MatchString(recipient) {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidRecipient,
			"recipient must be a valid email address",
			domainerror.ErrInvalidRecipient,
		)
	}

	scored, err := uc.wellness.Execute(ctx, dashboard.GetWellnessInput{Dataset: input.Dataset})
	if err != nil {
		return nil, err
	}

	region, ok := entity.ParseRegion(string(input.Region))
	if !ok {
		region = entity.DefaultRegion
	}

	m := scored.Metrics
	queued, err := uc.emailService.QueueWellnessReportEmail(ctx, adapter.QueueWellnessReportInput{
		OwnerID:        input.OwnerID,
		RecipientEmail: recipient,
		RecipientName:  strings.TrimSpace(input.RecipientName),
		Score:          m.Score,
		DTILabel:       string(m.DTILabel),
		FocusMessage:   m.FocusMessage,
		Highlights:     highlights(region, m),
		Components:     components(region, m.ComponentScores),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to queue wellness report: %w", err)
	}

	slog.Info("Wellness report queued",
		"owner_id", input.OwnerID,
		"job_id", queued.JobID,
		"score", m.Score,
	)

	return &QueueWellnessReportOutput{
		JobID:       queued.JobID,
		ScheduledAt: queued.ScheduledAt,
		Score:       m.Score,
		DTILabel:    m.DTILabel,
	}, nil
}

func highlights(region entity.Region, m valueobject.WellnessMetrics) []adapter.ReportLine {
	return []adapter.ReportLine{
		{Label: "Monthly income", Value: valueobject.FormatMoney(region, m.MonthlyIncome)},
		{Label: "Expenses", Value: valueobject.FormatMoney(region, m.Expenses)},
		{Label: "Savings rate", Value: valueobject.FormatPercent(region, m.SavingsRate*100)},
		{Label: "Debt-to-income", Value: valueobject.FormatPercent(region, m.DTI*100)},
		{Label: "Net worth", Value: valueobject.FormatMoney(region, m.NetWorth)},
		{Label: "Emergency fund", Value: fmt.Sprintf("%.1f months", m.EmergencyFundMonths)},
	}
}

func components(region entity.Region, c valueobject.ComponentScores) []adapter.ReportLine {
	score := func(v float64) string { return valueobject.FormatPercent(region, v*100) }
	return []adapter.ReportLine{
		{Label: "Debt-to-income", Value: score(c.DTI)},
		{Label: "Savings rate", Value: score(c.SavingsRate)},
		{Label: "Emergency fund", Value: score(c.EmergencyFund)},
		{Label: "Net worth", Value: score(c.NetWorth)},
		{Label: "Stability", Value: score(c.Stability)},
		{Label: "Credit utilisation", Value: score(c.CreditUtilization)},
		{Label: "Financial behaviour", Value: score(c.FinancialBehaviour)},
		{Label: "Income growth", Value: score(c.IncomeGrowth)},
	}
}
