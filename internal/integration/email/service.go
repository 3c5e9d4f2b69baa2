// Package email queues, renders and delivers report emails.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
)

// Service turns report requests into queued email jobs.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
	now        func() time.Time
}

// NewService creates a queueing service. A nil clock uses time.Now.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
		now:        now,
	}
}

// QueueWellnessReportEmail stores a wellness report for the worker to send.
func (s *Service) QueueWellnessReportEmail(ctx context.Context, input adapter.QueueWellnessReportInput) (*adapter.QueuedEmail, error) {
	job := entity.NewEmailJob(
		input.OwnerID,
		entity.TemplateWellnessReport,
		input.RecipientEmail,
		input.RecipientName,
		fmt.Sprintf("Your financial wellness score: %d/100", input.Score),
		map[string]any{
			"user_name":     input.RecipientName,
			"score":         input.Score,
			"dti_label":     input.DTILabel,
			"focus_message": input.FocusMessage,
			"highlights":    reportLines(input.Highlights),
			"components":    reportLines(input.Components),
			"dashboard_url": s.appBaseURL,
		},
		s.now(),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue wellness report email",
			err,
		)
	}

	return &adapter.QueuedEmail{
		JobID:       job.ID.String(),
		ScheduledAt: job.ScheduledAt.Format(time.RFC3339),
	}, nil
}

// reportLines stores rows as plain maps so they survive the JSON round trip through the queue.
func reportLines(lines []adapter.ReportLine) []any {
	out := make([]any, len(lines))
	for i, l := range lines {
		out[i] = map[string]any{"label": l.Label, "value": l.Value}
	}
	return out
}

var _ adapter.EmailService = (*Service)(nil)
