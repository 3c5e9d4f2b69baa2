package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/email/templates"
)

// WorkerConfig tunes the delivery loop. Zero values fall back to defaults.
type WorkerConfig struct {
	PollInterval    time.Duration
	BatchSize       int
	CleanupInterval time.Duration
	Retention       time.Duration // sent jobs older than this are purged
	Now             func() time.Time
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Hour
	}
	if c.Retention <= 0 {
		c.Retention = 30 * 24 * time.Hour
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Worker claims due report emails, renders them and hands them to the sender.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	cfg      WorkerConfig
}

func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, cfg WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		cfg:      cfg.withDefaults(),
	}
}

// Start runs the loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	poll := time.NewTicker(w.cfg.PollInterval)
	defer poll.Stop()
	cleanup := time.NewTicker(w.cfg.CleanupInterval)
	defer cleanup.Stop()

	w.ProcessNow(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-poll.C:
			w.ProcessNow(ctx)
		case <-cleanup.C:
			w.purge(ctx)
		}
	}
}

// ProcessNow claims one batch of due jobs and attempts each of them.
// It returns the number of jobs delivered.
func (w *Worker) ProcessNow(ctx context.Context) int {
	jobs, err := w.queue.ClaimDue(ctx, w.cfg.Now().UTC(), w.cfg.BatchSize)
	if err != nil {
		slog.Error("Failed to claim email jobs", "error", err)
		return 0
	}
	if len(jobs) > 0 {
		slog.Debug("Processing email batch", "count", len(jobs))
	}

	delivered := 0
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		if w.deliver(ctx, job) {
			delivered++
		}
	}
	return delivered
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) bool {
	logger := slog.With("job_id", job.ID, "owner_id", job.OwnerID, "template", job.TemplateType)

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("Failed to render email", "error", err)
		w.fail(ctx, logger, job, err, true)
		return false
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:        job.RecipientEmail,
		Name:      job.RecipientName,
		Subject:   job.Subject,
		HTML:      html,
		Text:      text,
		Reference: job.ID.String(),
		Tags: map[string]string{
			"template": string(job.TemplateType),
			"owner":    job.OwnerID,
		},
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		logger.Error("Failed to send email", "permanent", permanent, "error", err)
		w.fail(ctx, logger, job, err, permanent)
		return false
	}

	job.Deliver(result.ResendID, w.cfg.Now())
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Failed to record sent email", "error", err)
		return false
	}
	logger.Info("Email sent", "resend_id", result.ResendID)
	return true
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, cause error, permanent bool) {
	job.Fail(cause, permanent, w.cfg.Now())
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Failed to record email failure", "error", err)
		return
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job gave up", "attempts", job.Attempts, "last_error", job.LastError)
		return
	}
	logger.Info("Email job rescheduled", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt)
}

func (w *Worker) purge(ctx context.Context) {
	n, err := w.queue.PurgeSent(ctx, w.cfg.Now().Add(-w.cfg.Retention))
	if err != nil {
		slog.Error("Failed to purge sent email jobs", "error", err)
		return
	}
	if n > 0 {
		slog.Info("Purged sent email jobs", "count", n)
	}
}

func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	if job.TemplateType != entity.TemplateWellnessReport {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}

	d := job.TemplateData
	html, text, err := w.renderer.Render(string(job.TemplateType), templates.WellnessReportData{
		UserName:     stringField(d, "user_name"),
		Score:        intField(d, "score"),
		DTILabel:     stringField(d, "dti_label"),
		FocusMessage: stringField(d, "focus_message"),
		Highlights:   lineField(d, "highlights"),
		Components:   lineField(d, "components"),
		DashboardURL: stringField(d, "dashboard_url"),
	})
	if err != nil {
		return "", "", domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render template", err)
	}
	return html, text, nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// intField accepts the float64 that JSON decoding produces.
func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func lineField(data map[string]any, key string) []templates.ReportLine {
	raw, _ := data[key].([]any)
	lines := make([]templates.ReportLine, 0, len(raw))
	for _, item := range raw {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, templates.ReportLine{Label: stringField(row, "label"), Value: stringField(row, "value")})
	}
	return lines
}
