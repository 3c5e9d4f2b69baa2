package adapter

import (
	"context"
)

// SendEmailInput is one rendered message.
type SendEmailInput struct {
	To        string
	Name      string
	Subject   string
	HTML      string
	Text      string
	Reference string            // Queue job id, forwarded as a provider header
	Tags      map[string]string // Provider-side labels for filtering deliveries
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender delivers rendered messages through an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueueWellnessReportEmail queues a wellness report for delivery.
	QueueWellnessReportEmail(ctx context.Context, input QueueWellnessReportInput) (*QueuedEmail, error)
}

// QueueWellnessReportInput carries pre-formatted report fields for the template.
type QueueWellnessReportInput struct {
	OwnerID        string
	RecipientEmail string
	RecipientName  string
	Score          int
	DTILabel       string
	FocusMessage   string
	Highlights     []ReportLine // Figures rendered as a two-column table
	Components     []ReportLine
}

// ReportLine is a label/value row in a report email.
type ReportLine struct {
	Label string
	Value string
}

// QueuedEmail identifies a job accepted by the queue.
type QueuedEmail struct {
	JobID       string
	ScheduledAt string
}
