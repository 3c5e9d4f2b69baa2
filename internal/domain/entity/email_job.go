package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template a job is rendered with.
type EmailTemplateType string

const (
	TemplateWellnessReport EmailTemplateType = "wellness_report"
)

// IsValid returns true if a template exists for the type.
func (t EmailTemplateType) IsValid() bool {
	return t == TemplateWellnessReport
}

// DefaultEmailMaxAttempts bounds delivery attempts before a job is given up.
const DefaultEmailMaxAttempts = 3

// emailRetryDelays is indexed by the number of attempts already made.
var emailRetryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is an owner's report email waiting in the delivery queue.
type EmailJob struct {
	ID             uuid.UUID
	OwnerID        string
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob returns a pending job due at now.
func NewEmailJob(ownerID string, templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]any, now time.Time) *EmailJob {
	if data == nil {
		data = map[string]any{}
	}
	now = now.UTC()
	return &EmailJob{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// Due reports whether a pending job may be picked up at now.
func (e *EmailJob) Due(now time.Time) bool {
	return e.Status == EmailStatusPending && !e.ScheduledAt.After(now.UTC())
}

// Claim moves a job into processing.
func (e *EmailJob) Claim() {
	e.Status = EmailStatusProcessing
}

// Deliver records a successful send.
func (e *EmailJob) Deliver(resendID string, now time.Time) {
	processed := now.UTC()
	e.Status = EmailStatusSent
	e.ResendID = resendID
	e.LastError = ""
	e.ProcessedAt = &processed
}

// Fail records a failed attempt. Permanent failures and exhausted jobs end as failed;
// anything else goes back to pending with a backoff.
func (e *EmailJob) Fail(err error, permanent bool, now time.Time) {
	now = now.UTC()
	e.Attempts++
	if err != nil {
		e.LastError = err.Error()
	}

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts < len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(delay)
}
