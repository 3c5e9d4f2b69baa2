package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/email/templates"
)

var testNow = time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type memoryQueue struct {
	jobs    []*entity.EmailJob
	purges  []time.Time
	saveErr error
}

func (q *memoryQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memoryQueue) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if len(out) == limit {
			break
		}
		if j.Due(now) {
			j.Claim()
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) Save(ctx context.Context, job *entity.EmailJob) error {
	return q.saveErr
}

func (q *memoryQueue) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	q.purges = append(q.purges, before)
	return 0, nil
}

// recordingSender captures every message and can be told to fail.
type recordingSender struct {
	sent      []adapter.SendEmailInput
	failWith  error
	permanent bool
}

func (s *recordingSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.sent = append(s.sent, input)
	if s.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if s.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "send failed", s.failWith)
	}
	return &adapter.SendEmailResult{ResendID: "re_" + input.Reference[:8]}, nil
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{Now: fixedClock})
}

func queueReport(t *testing.T, queue *memoryQueue) *entity.EmailJob {
	t.Helper()
	svc := NewService(queue, "https://dashboard.example.com", fixedClock)
	queued, err := svc.QueueWellnessReportEmail(context.Background(), adapter.QueueWellnessReportInput{
		OwnerID:        "owner-1",
		RecipientEmail: "sam@example.com",
		RecipientName:  "Sam",
		Score:          71,
		DTILabel:       "Good",
		FocusMessage:   "Keep it up.",
		Highlights:     []adapter.ReportLine{{Label: "Monthly income", Value: "$5,000.00"}},
	})
	if err != nil {
		t.Fatalf("QueueWellnessReportEmail() error = %v", err)
	}
	if queued.ScheduledAt != "2025-06-30T09:00:00Z" {
		t.Errorf("ScheduledAt = %q", queued.ScheduledAt)
	}
	return queue.jobs[len(queue.jobs)-1]
}

func TestService_QueueWellnessReportEmail(t *testing.T) {
	queue := &memoryQueue{}
	job := queueReport(t, queue)

	if job.OwnerID != "owner-1" || job.Status != entity.EmailStatusPending {
		t.Errorf("job = %+v", job)
	}
	if job.Subject != "Your financial wellness score: 71/100" {
		t.Errorf("subject = %q", job.Subject)
	}
	if job.TemplateData["dashboard_url"] != "https://dashboard.example.com" {
		t.Errorf("template data = %+v", job.TemplateData)
	}
	if _, ok := job.TemplateData["owner_id"]; ok {
		t.Error("owner id belongs on the job, not in template data")
	}
}

func TestWorker_ProcessNow(t *testing.T) {
	t.Run("sends rendered report", func(t *testing.T) {
		queue := &memoryQueue{}
		job := queueReport(t, queue)
		sender := &recordingSender{}

		if n := newTestWorker(t, queue, sender).ProcessNow(context.Background()); n != 1 {
			t.Fatalf("ProcessNow() = %d, want 1", n)
		}

		if job.Status != entity.EmailStatusSent || job.ProcessedAt == nil || !job.ProcessedAt.Equal(testNow) {
			t.Fatalf("job = %+v", job)
		}
		if len(sender.sent) != 1 {
			t.Fatalf("sent %d emails, want 1", len(sender.sent))
		}
		sent := sender.sent[0]
		if sent.To != "sam@example.com" || sent.HTML == "" || sent.Text == "" {
			t.Errorf("sent = %+v", sent)
		}
		if sent.Reference != job.ID.String() {
			t.Errorf("Reference = %q, want job id", sent.Reference)
		}
		if sent.Tags["owner"] != "owner-1" || sent.Tags["template"] != "wellness_report" {
			t.Errorf("Tags = %v", sent.Tags)
		}
	})

	t.Run("skips jobs scheduled later", func(t *testing.T) {
		queue := &memoryQueue{}
		job := queueReport(t, queue)
		job.ScheduledAt = testNow.Add(time.Minute)
		sender := &recordingSender{}

		if n := newTestWorker(t, queue, sender).ProcessNow(context.Background()); n != 0 {
			t.Errorf("ProcessNow() = %d, want 0", n)
		}
		if len(sender.sent) != 0 || job.Status != entity.EmailStatusPending {
			t.Errorf("job = %+v", job)
		}
	})

	t.Run("schedules retry on temporary failure", func(t *testing.T) {
		queue := &memoryQueue{}
		job := queueReport(t, queue)
		sender := &recordingSender{failWith: errors.New("503 service unavailable")}

		newTestWorker(t, queue, sender).ProcessNow(context.Background())

		if job.Status != entity.EmailStatusPending || job.Attempts != 1 {
			t.Errorf("job = %+v", job)
		}
		if !job.ScheduledAt.Equal(testNow.Add(time.Minute)) {
			t.Errorf("ScheduledAt = %v, want one minute later", job.ScheduledAt)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		queue := &memoryQueue{}
		job := queueReport(t, queue)
		job.Attempts = entity.DefaultEmailMaxAttempts - 1
		sender := &recordingSender{failWith: errors.New("503 service unavailable")}

		newTestWorker(t, queue, sender).ProcessNow(context.Background())

		if job.Status != entity.EmailStatusFailed || job.LastError == "" {
			t.Errorf("job = %+v", job)
		}
	})

	t.Run("fails permanently on permanent error", func(t *testing.T) {
		queue := &memoryQueue{}
		job := queueReport(t, queue)
		sender := &recordingSender{failWith: errors.New("401 unauthorized"), permanent: true}

		newTestWorker(t, queue, sender).ProcessNow(context.Background())

		if job.Status != entity.EmailStatusFailed || job.ProcessedAt == nil {
			t.Errorf("job = %+v", job)
		}
	})

	t.Run("rejects unknown template", func(t *testing.T) {
		queue := &memoryQueue{}
		job := entity.NewEmailJob("owner-1", "newsletter", "a@b.io", "", "Hi", nil, testNow)
		_ = queue.Create(context.Background(), job)
		sender := &recordingSender{}

		newTestWorker(t, queue, sender).ProcessNow(context.Background())

		if job.Status != entity.EmailStatusFailed {
			t.Errorf("status = %s, want failed", job.Status)
		}
		if len(sender.sent) != 0 {
			t.Error("nothing should be sent for an unknown template")
		}
	})

	t.Run("does not count unsaved deliveries", func(t *testing.T) {
		queue := &memoryQueue{saveErr: errors.New("db down")}
		queueReport(t, queue)

		if n := newTestWorker(t, queue, &recordingSender{}).ProcessNow(context.Background()); n != 0 {
			t.Errorf("ProcessNow() = %d, want 0", n)
		}
	})
}

func TestWorker_StartStopsOnCancel(t *testing.T) {
	queue := &memoryQueue{}
	w := NewWorker(queue, &recordingSender{}, nil, WorkerConfig{
		PollInterval:    time.Millisecond,
		CleanupInterval: time.Millisecond,
		Retention:       24 * time.Hour,
		Now:             fixedClock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	if len(queue.purges) == 0 {
		t.Fatal("expected sent-job cleanup to run")
	}
	if want := testNow.Add(-24 * time.Hour); !queue.purges[0].Equal(want) {
		t.Errorf("purge cutoff = %v, want %v", queue.purges[0], want)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("401 Unauthorized"), true},
		{errors.New("422 validation_error"), true},
		{errors.New("429 rate limit"), false},
		{errors.New("500 internal"), false},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.want {
				t.Errorf("isPermanentError() = %v, want %v", got, tt.want)
			}
		})
	}
}
