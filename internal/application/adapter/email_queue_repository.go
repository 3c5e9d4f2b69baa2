package adapter

import (
	"context"
	"time"

	"github.com/finance-dashboard/backend/internal/domain/entity"
)

// EmailQueueRepository stores report emails between the API and the delivery worker.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue marks up to limit pending jobs due at now as processing and returns them,
	// oldest schedule first.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error

	// PurgeSent deletes sent jobs processed before the cutoff.
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}
