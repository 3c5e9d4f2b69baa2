package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository returns a gorm-backed report email queue.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			err,
		)
	}
	return nil
}

// ClaimDue selects due jobs and flips them to processing in one transaction.
// A row is claimed by at most one caller.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var claimed []*entity.EmailJob

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.EmailQueueModel
		err := tx.
			Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now.UTC()).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		update := tx.Model(&model.EmailQueueModel{}).
			Where("id IN ? AND status = ?", ids, entity.EmailStatusPending).
			Update("status", entity.EmailStatusProcessing)
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected != int64(len(rows)) {
			return fmt.Errorf("claimed %d of %d email jobs", update.RowsAffected, len(rows))
		}

		claimed = make([]*entity.EmailJob, len(rows))
		for i := range rows {
			job := rows[i].ToEntity()
			job.Claim()
			claimed[i] = job
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

func (r *emailQueueRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, before.UTC()).
		Delete(&model.EmailQueueModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
