// Package persistence stores goals and queued report emails with GORM.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-dashboard/backend/internal/application/adapter"
	"github.com/finance-dashboard/backend/internal/domain/entity"
	domainerror "github.com/finance-dashboard/backend/internal/domain/error"
	"github.com/finance-dashboard/backend/internal/integration/persistence/model"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository returns a gorm-backed goal store.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID returns ErrGoalNotFound for unknown and soft-deleted goals.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var row model.GoalModel
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainerror.ErrGoalNotFound
	case err != nil:
		return nil, err
	}
	return row.ToEntity(), nil
}

// FindByOwner lists an owner's goals, oldest first.
func (r *goalRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Goal, error) {
	var rows []model.GoalModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, 0, len(rows))
	for i := range rows {
		goals = append(goals, rows[i].ToEntity())
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Save(model.GoalFromEntity(goal)).Error
}

// Delete soft-deletes the goal. Deleting twice reports ErrGoalNotFound.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.GoalModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}
