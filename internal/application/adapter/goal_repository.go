package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-dashboard/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create stores a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID. Soft-deleted goals are not returned.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByOwner retrieves all goals for an owner, oldest first.
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.Goal, error)

	// Update saves changes to an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
