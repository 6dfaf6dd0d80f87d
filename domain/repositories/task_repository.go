package repositories

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/domain/models"
)

// TaskFilter narrows ListByOwner. Zero values mean "no constraint".
type TaskFilter struct {
	Status string // exact match against the status column
	Search string // case-insensitive substring of title or description
}

// TaskRepository is owner-keyed: every lookup and mutation carries the owning
// user's id in the same store operation, so an ownership check can never
// observe different state than the write it guards.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByOwner(ctx context.Context, ownerID, id uuid.UUID) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*models.Task, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// UpdateOwned and DeleteOwned report the number of rows touched;
	// zero means no task with that id belongs to ownerID.
	UpdateOwned(ctx context.Context, ownerID, id uuid.UUID, task *models.Task) (int64, error)
	DeleteOwned(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}
