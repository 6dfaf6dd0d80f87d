package services

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/domain/dto"
	"tasktracker/domain/models"
)

// TaskService scopes every operation to the owner passed in explicitly.
// The owner id always comes from the validated credential, never from the
// request body.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID uuid.UUID, req *dto.TaskFilterRequest) ([]*models.Task, error)
	CountTasks(ctx context.Context, ownerID uuid.UUID) (int64, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}
