package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/domain/dto"
	"tasktracker/domain/models"
	"tasktracker/domain/repositories"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
)

type TaskServiceImpl struct {
	taskRepo repositories.TaskRepository
}

func NewTaskService(taskRepo repositories.TaskRepository) services.TaskService {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, ownerID uuid.UUID, req *dto.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, services.ErrEmptyTitle
	}

	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		Priority:    models.TaskPriorityMedium,
		DueDate:     req.DueDate,
		UserID:      ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "user_id", ownerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", ownerID)

	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByOwner(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// "exists but owned by someone else" is deliberately
			// indistinguishable from "does not exist".
			return nil, services.ErrTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to get task", "task_id", taskID, "error", err)
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, ownerID uuid.UUID, req *dto.TaskFilterRequest) ([]*models.Task, error) {
	filter := repositories.TaskFilter{
		Status: req.Status,
		Search: req.Search,
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list tasks", "user_id", ownerID, "error", err)
		return nil, err
	}

	return tasks, nil
}

func (s *TaskServiceImpl) CountTasks(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	count, err := s.taskRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count tasks", "user_id", ownerID, "error", err)
		return 0, err
	}
	return count, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByOwner(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTaskNotFound
		}
		logger.ErrorContext(ctx, "Failed to load task for update", "task_id", taskID, "error", err)
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, services.ErrEmptyTitle
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	task.UpdatedAt = time.Now()

	// The write carries the owner predicate again; rows == 0 means the task
	// vanished (or changed hands) between the read and the write.
	rows, err := s.taskRepo.UpdateOwned(ctx, ownerID, taskID, task)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update task", "task_id", taskID, "error", err)
		return nil, err
	}
	if rows == 0 {
		return nil, services.ErrTaskNotFound
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", ownerID)

	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	// Single owner-scoped DELETE; no separate existence check, so two
	// concurrent deletes cannot both report success.
	rows, err := s.taskRepo.DeleteOwned(ctx, ownerID, taskID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}
	if rows == 0 {
		return services.ErrTaskNotFound
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", ownerID)
	return nil
}
