package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. Transitions between them are unrestricted.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000"`
	Status      string    `gorm:"size:20;not null;default:'todo'"`
	Priority    string    `gorm:"size:10;not null;default:'medium'"`
	DueDate     *time.Time
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_owner_created,priority:1"`
	User        User      `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time `gorm:"index:idx_tasks_owner_created,priority:2"`
	UpdatedAt   time.Time
}

func (Task) TableName() string {
	return "tasks"
}
