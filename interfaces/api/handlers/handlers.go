package handlers

import (
	"tasktracker/domain/services"
)

// Services holds everything the handlers need.
type Services struct {
	UserService services.UserService
	TaskService services.TaskService
}

// Handlers groups all HTTP handlers.
type Handlers struct {
	AuthHandler *AuthHandler
	UserHandler *UserHandler
	TaskHandler *TaskHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler: NewAuthHandler(services.UserService),
		UserHandler: NewUserHandler(services.UserService, services.TaskService),
		TaskHandler: NewTaskHandler(services.TaskService),
	}
}
