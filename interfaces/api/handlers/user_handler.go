package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasktracker/domain/dto"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
	taskService services.TaskService
}

func NewUserHandler(userService services.UserService, taskService services.TaskService) *UserHandler {
	return &UserHandler{
		userService: userService,
		taskService: taskService,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "", nil)
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		logger.ErrorContext(ctx, "Failed to load profile", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	taskCount, err := h.taskService.CountTasks(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count tasks for profile", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.ProfileResponse{
		UserResponse: *dto.UserToUserResponse(profile),
		TaskCount:    taskCount,
	})
}
