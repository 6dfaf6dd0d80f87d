package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasktracker/domain/dto"
	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	token, user, err := h.userService.Signup(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return utils.ConflictResponse(c, err.Error())
		}
		logger.ErrorContext(ctx, "Signup failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.CreatedResponse(c, dto.AuthResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLogin), errors.Is(err, services.ErrAccountDisabled):
			return utils.UnauthorizedResponse(c, err.Error(), nil)
		default:
			logger.ErrorContext(ctx, "Login failed", "error", err)
			return utils.InternalServerErrorResponse(c)
		}
	}

	return utils.SuccessResponse(c, dto.AuthResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}
