package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasktracker/domain/services"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/utils"
)

// Protected validates the bearer token and stores the resolved identity in
// fiber locals. The error details carry a machine-readable reason so clients
// can tell "send a credential" apart from "re-authenticate".
func Protected(jwtSecret string, userService services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header",
				fiber.Map{"reason": "missing_credential"})
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format",
				fiber.Map{"reason": "missing_credential"})
		}

		userCtx, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired",
					fiber.Map{"reason": "invalid_credential"})
			default:
				return utils.UnauthorizedResponse(c, "Invalid token",
					fiber.Map{"reason": "invalid_credential"})
			}
		}

		// The token alone is not enough: the account behind it must still
		// exist and be active.
		if err := userService.VerifyAccount(c.UserContext(), userCtx.ID); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrAccountDisabled):
				logger.WarnContext(c.UserContext(), "Rejected token for unusable account",
					"user_id", userCtx.ID, "error", err)
				return utils.UnauthorizedResponse(c, "Invalid token",
					fiber.Map{"reason": "invalid_credential"})
			default:
				return utils.InternalServerErrorResponse(c)
			}
		}

		c.Locals("user", userCtx)

		return c.Next()
	}
}
