package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktracker/interfaces/api/handlers"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	users := api.Group("/users")
	users.Use(protected)
	users.Get("/profile", h.UserHandler.GetProfile)
}
