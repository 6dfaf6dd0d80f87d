package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasktracker/interfaces/api/handlers"
)

// SetupRoutes wires all route groups. protected is the auth middleware,
// built once in main with its service dependencies.
func SetupRoutes(app *fiber.App, h *handlers.Handlers, protected fiber.Handler) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h)
	SetupUserRoutes(api, h, protected)
	SetupTaskRoutes(api, h, protected)
}
