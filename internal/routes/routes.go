package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/handlers"
)

// SetupRoutes configures all application routes with dependencies
func SetupRoutes(app *fiber.App, healthHandler *handlers.HealthHandler, mappingsHandler *handlers.MappingsHandler) {
	// Health check endpoint
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	api.Get("/users/:userID/workorders", mappingsHandler.GetUserWorkOrders)
}
