package systemController

import (
	"log"

	"hostelcare/database"
	"hostelcare/middleware"

	"github.com/gofiber/fiber/v2"
)

// InitDatabase creates the schema if absent. Idempotent, so calling it
// on an already initialised deployment is a no-op.
func InitDatabase(c *fiber.Ctx) error {
	if err := database.Migrate(database.Database.Db); err != nil {
		log.Printf("Migration failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Database initialization failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Database initialized successfully.", nil)
}

// Health is a liveness probe
func Health(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
}
