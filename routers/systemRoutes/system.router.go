package systemRoutes

import (
	systemControllers "hostelcare/controllers/system"

	"github.com/gofiber/fiber/v2"
)

func SetupSystemRoutes(app *fiber.App) {
	app.Get("/init", systemControllers.InitDatabase)
	app.Get("/health", systemControllers.Health)
}
