package complaintRoutes

import (
	complaintControllers "hostelcare/controllers/complaint"
	"hostelcare/middleware"
	complaintValidators "hostelcare/validators/complaint"

	"github.com/gofiber/fiber/v2"
)

func SetupComplaintRoutes(app *fiber.App) {
	complaintGroup := app.Group("/complaints")

	complaintGroup.Get("/", complaintValidators.ListComplaints(), middleware.JWTMiddleware, complaintControllers.ComplaintList)
	complaintGroup.Post("/", complaintValidators.CreateComplaint(), middleware.JWTMiddleware, middleware.RequireRole("student"), complaintControllers.CreateComplaint)
	complaintGroup.Get("/stats", middleware.JWTMiddleware, middleware.RequireRole("admin"), complaintControllers.ComplaintStats)
	complaintGroup.Put("/:id", complaintValidators.UpdateStatus(), middleware.JWTMiddleware, middleware.RequireRole("admin"), complaintControllers.UpdateComplaintStatus)
}
