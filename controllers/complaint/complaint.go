package complaintController

import (
	"errors"
	"log"
	"time"

	"hostelcare/config"
	"hostelcare/database"
	"hostelcare/middleware"
	"hostelcare/models"
	"hostelcare/utils"
	complaintValidator "hostelcare/validators/complaint"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminComplaintRow is a complaint joined with its owner for the admin view
type AdminComplaintRow struct {
	ID          uint      `json:"ID"`
	CreatedAt   time.Time `json:"CreatedAt"`
	UpdatedAt   time.Time `json:"UpdatedAt"`
	UserID      uint      `json:"user_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	UserRoom    string    `json:"user_room"`
}

func CreateComplaint(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedComplaint").(*complaintValidator.CreateComplaintRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Owner is always the caller; an externally supplied user id is never accepted
	complaint := models.Complaint{
		UserID:      userId,
		Category:    reqData.Category,
		Description: reqData.Description,
		Priority:    "medium",
		Status:      "pending",
	}
	if reqData.Priority != "" {
		complaint.Priority = reqData.Priority
	}

	if err := database.Database.Db.Create(&complaint).Error; err != nil {
		log.Printf("Error saving complaint: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create complaint!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Complaint submitted successfully.", fiber.Map{
		"complaint": complaint,
	})
}

func ComplaintList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedList").(*complaintValidator.ListComplaintsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if role == "admin" {
		// Admin view joins the owner's name, email and room number
		db := database.Database.Db.
			Table("complaints").
			Select("complaints.id, complaints.created_at, complaints.updated_at, complaints.user_id, complaints.category, complaints.description, complaints.priority, complaints.status, users.name AS user_name, users.email AS user_email, users.room_number AS user_room").
			Joins("JOIN users ON users.id = complaints.user_id").
			Where("complaints.deleted_at IS NULL")

		if reqData.Status != "" {
			db = db.Where("complaints.status = ?", reqData.Status)
		}
		if reqData.Category != "" {
			db = db.Where("complaints.category = ?", reqData.Category)
		}

		var rows []AdminComplaintRow
		if err := db.Order("complaints.created_at DESC").Scan(&rows).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch complaints!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaints fetched successfully.", fiber.Map{
			"complaints": rows,
		})
	}

	// Students only ever see their own complaints, whatever filters are supplied
	db := database.Database.Db.Where("user_id = ?", userId)
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}

	var complaints []models.Complaint
	if err := db.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch complaints!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaints fetched successfully.", fiber.Map{
		"complaints": complaints,
	})
}

func UpdateComplaintStatus(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStatus").(*complaintValidator.UpdateStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	complaintId, err := c.ParamsInt("id")
	if err != nil || complaintId < 1 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
	}

	var complaint models.Complaint
	if err := database.Database.Db.First(&complaint, complaintId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Complaint not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch complaint!", nil)
	}

	complaint.Status = reqData.Status
	if err := database.Database.Db.Save(&complaint).Error; err != nil {
		log.Printf("Error updating complaint %d: %v", complaint.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update complaint!", nil)
	}

	// Notify the complaint owner. Failures are logged only; the status
	// update has already been committed.
	if config.AppConfig.EmailSender != "" {
		var owner models.User
		if err := database.Database.Db.First(&owner, complaint.UserID).Error; err == nil {
			go func(email, category, status string) {
				if err := utils.SendStatusUpdateEmail(email, category, status); err != nil {
					log.Printf("Error sending status update email: %v", err)
				}
			}(owner.Email, complaint.Category, complaint.Status)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint status updated.", fiber.Map{
		"complaint": complaint,
	})
}

// ComplaintStats returns the status breakdown for the admin dashboard
func ComplaintStats(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Complaint{})

	var total, pending, inProgress, resolved int64
	if err := db.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	database.Database.Db.Model(&models.Complaint{}).Where("status = ?", "pending").Count(&pending)
	database.Database.Db.Model(&models.Complaint{}).Where("status = ?", "in_progress").Count(&inProgress)
	database.Database.Db.Model(&models.Complaint{}).Where("status = ?", "resolved").Count(&resolved)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Complaint stats.", fiber.Map{
		"total":       total,
		"pending":     pending,
		"in_progress": inProgress,
		"resolved":    resolved,
	})
}
