package complaintValidator

import (
	"strings"

	"hostelcare/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateComplaintRequest carries the validated complaint payload
type CreateComplaintRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ListComplaintsRequest carries the optional listing filters
type ListComplaintsRequest struct {
	Status   string `query:"status"`
	Category string `query:"category"`
}

// UpdateStatusRequest carries the validated status update payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateComplaint validator middleware
func CreateComplaint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateComplaintRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Category validation
		reqData.Category = strings.TrimSpace(reqData.Category)
		if reqData.Category == "" {
			errors["category"] = "Category is required!"
		}

		// Description validation
		reqData.Description = strings.TrimSpace(reqData.Description)
		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 10 {
			errors["description"] = "Description must be at least 10 characters long!"
		}

		// Priority validation (optional, defaults to medium)
		validPriority := map[string]bool{"low": true, "medium": true, "high": true}
		if reqData.Priority != "" && !validPriority[reqData.Priority] {
			errors["priority"] = "Invalid priority! Allowed: low, medium, high"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComplaint", reqData)
		return c.Next()
	}
}

// ListComplaints validator middleware. Filters are matched by exact
// equality downstream, so out-of-set values are passed through and
// simply match nothing.
func ListComplaints() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListComplaintsRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// UpdateStatus validator middleware
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateStatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		validStatus := map[string]bool{"pending": true, "in_progress": true, "resolved": true}
		if !validStatus[reqData.Status] {
			errors["status"] = "Invalid status! Allowed: pending, in_progress, resolved"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
