// handlers/admin/applications.go - Review queue and decisions
package admin

import (
	"errors"
	"log"
	"strconv"

	"southside/database"
	"southside/middleware"
	"southside/models"
	"southside/services"

	"github.com/gofiber/fiber/v2"
)

var applicationService *services.ApplicationService

// InitApplicationHandlers initializes the shared application service
func InitApplicationHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before admin.InitApplicationHandlers")
	}
	applicationService = services.NewApplicationService(db)
}

// Columns the review queue may sort by. Anything else falls back to the
// default ordering.
var applicationSortColumns = map[string]string{
	"created_at":  "created_at",
	"updated_at":  "updated_at",
	"full_name":   "full_name",
	"age":         "age",
	"fivem_hours": "fivem_hours",
	"status":      "status",
}

// GetApplications lists applications for the review queue
// GET /api/admin/applications?status=pending&search=&sort=created_at&order=desc
func GetApplications(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.Application{}).Preload("User")

	if status := c.Query("status"); status != "" {
		if !models.ApplicationStatus(status).Valid() {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"full_name ILIKE ? OR discord_nick ILIKE ? OR discord_id ILIKE ? OR steam_profile ILIKE ?",
			like, like, like, like,
		)
	}

	sortCol, ok := applicationSortColumns[c.Query("sort")]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if c.Query("order") == "asc" {
		order = "ASC"
	}
	// id as secondary key keeps equal-valued rows stable between fetches
	query = query.Order(sortCol + " " + order).Order("id ASC")

	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch applications"})
	}

	return c.JSON(fiber.Map{"success": true, "applications": apps})
}

// GetApplication returns one application with its submitter
// GET /api/admin/applications/:id
func GetApplication(c *fiber.Ctx) error {
	db := database.GetDB()

	var app models.Application
	if err := db.Preload("User").First(&app, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Application not found"})
	}

	return c.JSON(fiber.Map{"success": true, "application": app})
}

type UpdateApplicationRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// UpdateApplication applies a decision and/or notes to one application.
// Unknown status values are a 400, not silently dropped; a reject always
// requires notes, in the list view as much as the detail view.
// PUT /api/admin/applications/:id
func UpdateApplication(c *fiber.Ctx) error {
	appID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid application ID"})
	}

	var req UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	adminEmail := middleware.GetEmail(c)
	app, err := applicationService.Decide(uint(appID), req.Status, req.AdminNotes, adminEmail)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Application not found"})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid status value"})
		case errors.Is(err, services.ErrNotPending):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Application has already been decided"})
		case errors.Is(err, services.ErrNotesRequired):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Admin notes are required to reject"})
		case errors.Is(err, services.ErrNothingToUpdate):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Nothing to update"})
		}
		log.Printf("Application update failed for id %d: %v", appID, err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update application"})
	}

	services.Publish("applications", "update", app)

	return c.JSON(fiber.Map{"success": true, "application": app})
}
