// handlers/jerseys.go - Public jersey/showcase page
package handlers

import (
	"southside/database"
	"southside/models"

	"github.com/gofiber/fiber/v2"
)

// GetJerseys returns showcase entries in display order
// GET /api/jerseys
func GetJerseys(c *fiber.Ctx) error {
	db := database.GetDB()

	var jerseys []models.Jersey
	if err := db.Order("sort_order ASC, created_at DESC").Find(&jerseys).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch jerseys"})
	}

	return c.JSON(fiber.Map{"success": true, "jerseys": jerseys})
}
