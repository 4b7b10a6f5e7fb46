// handlers/teams.go - Public team roster
package handlers

import (
	"southside/database"
	"southside/models"

	"github.com/gofiber/fiber/v2"
)

// GetTeamRoster returns active roster entries in display order
// GET /api/team
func GetTeamRoster(c *fiber.Ctx) error {
	db := database.GetDB()

	var members []models.TeamMember
	if err := db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&members).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch team"})
	}

	return c.JSON(fiber.Map{"success": true, "team": members})
}
