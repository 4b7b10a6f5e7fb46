// handlers/media.go - Public media gallery reads
package handlers

import (
	"southside/database"
	"southside/models"

	"github.com/gofiber/fiber/v2"
)

// ListMedia returns gallery items, newest first
// GET /api/media
func ListMedia(c *fiber.Ctx) error {
	db := database.GetDB()

	query := db.Model(&models.MediaItem{}).Order("created_at DESC")

	if mediaType := c.Query("type"); mediaType != "" {
		if !models.MediaType(mediaType).Valid() {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid media type"})
		}
		query = query.Where("media_type = ?", mediaType)
	}

	var items []models.MediaItem
	if err := query.Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch media"})
	}

	return c.JSON(fiber.Map{"success": true, "media": items})
}

// GetMedia returns one gallery item
// GET /api/media/:id
func GetMedia(c *fiber.Ctx) error {
	db := database.GetDB()

	var item models.MediaItem
	if err := db.First(&item, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Media not found"})
	}

	return c.JSON(fiber.Map{"success": true, "media": item})
}
