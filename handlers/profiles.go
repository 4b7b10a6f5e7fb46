// handlers/profiles.go - Own-profile management
package handlers

import (
	"errors"
	"time"

	"southside/database"
	"southside/middleware"
	"southside/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetProfile returns the caller's profile, or null before first edit
// GET /api/profile
func GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"success": true, "profile": nil})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

// UpdateProfile upserts the caller's profile row
// PUT /api/profile
func UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if middleware.IsGuest(c) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Guests cannot edit a profile"})
	}

	var req struct {
		Nickname string `json:"nickname"`
		Bio      string `json:"bio"`
		Avatar   string `json:"avatar"`
		Discord  string `json:"discord"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	db := database.GetDB()

	var profile models.Profile
	err = db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.Profile{
			UserID:   userID,
			Nickname: req.Nickname,
			Bio:      req.Bio,
			Avatar:   req.Avatar,
			Discord:  req.Discord,
		}
		if err := db.Create(&profile).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create profile"})
		}
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch profile"})
	default:
		if err := db.Model(&profile).Updates(map[string]interface{}{
			"nickname":   req.Nickname,
			"bio":        req.Bio,
			"avatar":     req.Avatar,
			"discord":    req.Discord,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
		}
		db.Where("user_id = ?", userID).First(&profile)
	}

	return c.JSON(fiber.Map{"success": true, "profile": profile})
}
