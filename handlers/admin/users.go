// handlers/admin/users.go
package admin

import (
	"log"

	"southside/database"
	"southside/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUsers returns all users with pagination
// GET /api/admin/users?page=&limit=&search=
func GetUsers(c *fiber.Ctx) error {
	db := database.GetDB()

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search", "")

	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := db.Model(&models.User{})

	if search != "" {
		query = query.Where("username ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns a single user by ID
// GET /api/admin/users/:id
func GetUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.Preload("Profile").Preload("Applications").First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user)
}

// BanUser bans or unbans a user
// POST /api/admin/users/:id/ban
func BanUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var banData struct {
		IsBanned bool `json:"is_banned"`
	}
	if err := c.BodyParser(&banData); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user.IsBanned = banData.IsBanned
	if err := db.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to update ban status",
		})
	}

	return c.JSON(user)
}

// DeleteUser deletes a user along with their media, profile, roster
// entries, applications and forum contributions. Allow-listed admins cannot
// be deleted through the API at all.
// DELETE /api/admin/users/:id
func DeleteUser(c *fiber.Ctx) error {
	db := database.GetDB()
	id := c.Params("id")

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	isAdmin, err := database.IsAdminEmail(user.EmailOrEmpty())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to check admin status",
		})
	}
	if isAdmin {
		return c.Status(403).JSON(fiber.Map{
			"error": "Cannot delete admin users",
		})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("uploader_id = ?", user.ID).Delete(&models.MediaItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.FormReply{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM form_replies WHERE form_id IN (SELECT id FROM forms WHERE author_id = ?)", user.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Form{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})

	if err != nil {
		log.Printf("Failed to delete user %s: %v", id, err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
