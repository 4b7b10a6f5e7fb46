// handlers/admin/content.go - Roster, jersey and gallery management
package admin

import (
	"strings"

	"southside/database"
	"southside/middleware"
	"southside/models"
	"southside/services"

	"github.com/gofiber/fiber/v2"
)

// ================== TEAM ROSTER ==================

type TeamMemberRequest struct {
	UserID    *uint  `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	PhotoURL  string `json:"photo_url"`
	SortOrder int    `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// CreateTeamMember adds a roster entry
// POST /api/admin/team
func CreateTeamMember(c *fiber.Ctx) error {
	var req TeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name is required"})
	}

	member := models.TeamMember{
		UserID:    req.UserID,
		Name:      strings.TrimSpace(req.Name),
		Role:      req.Role,
		PhotoURL:  req.PhotoURL,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	db := database.GetDB()
	if err := db.Create(&member).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create team member"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "member": member})
}

// Patch-style update: absent fields are left alone, following the same
// pointer convention the application decision endpoint uses.
type UpdateTeamMemberRequest struct {
	UserID    *uint   `json:"user_id"`
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	PhotoURL  *string `json:"photo_url"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateTeamMember edits a roster entry
// PUT /api/admin/team/:id
func UpdateTeamMember(c *fiber.Ctx) error {
	db := database.GetDB()

	var member models.TeamMember
	if err := db.First(&member, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team member not found"})
	}

	var req UpdateTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name cannot be empty"})
		}
		member.Name = name
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.PhotoURL != nil {
		member.PhotoURL = *req.PhotoURL
	}
	if req.SortOrder != nil {
		member.SortOrder = *req.SortOrder
	}
	if req.UserID != nil {
		member.UserID = req.UserID
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := db.Save(&member).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update team member"})
	}

	return c.JSON(fiber.Map{"success": true, "member": member})
}

// DeleteTeamMember removes a roster entry
// DELETE /api/admin/team/:id
func DeleteTeamMember(c *fiber.Ctx) error {
	db := database.GetDB()

	var member models.TeamMember
	if err := db.First(&member, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team member not found"})
	}

	if err := db.Delete(&member).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete team member"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// ================== JERSEYS / SHOWCASE ==================

type JerseyRequest struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Season      string `json:"season"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// CreateJersey adds a showcase entry
// POST /api/admin/jerseys
func CreateJersey(c *fiber.Ctx) error {
	var req JerseyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.ImageURL) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name and image URL are required"})
	}

	jersey := models.Jersey{
		Name:        strings.TrimSpace(req.Name),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Season:      req.Season,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}

	db := database.GetDB()
	if err := db.Create(&jersey).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create jersey"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "jersey": jersey})
}

type UpdateJerseyRequest struct {
	Name        *string `json:"name"`
	ImageURL    *string `json:"image_url"`
	Season      *string `json:"season"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// UpdateJersey edits a showcase entry
// PUT /api/admin/jerseys/:id
func UpdateJersey(c *fiber.Ctx) error {
	db := database.GetDB()

	var jersey models.Jersey
	if err := db.First(&jersey, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Jersey not found"})
	}

	var req UpdateJerseyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name cannot be empty"})
		}
		jersey.Name = name
	}
	if req.ImageURL != nil {
		imageURL := strings.TrimSpace(*req.ImageURL)
		if imageURL == "" {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Image URL cannot be empty"})
		}
		jersey.ImageURL = imageURL
	}
	if req.Season != nil {
		jersey.Season = *req.Season
	}
	if req.Description != nil {
		jersey.Description = *req.Description
	}
	if req.SortOrder != nil {
		jersey.SortOrder = *req.SortOrder
	}

	if err := db.Save(&jersey).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update jersey"})
	}

	return c.JSON(fiber.Map{"success": true, "jersey": jersey})
}

// DeleteJersey removes a showcase entry
// DELETE /api/admin/jerseys/:id
func DeleteJersey(c *fiber.Ctx) error {
	db := database.GetDB()

	var jersey models.Jersey
	if err := db.First(&jersey, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Jersey not found"})
	}

	if err := db.Delete(&jersey).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete jersey"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// ================== MEDIA GALLERY ==================

type MediaRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaType   string `json:"media_type"`
}

// CreateMedia adds a gallery item. media_type is an explicit field; a legacy
// "[TYPE:x]" description prefix is still understood and folded into it.
// POST /api/admin/media
func CreateMedia(c *fiber.Ctx) error {
	var req MediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if strings.TrimSpace(req.URL) == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "URL is required"})
	}

	if req.MediaType != "" && !models.MediaType(req.MediaType).Valid() {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid media type"})
	}

	userID, _ := middleware.GetUserID(c)
	uploaderEmail := middleware.GetEmail(c)

	item := models.MediaItem{
		URL:           strings.TrimSpace(req.URL),
		Title:         req.Title,
		Description:   req.Description,
		MediaType:     models.MediaType(req.MediaType),
		UploaderEmail: uploaderEmail,
	}
	if userID != 0 {
		item.UploaderID = &userID
	}

	db := database.GetDB()
	if err := db.Create(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create media"})
	}

	services.Publish("images", "insert", item)

	return c.Status(201).JSON(fiber.Map{"success": true, "media": item})
}

type UpdateMediaRequest struct {
	URL         *string `json:"url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	MediaType   *string `json:"media_type"`
}

// UpdateMedia edits a gallery item
// PUT /api/admin/media/:id
func UpdateMedia(c *fiber.Ctx) error {
	db := database.GetDB()

	var item models.MediaItem
	if err := db.First(&item, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Media not found"})
	}

	var req UpdateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.MediaType != nil && !models.MediaType(*req.MediaType).Valid() {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid media type"})
	}

	if req.URL != nil {
		url := strings.TrimSpace(*req.URL)
		if url == "" {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "URL cannot be empty"})
		}
		item.URL = url
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.MediaType != nil {
		item.MediaType = models.MediaType(*req.MediaType)
	}

	if err := db.Save(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update media"})
	}

	services.Publish("images", "update", item)

	return c.JSON(fiber.Map{"success": true, "media": item})
}

// DeleteMedia removes a gallery item
// DELETE /api/admin/media/:id
func DeleteMedia(c *fiber.Ctx) error {
	db := database.GetDB()

	var item models.MediaItem
	if err := db.First(&item, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Media not found"})
	}

	if err := db.Delete(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete media"})
	}

	services.Publish("images", "delete", fiber.Map{"id": item.ID})

	return c.JSON(fiber.Map{"success": true})
}
