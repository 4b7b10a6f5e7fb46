// handlers/forms.go - Lightweight forum ("forms")
package handlers

import (
	"strconv"
	"strings"

	"southside/database"
	"southside/middleware"
	"southside/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListForms returns threads, newest first
// GET /api/forms
func ListForms(c *fiber.Ctx) error {
	db := database.GetDB()

	var forms []models.Form
	if err := db.Preload("Author").Order("created_at DESC").Find(&forms).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch forms"})
	}

	return c.JSON(fiber.Map{"success": true, "forms": forms})
}

// GetForm returns one thread with its replies
// GET /api/forms/:id
func GetForm(c *fiber.Ctx) error {
	db := database.GetDB()

	var form models.Form
	if err := db.Preload("Author").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		Preload("Replies.Author").
		First(&form, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Form not found"})
	}

	return c.JSON(fiber.Map{"success": true, "form": form})
}

// CreateForm opens a new thread
// POST /api/forms
func CreateForm(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if middleware.IsGuest(c) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Guests cannot post"})
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title and content are required"})
	}

	db := database.GetDB()
	form := models.Form{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := db.Create(&form).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create form"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "form": form})
}

// CreateFormReply appends a reply to a thread
// POST /api/forms/:id/replies
func CreateFormReply(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if middleware.IsGuest(c) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Guests cannot post"})
	}

	formID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid form ID"})
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Content is required"})
	}

	db := database.GetDB()

	var form models.Form
	if err := db.First(&form, formID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Form not found"})
	}

	reply := models.FormReply{
		FormID:   uint(formID),
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := db.Create(&reply).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create reply"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "reply": reply})
}

// DeleteForm removes a thread. Owner or admin only; checked here, on the
// server, not in whatever UI sent the request.
// DELETE /api/forms/:id
func DeleteForm(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var form models.Form
	if err := db.First(&form, c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Form not found"})
	}

	if form.AuthorID != userID && !callerIsAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not allowed"})
	}

	if err := db.Where("form_id = ?", form.ID).Delete(&models.FormReply{}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete replies"})
	}
	if err := db.Delete(&form).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete form"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteFormReply removes one reply. Owner or admin only.
// DELETE /api/forms/:id/replies/:replyId
func DeleteFormReply(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()

	var reply models.FormReply
	if err := db.Where("id = ? AND form_id = ?", c.Params("replyId"), c.Params("id")).
		First(&reply).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Reply not found"})
	}

	if reply.AuthorID != userID && !callerIsAdmin(c) {
		return c.Status(403).JSON(fiber.Map{"success": false, "error": "Not allowed"})
	}

	if err := db.Delete(&reply).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete reply"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// callerIsAdmin re-uses the allow-list predicate for owner-or-admin checks
// on routes that are not behind the admin middleware.
func callerIsAdmin(c *fiber.Ctx) bool {
	isAdmin, err := database.IsAdminEmail(middleware.GetEmail(c))
	return err == nil && isAdmin
}
