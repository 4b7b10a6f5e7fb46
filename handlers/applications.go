// handlers/applications.go - Membership application intake and status
package handlers

import (
	"errors"
	"log"

	"southside/database"
	"southside/middleware"
	"southside/services"
	"southside/utils"

	"github.com/gofiber/fiber/v2"
)

var applicationService *services.ApplicationService

// InitApplicationHandlers initializes the application service
func InitApplicationHandlers() {
	db := database.GetDB()
	if db == nil {
		panic("Database not initialized before InitApplicationHandlers")
	}
	applicationService = services.NewApplicationService(db)
}

type SubmitApplicationRequest struct {
	FullName            string `json:"full_name"`
	Age                 int    `json:"age"`
	DiscordNick         string `json:"discord_nick"`
	DiscordID           string `json:"discord_id"`
	SteamProfile        string `json:"steam_profile"`
	FivemHours          int    `json:"fivem_hours"`
	WhyMedian           string `json:"why_median"`
	SouthsideMeaning    string `json:"southside_meaning"`
	AcceptWarningSystem bool   `json:"accept_warning_system"`
	AcceptCKPossibility bool   `json:"accept_ck_possibility"`
	AcceptHierarchy     bool   `json:"accept_hierarchy"`
}

// SubmitApplication accepts the membership questionnaire
// POST /api/application/submit
func SubmitApplication(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	if middleware.IsGuest(c) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "Guests cannot apply. Please register an account first.",
		})
	}

	var req SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	app, err := applicationService.Submit(userID, utils.ApplicationInput{
		FullName:            req.FullName,
		Age:                 req.Age,
		DiscordNick:         req.DiscordNick,
		DiscordID:           req.DiscordID,
		SteamProfile:        req.SteamProfile,
		FivemHours:          req.FivemHours,
		WhyMedian:           req.WhyMedian,
		SouthsideMeaning:    req.SouthsideMeaning,
		AcceptWarningSystem: req.AcceptWarningSystem,
		AcceptCKPossibility: req.AcceptCKPossibility,
		AcceptHierarchy:     req.AcceptHierarchy,
	})

	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Application validation failed",
				"fields":  verr.Fields,
			})
		}
		if errors.Is(err, services.ErrPendingExists) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "You already have a pending application",
			})
		}
		log.Printf("Application submit failed for user %d: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to submit application"})
	}

	services.Publish("applications", "insert", app)

	return c.Status(201).JSON(fiber.Map{
		"success":     true,
		"application": app,
	})
}

// GetApplicationStatus returns the caller's latest application, or null
// GET /api/application/status
func GetApplicationStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	app, err := applicationService.Latest(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch application"})
	}

	if app == nil {
		return c.JSON(fiber.Map{"success": true, "application": nil})
	}

	return c.JSON(fiber.Map{"success": true, "application": app})
}
