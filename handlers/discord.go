// handlers/discord.go - Discord guild statistics endpoint
package handlers

import (
	"southside/services"

	"github.com/gofiber/fiber/v2"
)

// GetDiscordStats returns the cached merged guild snapshot
// GET /api/discord-stats?server=median
func GetDiscordStats(c *fiber.Ctx) error {
	service := services.GetDiscordStatsService()
	if service == nil {
		return c.Status(503).JSON(fiber.Map{"success": false, "error": "Discord stats not configured"})
	}

	server := c.Query("server", "median")
	stats, err := service.Get(server)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}
