// handlers/admin/check.go
package admin

import (
	"southside/database"
	"southside/middleware"

	"github.com/gofiber/fiber/v2"
)

// Check reports whether the caller's session email is on the allow-list.
// Sits behind AuthMiddleware, not the admin gate: non-admins get
// {isAdmin:false}, not a 403. Lookup errors fail closed.
// GET /api/admin/check
func Check(c *fiber.Ctx) error {
	isAdmin, err := database.IsAdminEmail(middleware.GetEmail(c))
	if err != nil {
		isAdmin = false
	}

	return c.JSON(fiber.Map{"isAdmin": isAdmin})
}
