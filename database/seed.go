// database/seed.go - Admin allow-list seeding
package database

import (
	"log"
	"os"
	"strings"

	"southside/models"
)

// SeedAdminUsers inserts allow-list rows for every email in ADMIN_EMAILS
// (comma-separated). Existing rows are left alone; the API itself never
// writes admin_users.
func SeedAdminUsers() {
	raw := os.Getenv("ADMIN_EMAILS")
	if raw == "" {
		return
	}

	db := GetDB()
	seeded := 0
	for _, email := range strings.Split(raw, ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		admin := models.AdminUser{Email: email, AddedBy: "seed"}
		result := db.Where("email = ?", email).FirstOrCreate(&admin)
		if result.Error != nil {
			log.Printf("Failed to seed admin %s: %v", email, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			seeded++
		}
	}

	if seeded > 0 {
		log.Printf("✅ Seeded %d admin user(s)", seeded)
	}
}
