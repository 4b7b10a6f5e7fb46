// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"southside/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Application{},
		&models.MediaItem{},
		&models.Profile{},
		&models.TeamMember{},
		&models.Jersey{},
		&models.Form{},
		&models.FormReply{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()
	SeedAdminUsers()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes AutoMigrate cannot express
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// One pending application per user. The intake pre-check gives a
	// friendly error; this index is what actually holds the invariant
	// when two submissions race.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_one_pending ON applications(user_id) WHERE status = 'pending'")

	// Application review listing
	db.Exec("CREATE INDEX IF NOT EXISTS idx_applications_status_created ON applications(status, created_at DESC)")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_last_activity ON users(last_activity)")

	// Media gallery
	db.Exec("CREATE INDEX IF NOT EXISTS idx_images_created ON images(created_at DESC)")

	// Forum
	db.Exec("CREATE INDEX IF NOT EXISTS idx_forms_created ON forms(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_form_replies_form ON form_replies(form_id, created_at)")

	log.Println("✅ Indexes created successfully")
}
