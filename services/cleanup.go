// services/cleanup.go - Scheduled removal of stale guest accounts
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"southside/database"
	"southside/models"

	"github.com/robfig/cron/v3"
)

// CleanupService removes guest accounts that were never upgraded and have
// been inactive past the configured TTL. Guests with an application on file
// are kept regardless.
type CleanupService struct {
	cron     *cron.Cron
	guestTTL time.Duration
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService() {
	ttlDays := 30
	if val := os.Getenv("GUEST_TTL_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			ttlDays = n
		}
	}

	cleanupService = &CleanupService{
		guestTTL: time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start schedules the daily sweep.
func (s *CleanupService) Start() {
	if os.Getenv("GUEST_CLEANUP_ENABLED") == "false" {
		log.Println("Guest cleanup disabled")
		return
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc("@daily", func() {
		if err := s.CleanupStaleGuests(); err != nil {
			log.Printf("Guest cleanup failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to schedule guest cleanup: %v", err)
		return
	}
	s.cron.Start()
	log.Println("✅ Guest cleanup scheduled (daily)")
}

// Stop stops the schedule.
func (s *CleanupService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// CleanupStaleGuests deletes inactive guest accounts past the TTL.
func (s *CleanupService) CleanupStaleGuests() error {
	db := database.GetDB()
	if db == nil {
		return nil
	}

	cutoff := time.Now().Add(-s.guestTTL)

	result := db.Where(
		"is_guest = ? AND last_activity < ? AND id NOT IN (SELECT DISTINCT user_id FROM applications)",
		true, cutoff,
	).Delete(&models.User{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("✅ Cleaned up %d stale guest account(s)", result.RowsAffected)
	}
	return nil
}
