// services/application_service.go - Membership application lifecycle
package services

import (
	"errors"
	"strings"
	"time"

	"southside/models"
	"southside/utils"

	"gorm.io/gorm"
)

var (
	ErrPendingExists   = errors.New("a pending application already exists for this user")
	ErrNotFound        = errors.New("application not found")
	ErrInvalidStatus   = errors.New("invalid application status")
	ErrNotPending      = errors.New("only pending applications can be decided")
	ErrNotesRequired   = errors.New("admin notes are required to reject an application")
	ErrNothingToUpdate = errors.New("nothing to update")
)

// ValidationError wraps per-field intake problems.
type ValidationError struct {
	Fields utils.FieldErrors
}

func (e *ValidationError) Error() string {
	return "application validation failed"
}

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// Submit validates the questionnaire and inserts one pending application.
// The pre-check gives a friendly error; the partial unique index on
// (user_id) WHERE status='pending' holds the invariant when two submissions
// race, and the unique violation is mapped to the same ErrPendingExists.
func (s *ApplicationService) Submit(userID uint, in utils.ApplicationInput) (*models.Application, error) {
	if errs := utils.ValidateApplication(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	var existing models.Application
	err := s.db.Where("user_id = ? AND status = ?", userID, models.ApplicationPending).
		First(&existing).Error
	if err == nil {
		return nil, ErrPendingExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	app := &models.Application{
		UserID:              userID,
		FullName:            strings.TrimSpace(in.FullName),
		Age:                 in.Age,
		DiscordNick:         strings.TrimSpace(in.DiscordNick),
		DiscordID:           strings.TrimSpace(in.DiscordID),
		SteamProfile:        strings.TrimSpace(in.SteamProfile),
		FivemHours:          in.FivemHours,
		WhyMedian:           strings.TrimSpace(in.WhyMedian),
		SouthsideMeaning:    strings.TrimSpace(in.SouthsideMeaning),
		AcceptWarningSystem: in.AcceptWarningSystem,
		AcceptCKPossibility: in.AcceptCKPossibility,
		AcceptHierarchy:     in.AcceptHierarchy,
		Status:              models.ApplicationPending,
	}

	if err := s.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, ErrPendingExists
		}
		return nil, err
	}

	return app, nil
}

// Latest returns the caller's most recent application, or nil without error
// when none exists.
func (s *ApplicationService) Latest(userID uint) (*models.Application, error) {
	var app models.Application
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Decide applies an admin decision: a status transition, an admin_notes
// update, or both. Unknown status values are rejected, not dropped. A reject
// must carry non-empty notes regardless of which admin surface sent it.
// Concurrent decisions remain last-write-wins.
func (s *ApplicationService) Decide(appID uint, status, notes *string, adminEmail string) (*models.Application, error) {
	if status == nil && notes == nil {
		return nil, ErrNothingToUpdate
	}

	var app models.Application
	if err := s.db.First(&app, appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if notes != nil {
		updates["admin_notes"] = strings.TrimSpace(*notes)
	}

	if status != nil {
		next := models.ApplicationStatus(*status)
		if !next.Valid() {
			return nil, ErrInvalidStatus
		}
		if next != app.Status {
			if app.Status != models.ApplicationPending {
				return nil, ErrNotPending
			}
			if next == models.ApplicationRejected {
				noteText := app.AdminNotes
				if notes != nil {
					noteText = strings.TrimSpace(*notes)
				}
				if noteText == "" {
					return nil, ErrNotesRequired
				}
			}
			now := time.Now()
			updates["status"] = next
			updates["reviewed_by"] = strings.ToLower(adminEmail)
			updates["reviewed_at"] = &now
		}
	}

	if err := s.db.Model(&app).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&app, appID).Error; err != nil {
		return nil, err
	}

	return &app, nil
}

// isUniqueViolation matches the Postgres 23505 error text. The postgres
// driver does not always translate it into gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
