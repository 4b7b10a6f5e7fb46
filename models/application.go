// models/application.go
package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application is one user's membership request. Content fields are immutable
// after submission; only status, admin notes and the review metadata change,
// and only through an admin decision. At most one pending application may
// exist per user (partial unique index, see database migrations).
type Application struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	UserID uint  `json:"user_id" gorm:"not null;index"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	// Questionnaire content
	FullName         string `json:"full_name" gorm:"not null;size:100"`
	Age              int    `json:"age" gorm:"not null"`
	DiscordNick      string `json:"discord_nick" gorm:"not null;size:100"`
	DiscordID        string `json:"discord_id" gorm:"not null;size:32"`
	SteamProfile     string `json:"steam_profile" gorm:"not null;size:255"`
	FivemHours       int    `json:"fivem_hours" gorm:"not null"`
	WhyMedian        string `json:"why_median" gorm:"not null;type:text"`
	SouthsideMeaning string `json:"southside_meaning" gorm:"not null;type:text"`

	// Rule acknowledgments, all required at intake
	AcceptWarningSystem bool `json:"accept_warning_system" gorm:"not null"`
	AcceptCKPossibility bool `json:"accept_ck_possibility" gorm:"not null"`
	AcceptHierarchy     bool `json:"accept_hierarchy" gorm:"not null"`

	// Review state
	Status     ApplicationStatus `json:"status" gorm:"not null;default:'pending';size:20;index"`
	AdminNotes string            `json:"admin_notes" gorm:"type:text"`
	ReviewedBy string            `json:"reviewed_by" gorm:"size:255"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
