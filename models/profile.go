// models/profile.go
package models

import "time"

// Profile is a user's public display card. One row per user, created lazily
// on first edit.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Nickname  string    `json:"nickname" gorm:"size:100"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Avatar    string    `json:"avatar" gorm:"size:500"`
	Discord   string    `json:"discord" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
