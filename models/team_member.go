// models/team_member.go
package models

import "time"

// TeamMember is a roster entry on the public team page. UserID links the
// entry to a site account when the member has one; roster entries can also
// exist for people who never registered.
type TeamMember struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Role      string    `json:"role" gorm:"size:100"`
	PhotoURL  string    `json:"photo_url" gorm:"size:500"`
	SortOrder int       `json:"sort_order" gorm:"default:0;index"`
	IsActive  bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
