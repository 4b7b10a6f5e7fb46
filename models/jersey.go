// models/jersey.go
package models

import "time"

// Jersey is a showcase entry; the jerseys table also backs the "showcase"
// page, as on the previous site.
type Jersey struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	ImageURL    string    `json:"image_url" gorm:"not null;size:500"`
	Season      string    `json:"season" gorm:"size:50"`
	Description string    `json:"description" gorm:"type:text"`
	SortOrder   int       `json:"sort_order" gorm:"default:0;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Jersey) TableName() string {
	return "jerseys"
}
