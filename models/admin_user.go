// models/admin_user.go
package models

import "time"

// AdminUser is an allow-list entry. Membership of an email in this table is
// the only thing that grants admin access. The API never writes this table;
// rows come from the ADMIN_EMAILS seed or the adminctl tool.
type AdminUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	AddedBy   string    `json:"added_by" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
