// models/form.go
package models

import "time"

// Form is a forum thread ("forms" in site terminology).
type Form struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	AuthorID  uint        `json:"author_id" gorm:"not null;index"`
	Author    *User       `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title     string      `json:"title" gorm:"not null;size:200"`
	Content   string      `json:"content" gorm:"not null;type:text"`
	Replies   []FormReply `json:"replies,omitempty" gorm:"foreignKey:FormID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Form) TableName() string {
	return "forms"
}

type FormReply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FormID    uint      `json:"form_id" gorm:"not null;index"`
	Form      *Form     `json:"form,omitempty" gorm:"foreignKey:FormID"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (FormReply) TableName() string {
	return "form_replies"
}
