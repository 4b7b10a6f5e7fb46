// models/media.go
package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage   MediaType = "image"
	MediaTypeYouTube MediaType = "youtube"
)

// Valid reports whether t is a supported media type.
func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeYouTube
}

// The previous site had no media_type column and smuggled the type into the
// description as a "[TYPE:youtube]" prefix. MediaType is now a real column;
// the prefix convention survives only as an input format that gets parsed
// and stripped, so it never reaches a client.
var legacyTypeRe = regexp.MustCompile(`^\[TYPE:(image|youtube)\]\s*`)

// ParseLegacyDescription splits a legacy description into its media type and
// the clean description text. Descriptions without a prefix are images.
func ParseLegacyDescription(desc string) (MediaType, string) {
	m := legacyTypeRe.FindStringSubmatch(desc)
	if m == nil {
		return MediaTypeImage, desc
	}
	return MediaType(m[1]), strings.TrimPrefix(desc, m[0])
}

// MediaItem is one gallery asset: an image URL or a YouTube link.
type MediaItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	URL           string    `json:"url" gorm:"not null;size:500"`
	Title         string    `json:"title" gorm:"size:200"`
	Description   string    `json:"description" gorm:"type:text"`
	MediaType     MediaType `json:"media_type" gorm:"not null;default:'image';size:20;index"`
	UploaderID    *uint     `json:"uploader_id,omitempty" gorm:"index"`
	Uploader      *User     `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
	UploaderEmail string    `json:"uploader_email" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (MediaItem) TableName() string {
	return "images"
}

// Normalize folds a legacy description prefix into the MediaType column and
// defaults the type to image when unset.
func (m *MediaItem) Normalize() {
	if t, clean := ParseLegacyDescription(m.Description); clean != m.Description {
		m.Description = clean
		m.MediaType = t
	}
	if !m.MediaType.Valid() {
		m.MediaType = MediaTypeImage
	}
}

// BeforeSave keeps prefixed descriptions out of the table.
func (m *MediaItem) BeforeSave(tx *gorm.DB) error {
	m.Normalize()
	return nil
}

// AfterFind covers rows imported before the media_type column existed.
func (m *MediaItem) AfterFind(tx *gorm.DB) error {
	m.Normalize()
	return nil
}
