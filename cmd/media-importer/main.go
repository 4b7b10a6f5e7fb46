// Imports a JSON export of the legacy gallery table. The old site had no
// media_type column and tagged YouTube entries with a "[TYPE:youtube]"
// prefix inside the description; rows are normalized on the way in.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"southside/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type legacyImage struct {
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	UploaderEmail string    `json:"uploader_email"`
	CreatedAt     time.Time `json:"created_at"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: media-importer <export.json>")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.MediaItem{}); err != nil {
		log.Fatal("Failed to migrate images table:", err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var legacy []legacyImage
	if err := json.Unmarshal(data, &legacy); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d legacy gallery rows\n", len(legacy))

	imported := 0
	byType := map[models.MediaType]int{}
	for _, row := range legacy {
		if row.URL == "" {
			continue
		}

		mediaType, description := models.ParseLegacyDescription(row.Description)
		item := models.MediaItem{
			URL:           row.URL,
			Title:         row.Title,
			Description:   description,
			MediaType:     mediaType,
			UploaderEmail: row.UploaderEmail,
			CreatedAt:     row.CreatedAt,
		}

		if err := db.Create(&item).Error; err != nil {
			log.Printf("skip %s: %v", row.URL, err)
			continue
		}
		imported++
		byType[mediaType]++
	}

	fmt.Printf("Imported %d rows (%d image, %d youtube)\n",
		imported, byType[models.MediaTypeImage], byType[models.MediaTypeYouTube])
}
