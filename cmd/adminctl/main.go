// Manages the admin allow-list from the command line. The API never writes
// admin_users; operators add and remove entries here (or seed them with
// ADMIN_EMAILS at boot).
package main

import (
	"fmt"
	"os"
	"strings"

	"southside/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func usage() {
	fmt.Println("usage: adminctl <list|add|remove> [email]")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Println("error: DATABASE_URL must be set")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Println("error: cannot connect to database:", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		var admins []models.AdminUser
		if err := db.Order("email").Find(&admins).Error; err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		for _, a := range admins {
			fmt.Printf("%s\t(added by %s, %s)\n", a.Email, a.AddedBy, a.CreatedAt.Format("2006-01-02"))
		}

	case "add":
		if len(os.Args) < 3 {
			usage()
		}
		email := strings.ToLower(strings.TrimSpace(os.Args[2]))
		if !strings.Contains(email, "@") {
			fmt.Println("error: not an email address:", email)
			os.Exit(1)
		}
		admin := models.AdminUser{Email: email, AddedBy: "adminctl"}
		result := db.Where("email = ?", email).FirstOrCreate(&admin)
		if result.Error != nil {
			fmt.Println("error:", result.Error)
			os.Exit(1)
		}
		if result.RowsAffected == 0 {
			fmt.Println("already on the allow-list:", email)
		} else {
			fmt.Println("added:", email)
		}

	case "remove":
		if len(os.Args) < 3 {
			usage()
		}
		email := strings.ToLower(strings.TrimSpace(os.Args[2]))
		result := db.Where("email = ?", email).Delete(&models.AdminUser{})
		if result.Error != nil {
			fmt.Println("error:", result.Error)
			os.Exit(1)
		}
		if result.RowsAffected == 0 {
			fmt.Println("not on the allow-list:", email)
		} else {
			fmt.Println("removed:", email)
		}

	default:
		usage()
	}
}
