// database/admin.go - Admin allow-list lookup
package database

import (
	"strings"

	"southside/models"

	"gorm.io/gorm"
)

// IsAdminEmail reports whether email is on the admin allow-list. This is the
// single authorization predicate for every admin-scoped operation; callers
// must treat any error as "not admin".
func IsAdminEmail(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}

	var admin models.AdminUser
	err := GetDB().Where("email = ?", email).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
