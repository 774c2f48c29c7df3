package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"gatekeeper_backend/internals/constants"
	"gatekeeper_backend/internals/features/admin/model"
)

// SeedDefaultAdmin creates the bootstrap super admin (admin/admin123) when the
// table has no such account yet. Runs with the migrate subcommand at deploy;
// the password is expected to be rotated on first login.
func SeedDefaultAdmin(db *gorm.DB) error {
	var existing model.AdminUserModel
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &model.AdminUserModel{
		Username:  "admin",
		Email:     "admin@security.local",
		FirstName: "System",
		LastName:  "Administrator",
		Role:      constants.RoleSuperAdmin,
		IsActive:  true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Println("✅ Default super admin created: admin/admin123")
	return nil
}
