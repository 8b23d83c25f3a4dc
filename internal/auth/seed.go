package auth

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUserRoles makes sure the two fixed roles exist
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: RoleUser, Description: "Regular member"},
		{RoleName: RoleAdmin, Description: "Platform administrator"},
	}

	for _, role := range roles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			log.Printf("✅ Seeded role: %s", role.RoleName)
		} else if err != nil {
			return err
		}
	}

	return nil
}

// SeedAdminUser creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped silently when the env vars are unset or the
// account already exists.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	}

	var adminRole UserRole
	if err := db.Where("role_name = ?", RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		FullName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
		Status:       "active",
		InviteCode:   generateInviteCode(),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", email)
	return nil
}
