package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindByInviteCode(code string) (*User, error)
	FindRoleByName(name string) (*UserRole, error)
	Update(user *User) error
	UpdatePassword(userID uint, passwordHash string) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

// Find the user owning an invite code
func (r *repository) FindByInviteCode(code string) (*User, error) {
	var u User
	err := r.db.Where("invite_code = ?", code).First(&u).Error
	return &u, err
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) UpdatePassword(userID uint, passwordHash string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}
