package auth

import (
	"time"
)

// ============================
// 🔷 User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:120;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	Role         UserRole  `gorm:"foreignKey:RoleID" json:"role"`
	Status       string    `gorm:"size:20;default:'active'" json:"status"` // active, inactive
	InviteCode   string    `gorm:"size:12;uniqueIndex" json:"invite_code"` // code this user shares
	InvitedBy    *uint     `gorm:"index" json:"invited_by,omitempty"`      // who referred this user
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ============================
// 🔷 User Role Model
type UserRole struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	RoleName    string `gorm:"size:30;not null;uniqueIndex" json:"role_name"` // user, admin
	Description string `gorm:"size:255" json:"description"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ============================
// 🟡 Request payloads
type RegisterRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	InviteCode string `json:"invite_code,omitempty"` // inviter's code, optional
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
