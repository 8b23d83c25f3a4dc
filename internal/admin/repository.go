package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/vadkul/vadkul-backend/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByID(ctx context.Context, userID uint) (auth.User, error) {
	var user auth.User
	err := r.db.WithContext(ctx).Preload("Role").First(&user, userID).Error
	return user, err
}

// GetUsers lists users for the dashboard with search, status filter and
// pagination
func (r *Repository) GetUsers(ctx context.Context, limit, page int, search, statusFilter string) ([]UserResponse, int64, error) {
	var users []UserResponse
	var total int64

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	base := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN user_roles ON users.role_id = user_roles.id")

	if search != "" {
		s := "%" + search + "%"
		base = base.Where("users.full_name ILIKE ? OR users.email ILIKE ?", s, s)
	}
	if statusFilter != "" {
		base = base.Where("LOWER(users.status) = LOWER(?)", statusFilter)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Select(`
			users.id,
			users.full_name,
			users.email,
			users.status,
			users.created_at,
			users.updated_at,
			user_roles.id as role_id,
			user_roles.role_name
		`).
		Order("users.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error

	return users, total, err
}

func (r *Repository) UpdateUserStatus(ctx context.Context, userID uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("id = ?", userID).
		Update("status", status).Error
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&auth.User{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountUsersByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&auth.User{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
