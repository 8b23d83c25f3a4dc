package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error)
	MarkAsRead(ctx context.Context, id uint, userID uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)

	// FCM device tokens
	SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error
	GetUserDeviceTokens(ctx context.Context, userID uint) ([]string, error)
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var items []Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) MarkAsRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func (r *repository) MarkAllAsRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Update("is_read", true).Error
}

func (r *repository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = FALSE", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Notification{}).Count(&count).Error
	return count, err
}

// ------------------------------
// FCM device tokens
// ------------------------------

// SaveDeviceToken upserts on the (user, token) pair so re-registering a
// device refreshes it instead of duplicating it
func (r *repository) SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error {
	token.LastUsedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"device_type", "device_name", "is_active", "last_used_at", "updated_at"}),
		}).
		Create(token).Error
}

func (r *repository) GetUserDeviceTokens(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND is_active = TRUE", userID).
		Pluck("device_token", &tokens).Error
	return tokens, err
}

func (r *repository) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Delete(&FCMDeviceToken{}).Error
}
