package verification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, req *VerificationRequest) error
	GetByID(ctx context.Context, id uint) (*VerificationRequest, error)
	LatestByUser(ctx context.Context, userID uint) (*VerificationRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]VerificationRequest, int64, error)
	Update(ctx context.Context, req *VerificationRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *VerificationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*VerificationRequest, error) {
	var req VerificationRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) LatestByUser(ctx context.Context, userID uint) (*VerificationRequest, error) {
	var req VerificationRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListPending returns the admin review queue, oldest first
func (r *repository) ListPending(ctx context.Context, limit, offset int) ([]VerificationRequest, int64, error) {
	var requests []VerificationRequest
	var total int64

	query := r.db.WithContext(ctx).
		Model(&VerificationRequest{}).
		Where("status = ?", StatusPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	err := query.
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error

	return requests, total, err
}

func (r *repository) Update(ctx context.Context, req *VerificationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
