package profile

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(p *UserProfile) error
	GetByUserID(userID uint) (*UserProfile, error)
	Update(p *UserProfile) error
	IncrementInviteCount(userID uint) error
	SetVerification(userID uint, status string, reason *string) error

	// RateUser applies one review inside a single transaction and returns
	// the updated profile. The target row is locked for the duration so
	// concurrent reviews serialize instead of losing updates.
	RateUser(ctx context.Context, targetUserID, reviewerUserID uint, score float64, comment string) (*UserProfile, error)

	ListReviews(targetUserID uint, limit, offset int) ([]Review, error)
	TopRated(limit int) ([]UserProfile, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(p *UserProfile) error {
	return r.db.Create(p).Error
}

func (r *repository) GetByUserID(userID uint) (*UserProfile, error) {
	var p UserProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(p *UserProfile) error {
	return r.db.Save(p).Error
}

func (r *repository) IncrementInviteCount(userID uint) error {
	return r.db.Model(&UserProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("invite_count", gorm.Expr("invite_count + 1")).Error
}

func (r *repository) SetVerification(userID uint, status string, reason *string) error {
	return r.db.Model(&UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"verification_status": status,
			"rejection_reason":    reason,
		}).Error
}

// ===========================
// ⭐ Rate User: atomic read-modify-write of the running mean
func (r *repository) RateUser(ctx context.Context, targetUserID, reviewerUserID uint, score float64, comment string) (*UserProfile, error) {
	var updated UserProfile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target UserProfile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", targetUserID).
			First(&target).Error; err != nil {
			return err
		}

		var priorScore *float64
		var prior Review
		err := tx.Where("target_user_id = ? AND reviewer_user_id = ?", targetUserID, reviewerUserID).
			First(&prior).Error
		switch {
		case err == nil:
			priorScore = &prior.Score
		case err == gorm.ErrRecordNotFound:
			// first review by this reviewer
		default:
			return err
		}

		rating, count := ApplyReviewScore(target.Rating, target.RatingCount, priorScore, score)
		target.Rating = rating
		target.RatingCount = count

		if priorScore != nil {
			prior.Score = score
			prior.Comment = comment
			if err := tx.Save(&prior).Error; err != nil {
				return err
			}
		} else {
			review := Review{
				TargetUserID:   targetUserID,
				ReviewerUserID: reviewerUserID,
				Score:          score,
				Comment:        comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(&target).Error; err != nil {
			return err
		}

		updated = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) ListReviews(targetUserID uint, limit, offset int) ([]Review, error) {
	var reviews []Review
	err := r.db.Where("target_user_id = ?", targetUserID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// TopRated lists verified profiles only; unverified users never rank.
func (r *repository) TopRated(limit int) ([]UserProfile, error) {
	var profiles []UserProfile
	err := r.db.
		Where("verification_status = ? AND rating_count > 0", VerificationVerified).
		Order("rating DESC, rating_count DESC").
		Limit(limit).
		Find(&profiles).Error
	return profiles, err
}
