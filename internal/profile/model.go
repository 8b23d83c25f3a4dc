package profile

import (
	"time"
)

// Verification states for a profile
const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// ============================
// 🔷 User Profile Model
type UserProfile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName string `gorm:"size:120;not null" json:"display_name"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`
	PhotoURL    string `gorm:"size:512" json:"photo_url,omitempty"`

	// Running mean over all stored reviews. Rating always equals the
	// arithmetic mean of the review scores and RatingCount the number of
	// distinct reviewers (one review per reviewer, resubmission replaces).
	Rating      float64 `gorm:"default:0" json:"rating"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	VerificationStatus string  `gorm:"size:20;default:'none'" json:"verification_status"`
	RejectionReason    *string `json:"rejection_reason,omitempty"`

	InviteCount int `gorm:"default:0" json:"invite_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================
// 🔷 Review Model: one row per (target, reviewer) pair
type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TargetUserID   uint      `gorm:"not null;index:idx_target_reviewer,unique" json:"target_user_id"`
	ReviewerUserID uint      `gorm:"not null;index:idx_target_reviewer,unique" json:"reviewer_user_id"`
	Score          float64   `gorm:"not null" json:"score"`
	Comment        string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ApplyReviewScore folds one review into the running mean. When the same
// reviewer resubmits, their prior score is subtracted from the total before
// the new one is blended in and the count stays unchanged.
func ApplyReviewScore(rating float64, count int, priorScore *float64, score float64) (float64, int) {
	total := rating * float64(count)

	if priorScore != nil {
		total = total - *priorScore + score
		if count == 0 {
			// cannot happen when the invariant holds; guard divide-by-zero
			return score, 1
		}
		return total / float64(count), count
	}

	count++
	total += score
	return total / float64(count), count
}

// ============================
// 🟡 Request payloads
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

type RateUserRequest struct {
	Score   float64 `json:"score" binding:"required"`
	Comment string  `json:"comment,omitempty"`
}
