package verification

import (
	"time"
)

// Request states
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// VerificationRequest is one identity verification attempt: the user
// submits a photo, an admin approves or rejects it. The profile's
// verification status tracks the latest request.
type VerificationRequest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	PhotoURL string `gorm:"size:512;not null" json:"photo_url"`

	Status string  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Reason *string `json:"reason,omitempty"` // set on rejection

	ReviewedBy *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for VerificationRequest
func (VerificationRequest) TableName() string {
	return "verification_requests"
}

// ReviewRequest is the admin's decision payload
type ReviewRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"` // required when rejecting
}
