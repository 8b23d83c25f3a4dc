package verification

import (
	"context"
	"errors"
	"time"

	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/internal/notification"
	"github.com/vadkul/vadkul-backend/internal/profile"
)

// Service wraps the identity verification flow: user submits a photo,
// admin approves or rejects, the profile status follows.
type Service struct {
	Repo       Repository
	ProfileSvc *profile.Service
	NotifSvc   notification.Service
	AuditSvc   auditlog.Service
}

func NewService(repo Repository, profileSvc *profile.Service, notifSvc notification.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:       repo,
		ProfileSvc: profileSvc,
		NotifSvc:   notifSvc,
		AuditSvc:   auditSvc,
	}
}

// ===========================
// 📷 Submit stores the photo and moves the profile to pending.
// Resubmitting while a request is open replaces the pending state with a
// fresh request; nothing blocks a retry after rejection.
func (s *Service) Submit(ctx context.Context, userID uint, photoURL string, ip string) (*VerificationRequest, error) {
	if photoURL == "" {
		return nil, errors.New("verification photo is required")
	}

	p, err := s.ProfileSvc.GetProfile(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}
	if p.VerificationStatus == profile.VerificationVerified {
		return nil, errors.New("profile is already verified")
	}

	req := &VerificationRequest{
		UserID:   userID,
		PhotoURL: photoURL,
		Status:   StatusPending,
	}
	if err := s.Repo.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := s.ProfileSvc.SetVerification(userID, profile.VerificationPending, nil); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &req.ID, "VERIFICATION_SUBMITTED",
		map[string]interface{}{"request_id": req.ID}, ip, "success")

	return req, nil
}

// ===========================
// 🔎 Status returns the caller's latest request
func (s *Service) Status(ctx context.Context, userID uint) (*VerificationRequest, error) {
	return s.Repo.LatestByUser(ctx, userID)
}

// ===========================
// 📋 Pending Queue: admin review list
func (s *Service) PendingQueue(ctx context.Context, limit, offset int) ([]VerificationRequest, int64, error) {
	return s.Repo.ListPending(ctx, limit, offset)
}

// ===========================
// ⚖️ Review applies the admin decision. Approval verifies the profile; rejection
// records the reason on both the request and the profile. The user gets
// a system notification either way.
func (s *Service) Review(ctx context.Context, adminID, requestID uint, approve bool, reason string, ip string) (*VerificationRequest, error) {
	req, err := s.Repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, errors.New("verification request not found")
	}
	if req.Status != StatusPending {
		return nil, errors.New("verification request already reviewed")
	}
	if !approve && reason == "" {
		return nil, errors.New("rejection reason is required")
	}

	now := time.Now()
	req.ReviewedBy = &adminID
	req.ReviewedAt = &now

	var message string
	if approve {
		req.Status = StatusApproved
		req.Reason = nil
		if err := s.ProfileSvc.SetVerification(req.UserID, profile.VerificationVerified, nil); err != nil {
			return nil, err
		}
		message = "Your profile is now verified"
	} else {
		req.Status = StatusRejected
		req.Reason = &reason
		if err := s.ProfileSvc.SetVerification(req.UserID, profile.VerificationRejected, &reason); err != nil {
			return nil, err
		}
		message = "Your verification was rejected: " + reason
	}

	if err := s.Repo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &adminID, &requestID, "VERIFICATION_REVIEWED",
		map[string]interface{}{
			"request_id": requestID,
			"user_id":    req.UserID,
			"approved":   approve,
		}, ip, "success")

	if s.NotifSvc != nil {
		_ = s.NotifSvc.Notify(ctx, req.UserID, nil, notification.TypeSystem, message, "/profile")
	}

	return req, nil
}
