package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/utils"
)

const (
	leaderboardKey = "leaderboard:top_rated"
	leaderboardTTL = time.Hour
)

type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// EnsureProfile creates the profile row for a freshly registered user.
// Idempotent: an existing profile is left untouched.
func (s *Service) EnsureProfile(userID uint, displayName string) error {
	if _, err := s.Repo.GetByUserID(userID); err == nil {
		return nil
	}

	return s.Repo.Create(&UserProfile{
		UserID:             userID,
		DisplayName:        displayName,
		VerificationStatus: VerificationNone,
	})
}

// IncrementInviteCount credits the inviter when a referred user registers
func (s *Service) IncrementInviteCount(userID uint) error {
	return s.Repo.IncrementInviteCount(userID)
}

func (s *Service) GetProfile(userID uint) (*UserProfile, error) {
	return s.Repo.GetByUserID(userID)
}

// SetVerification moves the profile through the verification states.
// The leaderboard only lists verified users, so its cache is dropped.
func (s *Service) SetVerification(userID uint, status string, reason *string) error {
	if err := s.Repo.SetVerification(userID, status, reason); err != nil {
		return err
	}
	s.invalidateLeaderboard()
	return nil
}

// ===========================
// 🛠 Update own profile
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*UserProfile, error) {
	p, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, errors.New("profile not found")
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		p.PhotoURL = *req.PhotoURL
	}

	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ===========================
// ⭐ Rate User
func (s *Service) RateUser(ctx context.Context, targetUserID, reviewerUserID uint, score float64, comment string, ip string) (*UserProfile, error) {
	if targetUserID == reviewerUserID {
		return nil, errors.New("you cannot rate yourself")
	}
	if score < 1 || score > 5 {
		return nil, errors.New("score must be between 1 and 5")
	}

	updated, err := s.Repo.RateUser(ctx, targetUserID, reviewerUserID, score, comment)

	status := "success"
	details := map[string]interface{}{
		"target_user_id": targetUserID,
		"score":          score,
	}
	if err != nil {
		status = "failure"
		details["error"] = err.Error()
	}
	s.AuditSvc.LogAction(ctx, &reviewerUserID, nil, "USER_RATED", details, ip, status)

	if err != nil {
		return nil, err
	}

	// A rating changed, the cached leaderboard is stale
	s.invalidateLeaderboard()

	return updated, nil
}

func (s *Service) invalidateLeaderboard() {
	if utils.RedisClient != nil {
		_ = utils.RedisClient.Del(utils.Ctx, leaderboardKey).Err()
	}
}

func (s *Service) ListReviews(targetUserID uint, limit, offset int) ([]Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListReviews(targetUserID, limit, offset)
}

// ===========================
// 🏆 Leaderboard with 1-hour Redis cache
func (s *Service) Leaderboard(limit int) ([]UserProfile, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	if utils.RedisClient != nil {
		if cached, err := utils.RedisClient.Get(utils.Ctx, leaderboardKey).Result(); err == nil {
			var profiles []UserProfile
			if json.Unmarshal([]byte(cached), &profiles) == nil && len(profiles) >= limit {
				return profiles[:limit], nil
			}
		}
	}

	profiles, err := s.Repo.TopRated(50)
	if err != nil {
		return nil, err
	}

	if utils.RedisClient != nil {
		if payload, err := json.Marshal(profiles); err == nil {
			_ = utils.RedisClient.Set(utils.Ctx, leaderboardKey, payload, leaderboardTTL).Err()
		}
	}

	if len(profiles) > limit {
		profiles = profiles[:limit]
	}
	return profiles, nil
}
