package admin

import (
	"context"
	"errors"
	"math"

	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/internal/chat"
	"github.com/vadkul/vadkul-backend/internal/event"
	"github.com/vadkul/vadkul-backend/internal/notification"
	"github.com/vadkul/vadkul-backend/internal/verification"
)

// Service wraps the admin dashboard: platform stats, user management and
// the only delete path events have.
type Service struct {
	Repo      *Repository
	EventRepo *event.Repository
	NotifRepo notification.Repository
	ChatRepo  chat.Repository
	VerifRepo verification.Repository
	AuditSvc  auditlog.Service
}

func NewService(repo *Repository, eventRepo *event.Repository, notifRepo notification.Repository, chatRepo chat.Repository, verifRepo verification.Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:      repo,
		EventRepo: eventRepo,
		NotifRepo: notifRepo,
		ChatRepo:  chatRepo,
		VerifRepo: verifRepo,
		AuditSvc:  auditSvc,
	}
}

// ===========================
// 📊 Platform Stats
func (s *Service) GetStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}
	var err error

	if stats.TotalUsers, err = s.Repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.Repo.CountUsersByStatus(ctx, "active"); err != nil {
		return nil, err
	}
	if stats.TotalEvents, err = s.EventRepo.CountEvents(); err != nil {
		return nil, err
	}
	if stats.TotalJoins, err = s.EventRepo.CountJoins(); err != nil {
		return nil, err
	}
	if stats.TotalNotifications, err = s.NotifRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalChatMessages, err = s.ChatRepo.CountMessages(ctx); err != nil {
		return nil, err
	}
	if _, stats.PendingVerifications, err = s.VerifRepo.ListPending(ctx, 1, 0); err != nil {
		return nil, err
	}

	return stats, nil
}

// ===========================
// 📄 User List
func (s *Service) ListUsers(ctx context.Context, limit, page int, search, status string) (*PaginatedUsers, error) {
	users, total, err := s.Repo.GetUsers(ctx, limit, page, search, status)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return &PaginatedUsers{
		Data:       users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// ===========================
// 🔒 Activate / Deactivate User
func (s *Service) SetUserStatus(ctx context.Context, adminID, userID uint, active bool, ip string) error {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.New("user not found")
	}

	status := "inactive"
	action := "USER_DEACTIVATED"
	if active {
		status = "active"
		action = "USER_ACTIVATED"
	}

	if user.Status == status {
		return errors.New("user already " + status)
	}

	if err := s.Repo.UpdateUserStatus(ctx, userID, status); err != nil {
		s.AuditSvc.LogAction(ctx, &adminID, &userID, action,
			map[string]interface{}{
				"target_user_email": user.Email,
				"error":             err.Error(),
			}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &adminID, &userID, action,
		map[string]interface{}{
			"target_user_email": user.Email,
			"target_user_name":  user.FullName,
		}, ip, "success")

	return nil
}

// ===========================
// ❌ Bulk Delete Events: the only way events leave the system
func (s *Service) BulkDeleteEvents(ctx context.Context, adminID uint, eventIDs []uint, ip string) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, errors.New("no event ids provided")
	}

	deleted, err := s.EventRepo.DeleteEvents(eventIDs)
	status := "success"
	details := map[string]interface{}{
		"event_ids":     eventIDs,
		"deleted_count": deleted,
	}
	if err != nil {
		status = "failure"
		details["error"] = err.Error()
	}
	s.AuditSvc.LogAction(ctx, &adminID, nil, "EVENTS_BULK_DELETED", details, ip, status)

	return deleted, err
}
