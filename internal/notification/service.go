package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/vadkul/vadkul-backend/utils"
)

type Service interface {
	// Notify creates a bell notification and pushes it to the recipient's
	// devices. Notifying yourself is suppressed, not an error.
	Notify(ctx context.Context, recipientID uint, sender *SenderSnapshot, ntype, message, link string) error

	ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error)
	MarkAsRead(ctx context.Context, id uint, userID uint) error
	MarkAllAsRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)

	// FCM device token management
	RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType, deviceName string) error
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error
}

type service struct {
	repo Repository
	fcm  Channel
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		fcm:  NewFCMChannel(),
	}
}

// NewServiceWithChannel injects a push channel, used by tests
func NewServiceWithChannel(repo Repository, fcm Channel) Service {
	return &service{repo: repo, fcm: fcm}
}

func (s *service) Notify(ctx context.Context, recipientID uint, sender *SenderSnapshot, ntype, message, link string) error {
	// Acting on your own event must not ring your own bell
	if sender != nil && sender.UserID == recipientID {
		return nil
	}

	n := &Notification{
		UserID:  recipientID,
		Type:    ntype,
		Message: message,
		Link:    link,
	}
	if sender != nil {
		raw, err := json.Marshal(sender)
		if err != nil {
			return err
		}
		n.Sender = datatypes.JSON(raw)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	// Live stream for open sessions
	if utils.RedisClient != nil {
		payload, _ := json.Marshal(n)
		channel := fmt.Sprintf("notifications:user:%d", recipientID)
		_ = utils.RedisClient.Publish(utils.Ctx, channel, string(payload)).Err()
	}

	// Push to registered devices; a failed push never fails the write
	s.pushToUser(ctx, recipientID, pushTitle(ntype, sender), message)

	return nil
}

func (s *service) pushToUser(ctx context.Context, userID uint, title, body string) {
	tokens, err := s.repo.GetUserDeviceTokens(ctx, userID)
	if err != nil || len(tokens) == 0 {
		return
	}
	if err := s.fcm.Send(tokens, title, body); err != nil {
		fmt.Printf("⚠️ push to user %d failed: %v\n", userID, err)
	}
}

// pushTitle derives the push notification title from the type and actor
func pushTitle(ntype string, sender *SenderSnapshot) string {
	name := ""
	if sender != nil {
		name = sender.Name
	}

	switch ntype {
	case TypeJoin:
		return name + " joined your event"
	case TypeLeave:
		return name + " left your event"
	case TypeChat:
		if name != "" {
			return "New message from " + name
		}
		return "New message"
	default:
		return "VADKUL"
	}
}

func (s *service) ListByUser(ctx context.Context, userID uint, limit int) ([]Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *service) MarkAsRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *service) RegisterDeviceToken(ctx context.Context, userID uint, deviceToken, deviceType, deviceName string) error {
	token := &FCMDeviceToken{
		UserID:      userID,
		DeviceToken: deviceToken,
		DeviceType:  deviceType,
		DeviceName:  deviceName,
		IsActive:    true,
	}
	return s.repo.SaveDeviceToken(ctx, token)
}

func (s *service) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return s.repo.RemoveDeviceToken(ctx, userID, deviceToken)
}
