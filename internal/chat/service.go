package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vadkul/vadkul-backend/internal/auditlog"
	"github.com/vadkul/vadkul-backend/internal/auth"
	"github.com/vadkul/vadkul-backend/internal/profile"
	"github.com/vadkul/vadkul-backend/utils"
)

// Service wraps business logic for chat rooms and messages
type Service struct {
	Repo       Repository
	Users      auth.Repository
	ProfileSvc *profile.Service
	AuditSvc   auditlog.Service
}

func NewService(repo Repository, users auth.Repository, profileSvc *profile.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:       repo,
		Users:      users,
		ProfileSvc: profileSvc,
		AuditSvc:   auditSvc,
	}
}

// ===========================
// 💬 Open Direct Room: create-or-get. Calling this twice, or from either
// side of the pair, always resolves to the same room.
func (s *Service) OpenDirectRoom(ctx context.Context, callerID, otherID uint) (*ChatRoom, error) {
	if callerID == otherID {
		return nil, errors.New("cannot open a chat with yourself")
	}

	key := DirectRoomKey(callerID, otherID)

	if room, err := s.Repo.GetRoom(ctx, key); err == nil {
		return room, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caller, err := s.participantSnapshot(callerID)
	if err != nil {
		return nil, err
	}
	other, err := s.participantSnapshot(otherID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	room := &ChatRoom{
		Key:         key,
		Type:        "direct",
		LastUpdated: time.Now(),
	}
	if err := room.SetParticipants([]Participant{caller, other}); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	// A concurrent open may have won the insert; the stored row is the
	// source of truth either way
	return s.Repo.GetRoom(ctx, key)
}

// ===========================
// 💬 Open Event Room: create-or-get for an event's group chat. The
// caller is added to the participant list on every open, so room
// membership follows whoever actually uses the chat.
func (s *Service) OpenEventRoom(ctx context.Context, callerID, eventID uint) (*ChatRoom, error) {
	key := EventRoomKey(eventID)

	caller, err := s.participantSnapshot(callerID)
	if err != nil {
		return nil, err
	}

	room, err := s.Repo.GetRoom(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		room = &ChatRoom{
			Key:         key,
			Type:        "event",
			EventID:     &eventID,
			LastUpdated: time.Now(),
		}
		if err := room.SetParticipants([]Participant{caller}); err != nil {
			return nil, err
		}
		if err := s.Repo.CreateRoom(ctx, room); err != nil {
			return nil, err
		}
		return s.Repo.GetRoom(ctx, key)
	}
	if err != nil {
		return nil, err
	}

	if !room.HasParticipant(callerID) {
		if err := s.Repo.AddParticipant(ctx, key, caller); err != nil {
			return nil, err
		}
		return s.Repo.GetRoom(ctx, key)
	}
	return room, nil
}

// ===========================
// 📄 List Rooms, newest activity first
func (s *Service) ListRooms(ctx context.Context, userID uint) ([]ChatRoom, error) {
	return s.Repo.ListRoomsForUser(ctx, userID)
}

// ===========================
// 📨 Send Message appends to the room, refreshes the summary, streams
// to live SSE subscribers over Redis and emits a chat activity for the
// other members' notifications.
func (s *Service) SendMessage(ctx context.Context, roomKey string, senderID uint, body string, ip string) (*ChatMessage, error) {
	if body == "" {
		return nil, errors.New("message body cannot be empty")
	}

	room, err := s.Repo.GetRoom(ctx, roomKey)
	if err != nil {
		return nil, errors.New("chat room not found")
	}
	if !room.HasParticipant(senderID) {
		return nil, errors.New("not a member of this chat room")
	}

	sender, err := s.participantSnapshot(senderID)
	if err != nil {
		return nil, err
	}

	msg := &ChatMessage{
		RoomKey:     roomKey,
		SenderID:    senderID,
		SenderName:  sender.Name,
		SenderPhoto: sender.PhotoURL,
		Body:        body,
	}
	if err := s.Repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateRoomSummary(ctx, roomKey, body, senderID, time.Now()); err != nil {
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &senderID, nil, "CHAT_MESSAGE_SENT",
		map[string]interface{}{"room_key": roomKey, "message_id": msg.ID}, ip, "success")

	// Live stream for open chat views
	payload, _ := json.Marshal(msg)
	channel := "chat:room:" + roomKey
	_ = utils.RedisClient.Publish(utils.Ctx, channel, string(payload)).Err()

	// Notification fan-out for everyone else in the room
	for _, p := range room.OtherParticipants(senderID) {
		utils.PublishActivity(roomKey, utils.Activity{
			Type:        "chat",
			RoomKey:     roomKey,
			ActorID:     senderID,
			ActorName:   sender.Name,
			ActorPhoto:  sender.PhotoURL,
			RecipientID: p.UserID,
			Message:     body,
			Link:        fmt.Sprintf("/chat/%s", roomKey),
		})
	}

	return msg, nil
}

// ===========================
// 📄 List Messages: chronological, membership required
func (s *Service) ListMessages(ctx context.Context, roomKey string, userID uint, limit int, beforeID uint) ([]ChatMessage, error) {
	room, err := s.Repo.GetRoom(ctx, roomKey)
	if err != nil {
		return nil, errors.New("chat room not found")
	}
	if !room.HasParticipant(userID) {
		return nil, errors.New("not a member of this chat room")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.Repo.ListMessages(ctx, roomKey, limit, beforeID)
}

// participantSnapshot builds the denormalized member info from the user
// record and, when present, the profile
func (s *Service) participantSnapshot(userID uint) (Participant, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return Participant{}, errors.New("user not found")
	}

	p := Participant{UserID: userID, Name: user.FullName}
	if prof, err := s.ProfileSvc.GetProfile(userID); err == nil {
		if prof.DisplayName != "" {
			p.Name = prof.DisplayName
		}
		p.PhotoURL = prof.PhotoURL
	}
	return p, nil
}
