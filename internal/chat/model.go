package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 GORM Chat Models
//
// Rooms are keyed by a deterministic string, not a serial id: the same
// pair of users always lands in the same room, so "create or get" is
// idempotent without any lookup-then-insert race.
type ChatRoom struct {
	Key  string `gorm:"primaryKey;size:64" json:"key"`
	Type string `gorm:"size:10;not null" json:"type"` // direct | event

	EventID *uint `gorm:"index" json:"event_id,omitempty"`

	// Denormalized participant info so the room list renders without joins
	Participants datatypes.JSON `gorm:"type:jsonb" json:"participants"`

	// Summary for list rendering, updated on every send
	LastMessage  string    `gorm:"type:text" json:"last_message"`
	LastSenderID uint      `json:"last_sender_id"`
	LastUpdated  time.Time `gorm:"index" json:"last_updated"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName overrides table name for ChatRoom
func (ChatRoom) TableName() string {
	return "chat_rooms"
}

// ChatMessage is append-only: no edit, no delete, ordered by created_at
type ChatMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomKey     string    `gorm:"size:64;not null;index" json:"room_key"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	SenderName  string    `gorm:"size:120" json:"sender_name"`
	SenderPhoto string    `gorm:"size:512" json:"sender_photo,omitempty"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Participant is the denormalized member info stored on the room
type Participant struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// DirectRoomKey builds the key for a one-to-one room. The pair is sorted
// so both callers derive the same key regardless of argument order.
func DirectRoomKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("direct:%d:%d", a, b)
}

// EventRoomKey builds the key for an event's group room
func EventRoomKey(eventID uint) string {
	return fmt.Sprintf("event:%d", eventID)
}

// ParticipantList decodes the stored participant snapshots
func (r *ChatRoom) ParticipantList() ([]Participant, error) {
	if len(r.Participants) == 0 {
		return []Participant{}, nil
	}
	var list []Participant
	if err := json.Unmarshal(r.Participants, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetParticipants encodes the list back into the JSONB column
func (r *ChatRoom) SetParticipants(list []Participant) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	r.Participants = datatypes.JSON(raw)
	return nil
}

// HasParticipant reports whether userID is a member of the room
func (r *ChatRoom) HasParticipant(userID uint) bool {
	list, err := r.ParticipantList()
	if err != nil {
		return false
	}
	for _, p := range list {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// OtherParticipants returns every member except userID, used for
// notification fan-out on send.
func (r *ChatRoom) OtherParticipants(userID uint) []Participant {
	list, _ := r.ParticipantList()
	others := make([]Participant, 0, len(list))
	for _, p := range list {
		if p.UserID != userID {
			others = append(others, p)
		}
	}
	return others
}

// Request DTOs

type OpenDirectRoomRequest struct {
	OtherUserID uint `json:"other_user_id" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
