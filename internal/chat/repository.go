package chat

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetRoom(ctx context.Context, key string) (*ChatRoom, error)
	CreateRoom(ctx context.Context, room *ChatRoom) error
	ListRoomsForUser(ctx context.Context, userID uint) ([]ChatRoom, error)
	AddParticipant(ctx context.Context, key string, p Participant) error

	CreateMessage(ctx context.Context, msg *ChatMessage) error
	ListMessages(ctx context.Context, roomKey string, limit int, beforeID uint) ([]ChatMessage, error)
	UpdateRoomSummary(ctx context.Context, key string, lastMessage string, senderID uint, at time.Time) error

	CountMessages(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRoom(ctx context.Context, key string) (*ChatRoom, error) {
	var room ChatRoom
	if err := r.db.WithContext(ctx).First(&room, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateRoom inserts the room; a concurrent insert of the same key is not
// an error, the caller re-reads the row either way.
func (r *repository) CreateRoom(ctx context.Context, room *ChatRoom) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(room).Error
}

// ListRoomsForUser finds every room whose participant list contains the
// user, newest activity first. JSONB containment keeps this a single
// indexed query.
func (r *repository) ListRoomsForUser(ctx context.Context, userID uint) ([]ChatRoom, error) {
	var rooms []ChatRoom
	member := fmt.Sprintf(`[{"user_id": %d}]`, userID)
	err := r.db.WithContext(ctx).
		Where("participants @> ?", member).
		Order("last_updated DESC").
		Find(&rooms).Error
	return rooms, err
}

// AddParticipant appends p to the room's list under a row lock, skipping
// the write when the user is already a member.
func (r *repository) AddParticipant(ctx context.Context, key string, p Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room ChatRoom
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "key = ?", key).Error; err != nil {
			return err
		}
		if room.HasParticipant(p.UserID) {
			return nil
		}
		list, err := room.ParticipantList()
		if err != nil {
			return err
		}
		if err := room.SetParticipants(append(list, p)); err != nil {
			return err
		}
		return tx.Save(&room).Error
	})
}

func (r *repository) CreateMessage(ctx context.Context, msg *ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListMessages returns up to limit messages in chronological order.
// beforeID pages backwards through history; 0 means "the latest page".
func (r *repository) ListMessages(ctx context.Context, roomKey string, limit int, beforeID uint) ([]ChatMessage, error) {
	var messages []ChatMessage

	query := r.db.WithContext(ctx).Where("room_key = ?", roomKey)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}

	err := query.
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Reverse into chronological order for the client
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *repository) UpdateRoomSummary(ctx context.Context, key string, lastMessage string, senderID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&ChatRoom{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"last_message":   lastMessage,
			"last_sender_id": senderID,
			"last_updated":   at,
		}).Error
}

func (r *repository) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ChatMessage{}).Count(&count).Error
	return count, err
}
