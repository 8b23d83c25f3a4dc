package notification

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Notification types
const (
	TypeJoin   = "join"
	TypeLeave  = "leave"
	TypeChat   = "chat"
	TypeSystem = "system"
)

// Notification is a per-user bell notification. Sender is an optional
// denormalized snapshot: system notifications have none.
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"` // recipient

	Sender datatypes.JSON `gorm:"type:jsonb" json:"sender,omitempty"`

	Type    string `gorm:"size:20;not null;index" json:"type"` // join, leave, chat, system
	Message string `gorm:"type:text;not null" json:"message"`
	Link    string `gorm:"size:255" json:"link,omitempty"` // deep link into the app

	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// SenderSnapshot is the denormalized actor info stored on the notification
type SenderSnapshot struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// SenderInfo decodes the stored sender snapshot; nil for system notifications
func (n *Notification) SenderInfo() *SenderSnapshot {
	if len(n.Sender) == 0 {
		return nil
	}
	var s SenderSnapshot
	if err := json.Unmarshal(n.Sender, &s); err != nil {
		return nil
	}
	return &s
}

// FCMDeviceToken stores user device tokens for push notifications
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	DeviceToken string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"`    // android, ios, web
	DeviceName  string    `gorm:"size:100" json:"device_name"`   // optional device name
	IsActive    bool      `gorm:"default:true" json:"is_active"` // to disable old tokens
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides table name for FCMDeviceToken
func (FCMDeviceToken) TableName() string {
	return "fcm_device_tokens"
}
