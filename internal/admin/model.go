package admin

import (
	"time"
)

// UserResponse is the flattened user row for the admin dashboard
type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	RoleID    uint      `json:"role_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginatedUsers is the user list response
type PaginatedUsers struct {
	Data       []UserResponse `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// PlatformStats is the dashboard summary
type PlatformStats struct {
	TotalUsers           int64 `json:"total_users"`
	ActiveUsers          int64 `json:"active_users"`
	TotalEvents          int64 `json:"total_events"`
	TotalJoins           int64 `json:"total_joins"`
	TotalNotifications   int64 `json:"total_notifications"`
	TotalChatMessages    int64 `json:"total_chat_messages"`
	PendingVerifications int64 `json:"pending_verifications"`
}

// BulkDeleteEventsRequest names the events to remove
type BulkDeleteEventsRequest struct {
	EventIDs []uint `json:"event_ids" binding:"required"`
}
