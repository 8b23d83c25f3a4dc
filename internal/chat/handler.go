package chat

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vadkul/vadkul-backend/middleware"
	"github.com/vadkul/vadkul-backend/utils"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user context missing"})
		return 0, false
	}
	userID, ok := raw.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user context"})
		return 0, false
	}
	return userID, true
}

// POST /api/v1/chat/rooms: create-or-get a direct room
func (h *Handler) OpenDirectRoom(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req OpenDirectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.Service.OpenDirectRoom(c.Request.Context(), userID, req.OtherUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, room)
}

// POST /api/v1/chat/events/:event_id/room: create-or-get an event room
func (h *Handler) OpenEventRoom(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	room, err := h.Service.OpenEventRoom(c.Request.Context(), userID, uint(eventID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, room)
}

// GET /api/v1/chat/rooms
func (h *Handler) ListRooms(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	rooms, err := h.Service.ListRooms(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list chat rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// GET /api/v1/chat/rooms/:key/messages?limit=&before=
func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	var beforeID uint
	if v, err := strconv.ParseUint(c.Query("before"), 10, 32); err == nil {
		beforeID = uint(v)
	}

	messages, err := h.Service.ListMessages(c.Request.Context(), c.Param("key"), userID, limit, beforeID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": messages})
}

// POST /api/v1/chat/rooms/:key/messages
func (h *Handler) SendMessage(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	msg, err := h.Service.SendMessage(c.Request.Context(), c.Param("key"), userID, req.Body, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GET /api/v1/chat/rooms/:key/stream (SSE)
// Subscribes to the room's Redis channel and relays messages until the
// client disconnects; the subscription is closed on cancellation.
func (h *Handler) StreamMessages(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	roomKey := c.Param("key")

	// Membership gate before holding a connection open
	if _, err := h.Service.ListMessages(c.Request.Context(), roomKey, userID, 1, 0); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}

	channel := "chat:room:" + roomKey
	sub := utils.RedisClient.Subscribe(c, channel)
	defer sub.Close()

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	flusher.Flush()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = c.Writer.Write([]byte("event: message\n"))
			_, _ = c.Writer.Write([]byte("data: " + msg.Payload + "\n\n"))
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
