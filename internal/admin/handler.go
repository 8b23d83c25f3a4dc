package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vadkul/vadkul-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func getAdminID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return id, true
}

// GetStats godoc
// @Summary Platform-wide counters for the admin dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} PlatformStats
// @Router /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load platform stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers godoc
// @Summary Paginated user list with search and status filter
// @Tags admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Match against name or email"
// @Param status query string false "active or inactive"
// @Success 200 {object} PaginatedUsers
// @Router /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")
	status := c.Query("status")

	result, err := h.Service.ListUsers(c.Request.Context(), limit, page, search, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetUserStatus godoc
// @Summary Activate or deactivate a user account
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Router /admin/users/{id}/status [patch]
func (h *Handler) SetUserStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	userID64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	userID := uint(userID64)

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active field is required"})
		return
	}

	if userID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot change your own account status"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.SetUserStatus(c.Request.Context(), adminID, userID, *req.Active, ip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
}

// BulkDeleteEvents godoc
// @Summary Delete events by ID
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkDeleteEventsRequest true "Event IDs to delete"
// @Router /admin/events [delete]
func (h *Handler) BulkDeleteEvents(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req BulkDeleteEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_ids is required"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	deleted, err := h.Service.BulkDeleteEvents(c.Request.Context(), adminID, req.EventIDs, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "events deleted",
		"deleted_count": deleted,
	})
}
