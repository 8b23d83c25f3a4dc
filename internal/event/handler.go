package event

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vadkul/vadkul-backend/internal/discovery"
	"github.com/vadkul/vadkul-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📌 Extract caller's user ID set by the auth middleware
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

func parseEventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎯 Create Event - POST /events
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} Event
// @Failure 400 {object} gin.H
// @Router /api/v1/events [post]
func (h *Handler) CreateEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	created, err := h.Service.CreateEvent(&req, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	event, err := h.Service.GetEventByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// ===========================
// 📄 List Events - GET /events?limit=&offset=&search=
func (h *Handler) ListEvents(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	events, err := h.Service.ListEvents(limit, offset, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ===========================
// 📄 My Events - GET /events/mine
func (h *Handler) ListMyEvents(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	events, err := h.Service.ListMyEvents(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ===========================
// 🛠 Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	updated, err := h.Service.UpdateEvent(id, &req, userID, ip)
	if err != nil {
		status := http.StatusBadRequest
		if err.Error() == "only the host can update this event" {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ===========================
// 🤝 Join Event - POST /events/:id/join
func (h *Handler) JoinEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	event, err := h.Service.JoinEvent(c.Request.Context(), id, userID, ip)
	if err != nil {
		if errors.Is(err, ErrEventFull) {
			// The app shows this message as-is
			c.JSON(http.StatusConflict, gin.H{"error": ErrEventFull.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

// ===========================
// 👋 Leave Event - POST /events/:id/leave
func (h *Handler) LeaveEvent(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)

	event, err := h.Service.LeaveEvent(c.Request.Context(), id, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

// ===========================
// 🧭 Discover - GET /events/discover
// @Summary Discover events
// @Description Filter and rank events around the caller's position
// @Tags Events
// @Produce json
// @Param lat query number false "Caller latitude"
// @Param lng query number false "Caller longitude"
// @Param category query string false "Category id, or all"
// @Param age query string false "all | family | 18plus | seniors"
// @Param radius query number false "Search radius in km, 0 = unlimited"
// @Param free query bool false "Only free events"
// @Param today query bool false "Only events starting today"
// @Param search query string false "Case-insensitive title substring"
// @Param sort query string false "closest | soonest | latest | popular"
// @Success 200 {object} gin.H
// @Router /api/v1/events/discover [get]
func (h *Handler) Discover(c *gin.Context) {
	userLat := parseFloatQuery(c, "lat")
	userLng := parseFloatQuery(c, "lng")

	age := discovery.AgeBucket(c.DefaultQuery("age", string(discovery.AgeAll)))
	if !age.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown age bucket: use all, family, 18plus or seniors"})
		return
	}

	f := discovery.Filters{
		Category:  c.DefaultQuery("category", discovery.CategoryAll),
		Age:       age,
		FreeOnly:  c.Query("free") == "true",
		TodayOnly: c.Query("today") == "true",
		Search:    c.Query("search"),
	}
	if v, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil && v > 0 {
		f.RadiusKm = v
	}

	key := discovery.SortKey(c.DefaultQuery("sort", string(discovery.SortClosest)))
	if !key.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort key: use closest, soonest, latest or popular"})
		return
	}

	result, err := h.Service.Discover(userLat, userLng, f, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to discover events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result, "count": len(result)})
}

// parseFloatQuery returns NaN when the parameter is missing or malformed,
// which downstream treats as "no caller position".
func parseFloatQuery(c *gin.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
