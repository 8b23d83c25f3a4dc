package verification

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vadkul/vadkul-backend/middleware"
)

const maxPhotoSize = 10 << 20 // 10 MB, camera captures run large

type Handler struct {
	Service   *Service
	UploadDir string
	BaseURL   string
}

func NewHandler(s *Service, uploadDir, baseURL string) *Handler {
	return &Handler{Service: s, UploadDir: uploadDir, BaseURL: baseURL}
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

// POST /api/v1/verification: multipart photo upload
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification photo is required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds 10MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}

	photoDir := filepath.Join(h.UploadDir, "verification")
	if err := os.MkdirAll(photoDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	fileName := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(photoDir, fileName)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photo"})
		return
	}

	photoURL := h.BaseURL + "/uploads/verification/" + fileName
	ip := middleware.GetIPFromContext(c)

	req, err := h.Service.Submit(c.Request.Context(), userID, photoURL, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, req)
}

// GET /api/v1/verification/me
func (h *Handler) Status(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	req, err := h.Service.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no verification request found"})
		return
	}

	c.JSON(http.StatusOK, req)
}

// GET /api/v1/admin/verification/pending?limit=&offset= (admin)
func (h *Handler) PendingQueue(c *gin.Context) {
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	requests, total, err := h.Service.PendingQueue(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch verification queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": requests, "total": total})
}

// POST /api/v1/admin/verification/:id/review (admin)
func (h *Handler) Review(c *gin.Context) {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)

	reviewed, err := h.Service.Review(c.Request.Context(), adminID, uint(id), req.Approve, req.Reason, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reviewed)
}
