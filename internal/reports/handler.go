package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vadkul/vadkul-backend/middleware"
)

type Handler struct {
	Service ReportService
}

func NewHandler(service ReportService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) buildRequest(c *gin.Context) (ReportRequest, bool) {
	req := ReportRequest{
		Type:      c.Query("type"),
		Format:    c.DefaultQuery("format", FormatCSV),
		DateRange: c.DefaultQuery("date_range", DateRangeWeekly),
	}

	start, end, err := GetDateRange(req.DateRange, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return ReportRequest{}, false
	}
	req.StartDate = start
	req.EndDate = end
	return req, true
}

// GetReport godoc
// @Summary Report rows as JSON (preview before download)
// @Tags reports
// @Produce json
// @Param type query string true "events, users or audit-logs"
// @Param date_range query string false "daily, weekly, monthly, yearly or custom"
// @Param start_date query string false "YYYY-MM-DD, custom range only"
// @Param end_date query string false "YYYY-MM-DD, custom range only"
// @Router /admin/reports [get]
func (h *Handler) GetReport(c *gin.Context) {
	req, ok := h.buildRequest(c)
	if !ok {
		return
	}

	data, err := h.Service.GetReport(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

// ExportReport godoc
// @Summary Download a report as CSV, Excel or PDF
// @Tags reports
// @Produce octet-stream
// @Param type query string true "events, users or audit-logs"
// @Param format query string false "csv, excel or pdf"
// @Router /admin/reports/export [get]
func (h *Handler) ExportReport(c *gin.Context) {
	req, ok := h.buildRequest(c)
	if !ok {
		return
	}

	var userID *uint
	if v, exists := c.Get("user_id"); exists {
		if id, okID := v.(uint); okID {
			userID = &id
		}
	}
	ip := middleware.GetIPFromContext(c)

	data, filename, mimeType, err := h.Service.ExportReport(c.Request.Context(), req, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mimeType, data)
}
