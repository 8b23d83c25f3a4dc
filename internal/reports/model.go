package reports

import (
	"time"
)

const (
	ReportTypeEvents    = "events"
	ReportTypeUsers     = "users"
	ReportTypeAuditLogs = "audit-logs"

	// Date range constants
	DateRangeDaily   = "daily"
	DateRangeWeekly  = "weekly"
	DateRangeMonthly = "monthly"
	DateRangeYearly  = "yearly"
	DateRangeCustom  = "custom"

	// Report format constants
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ReportRequest carries the common export parameters.
type ReportRequest struct {
	Type      string    `json:"type"`
	Format    string    `json:"format"`
	DateRange string    `json:"date_range"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ReportData holds the rows for whichever report was requested.
type ReportData struct {
	Events    []EventReportRow    `json:"events,omitempty"`
	Users     []UserReportRow     `json:"users,omitempty"`
	AuditLogs []AuditLogReportRow `json:"audit_logs,omitempty"`
}

// EventReportRow represents a single row in the events report
type EventReportRow struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	HostName      string    `json:"host_name"`
	LocationName  string    `json:"location_name"`
	StartTime     time.Time `json:"start_time"`
	Price         int       `json:"price"`
	AttendeeCount int       `json:"attendee_count"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserReportRow represents a single row in the users report
type UserReportRow struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLogReportRow represents a single row in the audit logs report
type AuditLogReportRow struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	IPAddress string    `json:"ip_address"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
}
