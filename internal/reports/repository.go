package reports

import (
	"time"

	"gorm.io/gorm"
)

// ReportRepository fetches flattened report rows straight from SQL.
type ReportRepository interface {
	GetEvents(start, end time.Time) ([]EventReportRow, error)
	GetUsers(start, end time.Time) ([]UserReportRow, error)
	GetAuditLogs(start, end time.Time) ([]AuditLogReportRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetEvents(start, end time.Time) ([]EventReportRow, error) {
	var rows []EventReportRow
	err := r.db.
		Table("events").
		Select(`
			id,
			title,
			category,
			COALESCE(host->>'name', '') as host_name,
			location_name,
			start_time,
			price,
			COALESCE(jsonb_array_length(COALESCE(attendees, '[]'::jsonb)), 0) as attendee_count,
			is_active,
			created_at
		`).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) GetUsers(start, end time.Time) ([]UserReportRow, error) {
	var rows []UserReportRow
	err := r.db.
		Table("users").
		Select(`
			users.id,
			users.full_name,
			users.email,
			users.status,
			user_roles.role_name,
			users.created_at
		`).
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Where("users.created_at BETWEEN ? AND ?", start, end).
		Order("users.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) GetAuditLogs(start, end time.Time) ([]AuditLogReportRow, error) {
	var rows []AuditLogReportRow
	err := r.db.
		Table("audit_logs al").
		Select(`
			al.id,
			al.user_id,
			COALESCE(u.full_name, 'System') as user_name,
			al.action,
			al.status,
			al.ip_address,
			al.created_at as timestamp,
			al.details::text as details
		`).
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Where("al.created_at BETWEEN ? AND ?", start, end).
		Order("al.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
