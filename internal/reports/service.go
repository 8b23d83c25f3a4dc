package reports

import (
	"context"
	"fmt"

	"github.com/vadkul/vadkul-backend/internal/auditlog"
)

// ReportService coordinates repo + exporter and audits every download.
type ReportService interface {
	GetReport(req ReportRequest) (ReportData, error)
	ExportReport(ctx context.Context, req ReportRequest, userID *uint, ip string) ([]byte, string, string, error)
}

type reportService struct {
	repo     ReportRepository
	exporter ReportExporter
	auditSvc auditlog.Service
}

func NewReportService(repo ReportRepository, exporter ReportExporter, auditSvc auditlog.Service) ReportService {
	return &reportService{
		repo:     repo,
		exporter: exporter,
		auditSvc: auditSvc,
	}
}

func (s *reportService) GetReport(req ReportRequest) (ReportData, error) {
	var data ReportData
	var err error

	switch req.Type {
	case ReportTypeEvents:
		data.Events, err = s.repo.GetEvents(req.StartDate, req.EndDate)
	case ReportTypeUsers:
		data.Users, err = s.repo.GetUsers(req.StartDate, req.EndDate)
	case ReportTypeAuditLogs:
		data.AuditLogs, err = s.repo.GetAuditLogs(req.StartDate, req.EndDate)
	default:
		return ReportData{}, fmt.Errorf("invalid report type: %s", req.Type)
	}
	return data, err
}

func (s *reportService) ExportReport(ctx context.Context, req ReportRequest, userID *uint, ip string) ([]byte, string, string, error) {
	data, err := s.GetReport(req)
	if err != nil {
		s.auditSvc.LogAction(ctx, userID, nil, "REPORT_DOWNLOAD_FAILED",
			map[string]interface{}{
				"report_type": req.Type,
				"format":      req.Format,
				"error":       err.Error(),
			}, ip, "failure")
		return nil, "", "", err
	}

	bytes, filename, mimeType, err := s.exporter.Export(req.Type, req.Format, data)
	if err != nil {
		s.auditSvc.LogAction(ctx, userID, nil, "REPORT_DOWNLOAD_FAILED",
			map[string]interface{}{
				"report_type": req.Type,
				"format":      req.Format,
				"error":       err.Error(),
			}, ip, "failure")
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, userID, nil, "REPORT_DOWNLOADED",
		map[string]interface{}{
			"report_type": req.Type,
			"format":      req.Format,
			"filename":    filename,
			"date_range":  req.DateRange,
		}, ip, "success")

	return bytes, filename, mimeType, nil
}
