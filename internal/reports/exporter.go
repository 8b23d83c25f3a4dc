package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders report rows into a downloadable file.
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeEvents:
		return e.exportByFormat(format, fmt.Sprintf("events_report_%s", timestamp),
			eventHeaders, eventRecords(data.Events), e.exportEventsPDF(data.Events))
	case ReportTypeUsers:
		return e.exportByFormat(format, fmt.Sprintf("users_report_%s", timestamp),
			userHeaders, userRecords(data.Users), e.exportUsersPDF(data.Users))
	case ReportTypeAuditLogs:
		return e.exportByFormat(format, fmt.Sprintf("audit_logs_report_%s", timestamp),
			auditLogHeaders, auditLogRecords(data.AuditLogs), e.exportAuditLogsPDF(data.AuditLogs))
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

// exportByFormat picks the output encoding. PDF layouts differ per report so
// the caller passes a pre-rendered pdf closure result.
func (e *reportExporter) exportByFormat(format, basename string, headers []string, records [][]string, pdf func() ([]byte, error)) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := writeCSV(headers, records)
		if err != nil {
			return nil, "", "", err
		}
		return data, basename + ".csv", "text/csv", nil

	case FormatExcel:
		data, err := writeExcel(headers, records)
		if err != nil {
			return nil, "", "", err
		}
		return data, basename + ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := pdf()
		if err != nil {
			return nil, "", "", err
		}
		return data, basename + ".pdf", "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeExcel(headers []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, record := range records {
		for cIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDFTable(title string, headers []string, widths []float64, records [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, record := range records {
		for i, value := range record {
			if len(value) > 48 {
				value = value[:45] + "..."
			}
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ===========================
// Events

var eventHeaders = []string{"ID", "Title", "Category", "Host", "Location", "Start Time", "Price", "Attendees", "Active", "Created At"}

func eventRecords(rows []EventReportRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Title,
			r.Category,
			r.HostName,
			r.LocationName,
			r.StartTime.Format("2006-01-02 15:04"),
			strconv.Itoa(r.Price),
			strconv.Itoa(r.AttendeeCount),
			strconv.FormatBool(r.IsActive),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return records
}

func (e *reportExporter) exportEventsPDF(rows []EventReportRow) func() ([]byte, error) {
	return func() ([]byte, error) {
		widths := []float64{12, 50, 25, 35, 40, 30, 18, 20, 15, 32}
		return renderPDFTable("Events Report", eventHeaders, widths, eventRecords(rows))
	}
}

// ===========================
// Users

var userHeaders = []string{"ID", "Full Name", "Email", "Status", "Role", "Created At"}

func userRecords(rows []UserReportRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.FullName,
			r.Email,
			r.Status,
			r.RoleName,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return records
}

func (e *reportExporter) exportUsersPDF(rows []UserReportRow) func() ([]byte, error) {
	return func() ([]byte, error) {
		widths := []float64{15, 60, 75, 25, 30, 40}
		return renderPDFTable("Users Report", userHeaders, widths, userRecords(rows))
	}
}

// ===========================
// Audit Logs

var auditLogHeaders = []string{"ID", "User ID", "User Name", "Action", "Status", "IP Address", "Timestamp", "Details"}

func auditLogRecords(rows []AuditLogReportRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		userID := ""
		if r.UserID != nil {
			userID = strconv.FormatUint(uint64(*r.UserID), 10)
		}
		records = append(records, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userID,
			r.UserName,
			r.Action,
			r.Status,
			r.IPAddress,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Details,
		})
	}
	return records
}

func (e *reportExporter) exportAuditLogsPDF(rows []AuditLogReportRow) func() ([]byte, error) {
	return func() ([]byte, error) {
		widths := []float64{12, 18, 40, 45, 20, 30, 35, 77}
		return renderPDFTable("Audit Logs Report", auditLogHeaders, widths, auditLogRecords(rows))
	}
}
