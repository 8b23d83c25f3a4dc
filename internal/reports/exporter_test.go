package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestDateRangeCustom(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

	start, end, err := dateRangeAt(now, DateRangeCustom, "2026-08-01", "2026-08-15")
	if err != nil {
		t.Fatalf("custom range: %v", err)
	}
	if start.Day() != 1 || start.Month() != time.August {
		t.Errorf("unexpected start: %v", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end should cover the whole day: %v", end)
	}

	if _, _, err := dateRangeAt(now, DateRangeCustom, "", ""); err == nil {
		t.Error("custom range without dates should fail")
	}
	if _, _, err := dateRangeAt(now, DateRangeCustom, "2026-08-15", "2026-08-01"); err == nil {
		t.Error("inverted range should fail")
	}
}

func TestDateRangePresets(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		preset    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{DateRangeDaily,
			time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)},
		{DateRangeWeekly,
			time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)},
		{DateRangeMonthly,
			time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)},
		{DateRangeYearly,
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)},
		// unknown preset falls back to weekly
		{"fortnightly",
			time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)},
	}

	for _, tc := range cases {
		start, end, err := dateRangeAt(now, tc.preset, "", "")
		if err != nil {
			t.Errorf("%s: %v", tc.preset, err)
			continue
		}
		if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
			t.Errorf("%s: got [%v, %v], want [%v, %v]", tc.preset, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestExportEventsCSV(t *testing.T) {
	e := NewReportExporter()
	data := ReportData{Events: []EventReportRow{
		{
			ID:            7,
			Title:         "Grillkväll",
			Category:      "food",
			HostName:      "Oskar",
			LocationName:  "Rålambshovsparken",
			StartTime:     time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC),
			Price:         0,
			AttendeeCount: 3,
			IsActive:      true,
			CreatedAt:     time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		},
	}}

	out, filename, mimeType, err := e.Export(ReportTypeEvents, FormatCSV, data)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(filename, ".csv") {
		t.Errorf("unexpected filename: %s", filename)
	}
	if mimeType != "text/csv" {
		t.Errorf("unexpected mime type: %s", mimeType)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if records[1][1] != "Grillkväll" || records[1][7] != "3" {
		t.Errorf("row values wrong: %v", records[1])
	}
}

func TestExportRejectsUnknownTypeAndFormat(t *testing.T) {
	e := NewReportExporter()

	if _, _, _, err := e.Export("bookings", FormatCSV, ReportData{}); err == nil {
		t.Error("unknown report type should fail")
	}
	if _, _, _, err := e.Export(ReportTypeUsers, "xml", ReportData{}); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestAuditLogRecordsHandleNilUser(t *testing.T) {
	rows := []AuditLogReportRow{{
		ID:        1,
		UserID:    nil,
		UserName:  "System",
		Action:    "EVENT_CREATED",
		Status:    "success",
		Timestamp: time.Now(),
	}}

	records := auditLogRecords(rows)
	if records[0][1] != "" {
		t.Errorf("nil user id should render empty, got %q", records[0][1])
	}
	if records[0][2] != "System" {
		t.Errorf("unexpected user name: %q", records[0][2])
	}
}
