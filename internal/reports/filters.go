package reports

import (
	"errors"
	"time"
)

// presetWindow computes the report window for a preset relative to now.
type presetWindow func(now time.Time) (time.Time, time.Time)

var presetWindows = map[string]presetWindow{
	DateRangeDaily: func(now time.Time) (time.Time, time.Time) {
		start := startOfDay(now)
		return start, start.Add(24*time.Hour - time.Second)
	},
	DateRangeWeekly: func(now time.Time) (time.Time, time.Time) {
		// last 7 days including today
		end := startOfDay(now).Add(24*time.Hour - time.Second)
		return startOfDay(now.AddDate(0, 0, -6)), end
	},
	DateRangeMonthly: func(now time.Time) (time.Time, time.Time) {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Second)
	},
	DateRangeYearly: func(now time.Time) (time.Time, time.Time) {
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
	},
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GetDateRange resolves a preset or custom window against the wall clock.
// startStr/endStr are "2006-01-02" and only read for DateRangeCustom.
func GetDateRange(dateRange, startStr, endStr string) (time.Time, time.Time, error) {
	return dateRangeAt(time.Now(), dateRange, startStr, endStr)
}

func dateRangeAt(now time.Time, dateRange, startStr, endStr string) (time.Time, time.Time, error) {
	if window, ok := presetWindows[dateRange]; ok {
		start, end := window(now)
		return start, end, nil
	}

	if dateRange == DateRangeCustom {
		if startStr == "" || endStr == "" {
			return time.Time{}, time.Time{}, errors.New("start_date and end_date required for custom range")
		}
		start, err := time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// include the entire end day
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		if start.After(end) {
			return time.Time{}, time.Time{}, errors.New("start_date must be before end_date")
		}
		return start, end, nil
	}

	// unknown preset falls back to the weekly window
	start, end := presetWindows[DateRangeWeekly](now)
	return start, end, nil
}
