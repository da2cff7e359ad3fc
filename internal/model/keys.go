package model

import "time"

const (
	// DateKeyLayout is the canonical UTC calendar-day bucket key.
	DateKeyLayout = "2006-01-02"
	// MonthKeyLayout is the canonical UTC calendar-month bucket key.
	MonthKeyLayout = "2006-01"
)

// DateKey buckets a timestamp to its UTC calendar day.
func DateKey(ts time.Time) string {
	return ts.UTC().Format(DateKeyLayout)
}

// MonthKey buckets a timestamp to its UTC calendar month.
func MonthKey(ts time.Time) string {
	return ts.UTC().Format(MonthKeyLayout)
}

// MonthOfDateKey returns the YYYY-MM prefix of a date key.
func MonthOfDateKey(dateKey string) string {
	if len(dateKey) < len(MonthKeyLayout) {
		return dateKey
	}
	return dateKey[:len(MonthKeyLayout)]
}

// ParseDateKey parses a YYYY-MM-DD key back into a UTC midnight instant.
func ParseDateKey(dateKey string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, dateKey, time.UTC)
}

// HotDayKeys returns the date keys still tracked at hourly granularity:
// today and yesterday, evaluated against the given UTC instant.
func HotDayKeys(now time.Time) (today, yesterday string) {
	now = now.UTC()
	return DateKey(now), DateKey(now.AddDate(0, 0, -1))
}
