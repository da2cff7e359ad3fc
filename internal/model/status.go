package model

// DayStatus classifies the data-integrity state of a single recorded day.
type DayStatus string

const (
	// StatusUnknown means no daily total is recorded, or the day is still open.
	StatusUnknown DayStatus = "unknown"
	// StatusPartial means the hourly detail does not account for the full
	// recorded daily total.
	StatusPartial DayStatus = "partial"
	// StatusComplete means the day is strictly in the past and its hourly sum
	// matches the recorded daily total.
	StatusComplete DayStatus = "complete"
)
