package model

// ClassifyDay derives the integrity status of a single day.
//
// A day with no recorded total is unknown. Today (and any future key) is
// perpetually in progress, so it is unknown regardless of data. A past day
// with hourly detail still on hand is complete only when the 24-slot sum
// matches the recorded total. A past day whose hourly detail has already
// been rotated away is complete: rotation derives the total from the hourly
// sum itself and never overwrites an existing total.
func ClassifyDay(dateKey string, total int, totalOK bool, hourly HourlyBuckets, hourlyOK bool, todayKey string) DayStatus {
	if !totalOK {
		return StatusUnknown
	}
	if dateKey >= todayKey {
		return StatusUnknown
	}
	if !hourlyOK {
		return StatusComplete
	}
	if hourly.Sum() == total {
		return StatusComplete
	}
	return StatusPartial
}

// DayStatusOf classifies a recorded day of this snapshot against todayKey.
func (s *Snapshot) DayStatusOf(dateKey, todayKey string) DayStatus {
	total, totalOK := s.DailyTotals[dateKey]
	hourly, hourlyOK := s.RecentHourly[dateKey]
	return ClassifyDay(dateKey, total, totalOK, hourly, hourlyOK, todayKey)
}
