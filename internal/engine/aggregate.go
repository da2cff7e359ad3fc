package engine

import (
	"time"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// Fold adds transactions into the snapshot's bucket aggregates: daily and
// monthly totals always, hourly buckets only while the day is hot. Returns
// the set of touched date keys.
func Fold(s *model.Snapshot, txs []model.Transaction, now time.Time) map[string]struct{} {
	today, yesterday := model.HotDayKeys(now)
	touched := make(map[string]struct{})

	for _, tx := range txs {
		dateKey := model.DateKey(tx.Timestamp)
		monthKey := model.MonthKey(tx.Timestamp)

		s.DailyTotals[dateKey]++
		s.MonthlyTotals[monthKey]++
		touched[dateKey] = struct{}{}

		if dateKey == today || dateKey == yesterday {
			hourly := s.RecentHourly[dateKey]
			hourly[tx.Timestamp.UTC().Hour()]++
			s.RecentHourly[dateKey] = hourly
		}

		if tx.BlockNumber > s.LastBlockNumber {
			s.LastBlockNumber = tx.BlockNumber
		}
	}

	s.TotalTransactions += len(txs)
	s.TotalDaysActive = len(s.DailyTotals)
	return touched
}

// Rotate collapses hourly detail for days that are no longer hot: the 24-slot
// sum is written into dailyTotals only if no total exists for that day, and
// the hourly entry is removed. Afterwards both current hot days have
// zero-initialized hourly entries. Returns the rotated date keys.
func Rotate(s *model.Snapshot, now time.Time) []string {
	today, yesterday := model.HotDayKeys(now)

	var rotated []string
	for dateKey, hourly := range s.RecentHourly {
		if dateKey == today || dateKey == yesterday {
			continue
		}
		if _, exists := s.DailyTotals[dateKey]; !exists {
			s.DailyTotals[dateKey] = hourly.Sum()
		}
		delete(s.RecentHourly, dateKey)
		rotated = append(rotated, dateKey)
	}

	for _, dateKey := range []string{today, yesterday} {
		if _, ok := s.RecentHourly[dateKey]; !ok {
			s.RecentHourly[dateKey] = model.HourlyBuckets{}
		}
	}

	s.TotalDaysActive = len(s.DailyTotals)
	return rotated
}
