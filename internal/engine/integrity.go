package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// trackedDays returns the date keys still carrying hourly detail. These are
// the only days whose totals can be cross-checked; rotation strips the
// evidence afterwards, so they must be validated before it runs.
func trackedDays(s *model.Snapshot) map[string]struct{} {
	keys := make(map[string]struct{}, len(s.RecentHourly))
	for dateKey := range s.RecentHourly {
		keys[dateKey] = struct{}{}
	}
	return keys
}

// validateDays re-classifies every given day and surfaces integrity
// mismatches. A mismatch never blocks processing; the day is downgraded to
// partial by classification and reported so operators can investigate
// pagination gaps.
func (e *Engine) validateDays(s *model.Snapshot, touched map[string]struct{}, now time.Time) {
	todayKey := model.DateKey(now)

	for dateKey := range touched {
		status := s.DayStatusOf(dateKey, todayKey)
		if status != model.StatusPartial {
			continue
		}
		hourly := s.RecentHourly[dateKey]
		e.metrics.ObserveIntegrityMismatch(dateKey)
		e.logger.Warn("integrity mismatch: hourly sum does not match daily total",
			zap.String("date", dateKey),
			zap.Int("daily_total", s.DailyTotals[dateKey]),
			zap.Int("hourly_sum", hourly.Sum()),
		)
	}
}
