// Package analytics derives read-only rollups from a cache snapshot for the
// reporting layer. Nothing here mutates the snapshot.
package analytics

import (
	"slices"
	"time"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// AnchorLookbackDays bounds the backward scan for the latest recorded day.
const AnchorLookbackDays = 14

// MonthSummary aggregates a single month's complete days. Partial and
// unknown days are excluded from both numerator and denominator to avoid
// skewing the average.
type MonthSummary struct {
	Sum                   int
	CompleteDayCount      int
	AveragePerCompleteDay float64
}

// WeeklyWindow is the 7 contiguous date keys ending at the anchor. OK is
// true only when every one of the 7 days is complete; the date list is
// always populated so callers can render a week-to-date fallback label.
type WeeklyWindow struct {
	Dates [7]string
	OK    bool
}

// LatestAnchor scans backward from now over the lookback window and returns
// the first date key with a non-zero recorded total. Freshness is
// deliberately preferred over strict completeness here: the most recent day
// with any data anchors the report, even if its status is still partial.
func LatestAnchor(s *model.Snapshot, now time.Time) (string, bool) {
	now = now.UTC()
	for i := 0; i < AnchorLookbackDays; i++ {
		key := model.DateKey(now.AddDate(0, 0, -i))
		if s.DailyTotals[key] > 0 {
			return key, true
		}
	}
	return "", false
}

// MonthToDate sums the anchor month's complete days.
func MonthToDate(s *model.Snapshot, anchorKey string, now time.Time) MonthSummary {
	month := model.MonthOfDateKey(anchorKey)
	todayKey := model.DateKey(now)

	var out MonthSummary
	for dateKey, total := range s.DailyTotals {
		if model.MonthOfDateKey(dateKey) != month {
			continue
		}
		if s.DayStatusOf(dateKey, todayKey) != model.StatusComplete {
			continue
		}
		out.Sum += total
		out.CompleteDayCount++
	}
	if out.CompleteDayCount > 0 {
		out.AveragePerCompleteDay = float64(out.Sum) / float64(out.CompleteDayCount)
	}
	return out
}

// Weekly builds the 7-day window ending at the anchor and validates that
// every day in it is complete.
func Weekly(s *model.Snapshot, anchorKey string, now time.Time) (WeeklyWindow, error) {
	anchor, err := model.ParseDateKey(anchorKey)
	if err != nil {
		return WeeklyWindow{}, err
	}
	todayKey := model.DateKey(now)

	w := WeeklyWindow{OK: true}
	for i := 0; i < len(w.Dates); i++ {
		key := model.DateKey(anchor.AddDate(0, 0, i-6))
		w.Dates[i] = key
		if s.DayStatusOf(key, todayKey) != model.StatusComplete {
			w.OK = false
		}
	}
	return w, nil
}

// WindowTotal sums recorded daily totals across the given date keys.
func WindowTotal(s *model.Snapshot, dates []string) int {
	total := 0
	for _, key := range dates {
		total += s.DailyTotals[key]
	}
	return total
}

// PeakDay returns the date with the highest recorded total within the
// window; the earliest date wins ties.
func PeakDay(s *model.Snapshot, dates []string) (string, int) {
	sorted := slices.Clone(dates)
	slices.Sort(sorted)

	bestKey, bestTotal := "", 0
	for _, key := range sorted {
		if total, ok := s.DailyTotals[key]; ok && total > bestTotal {
			bestKey, bestTotal = key, total
		}
	}
	return bestKey, bestTotal
}

// GrowthRate is the percentage change between two equal-length adjacent
// periods. By definition it is 0 when the previous period is 0, so there is
// never a division by zero; a positive sign means growth.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// MissingDays enumerates date keys strictly between the last recorded day
// and today (the still-open current day excluded) that have no recorded
// total. The result feeds the fetcher's incremental lower bound for
// backfill.
func MissingDays(s *model.Snapshot, now time.Time) []string {
	lastKey := ""
	for dateKey := range s.DailyTotals {
		if dateKey > lastKey {
			lastKey = dateKey
		}
	}
	if lastKey == "" {
		return nil
	}
	last, err := model.ParseDateKey(lastKey)
	if err != nil {
		return nil
	}

	todayKey := model.DateKey(now)
	var missing []string
	for d := last.AddDate(0, 0, 1); model.DateKey(d) < todayKey; d = d.AddDate(0, 0, 1) {
		key := model.DateKey(d)
		if _, ok := s.DailyTotals[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
