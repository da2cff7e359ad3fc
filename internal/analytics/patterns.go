package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// PatternStats summarizes the shape of recorded daily volumes: dispersion,
// trailing moving averages, weekday seasonality and the intraday peak
// multiplier. Today is excluded since it is still accumulating.
type PatternStats struct {
	MeanDailyVolume     float64 `json:"meanDailyVolume"`
	StdDevDailyVolume   float64 `json:"stdDevDailyVolume"`
	CoefficientOfVar    float64 `json:"coefficientOfVariation"`
	MinDailyVolume      int     `json:"minDailyVolume"`
	MaxDailyVolume      int     `json:"maxDailyVolume"`
	MovingAverage7d     float64 `json:"movingAverage7d"`
	MovingAverage30d    float64 `json:"movingAverage30d"`
	WeekendWeekdayRatio float64 `json:"weekendWeekdayRatio"`
	PeakHourMultiplier  float64 `json:"peakHourMultiplier"`
}

// Patterns computes PatternStats over the snapshot's recorded past days.
func Patterns(s *model.Snapshot, now time.Time) PatternStats {
	todayKey := model.DateKey(now)

	keys := make([]string, 0, len(s.DailyTotals))
	for dateKey := range s.DailyTotals {
		if dateKey < todayKey {
			keys = append(keys, dateKey)
		}
	}
	slices.Sort(keys)

	var out PatternStats
	if len(keys) == 0 {
		return out
	}

	volumes := make([]float64, len(keys))
	sum := 0.0
	out.MinDailyVolume = s.DailyTotals[keys[0]]
	for i, key := range keys {
		v := s.DailyTotals[key]
		volumes[i] = float64(v)
		sum += float64(v)
		if v < out.MinDailyVolume {
			out.MinDailyVolume = v
		}
		if v > out.MaxDailyVolume {
			out.MaxDailyVolume = v
		}
	}
	out.MeanDailyVolume = sum / float64(len(volumes))

	variance := 0.0
	for _, v := range volumes {
		d := v - out.MeanDailyVolume
		variance += d * d
	}
	variance /= float64(len(volumes))
	out.StdDevDailyVolume = math.Sqrt(variance)
	if out.MeanDailyVolume > 0 {
		out.CoefficientOfVar = out.StdDevDailyVolume / out.MeanDailyVolume
	}

	out.MovingAverage7d = trailingMean(volumes, 7)
	out.MovingAverage30d = trailingMean(volumes, 30)
	out.WeekendWeekdayRatio = weekendRatio(s, keys)
	out.PeakHourMultiplier = peakHourMultiplier(s)
	return out
}

func trailingMean(volumes []float64, window int) float64 {
	if len(volumes) == 0 {
		return 0
	}
	if window > len(volumes) {
		window = len(volumes)
	}
	sum := 0.0
	for _, v := range volumes[len(volumes)-window:] {
		sum += v
	}
	return sum / float64(window)
}

func weekendRatio(s *model.Snapshot, keys []string) float64 {
	var weekendSum, weekdaySum float64
	var weekendN, weekdayN int
	for _, key := range keys {
		day, err := model.ParseDateKey(key)
		if err != nil {
			continue
		}
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			weekendSum += float64(s.DailyTotals[key])
			weekendN++
		default:
			weekdaySum += float64(s.DailyTotals[key])
			weekdayN++
		}
	}
	if weekendN == 0 || weekdayN == 0 || weekdaySum == 0 {
		return 0
	}
	return (weekendSum / float64(weekendN)) / (weekdaySum / float64(weekdayN))
}

// peakHourMultiplier compares the busiest hour against the hourly mean over
// the hot-day profile. Only hot days carry hourly detail, so this is an
// intraday signal, not a historical one.
func peakHourMultiplier(s *model.Snapshot) float64 {
	var profile model.HourlyBuckets
	for _, hourly := range s.RecentHourly {
		for h, v := range hourly {
			profile[h] += v
		}
	}
	total := profile.Sum()
	if total == 0 {
		return 0
	}
	_, peak := profile.PeakHour()
	mean := float64(total) / float64(model.HoursPerDay)
	return float64(peak) / mean
}
