package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

func TestBuildStats_FullPayload(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	s := model.NewSnapshot()
	for day := 13; day <= 19; day++ {
		s.DailyTotals[model.DateKey(time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC))] = 100
	}
	s.MonthlyTotals["2025-08"] = 700
	s.RecentHourly["2025-08-19"] = model.HourlyBuckets{9: 60, 14: 40}
	s.DailyTotals["2025-08-19"] = 100
	s.TotalTransactions = 700
	s.TotalDaysActive = 7
	s.LastUpdate = now

	resp := BuildStats(s, now)

	assert.Equal(t, 700, resp.TotalTransactions)
	assert.Equal(t, "2025-08-20T10:00:00Z", resp.LastUpdate)

	a := resp.Analysis
	assert.Equal(t, "2025-08-19", a.LatestCompleteDate)
	assert.Equal(t, "Aug 19, 2025", a.LatestCompleteDateFormatted)
	assert.Equal(t, 100, a.LatestDayTxs)
	assert.Equal(t, "Aug 19", a.LatestDayLabel)

	assert.Equal(t, 700, a.WeeklyTxs)
	assert.Equal(t, "Aug 13 - Aug 19, 2025", a.WeeklyPeriod)
	assert.True(t, a.WeeklyComplete)
	assert.Equal(t, "2025-08-13", a.PeakDayDate, "equal totals: earliest day wins")
	assert.Equal(t, 100, a.PeakDayTxs)
	assert.Zero(t, a.WeeklyGrowthRate, "empty previous week never divides")

	assert.Equal(t, 700, a.MonthlyTxs)
	assert.Equal(t, "August 2025", a.MonthlyPeriod)

	assert.Equal(t, map[int]int{9: 60, 14: 40}, nonZeroHours(a.HourlyData))
	assert.Equal(t, s.DailyTotals, a.DailyData)
	assert.Equal(t, s.MonthlyTotals, a.MonthlyData)
}

func TestBuildStats_PartialDayBreaksWeeklyFlag(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	s := model.NewSnapshot()
	for day := 13; day <= 19; day++ {
		s.DailyTotals[model.DateKey(time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC))] = 100
	}
	// Recorded hourly buckets that do not add up mark 08-15 as partial.
	s.RecentHourly["2025-08-15"] = model.HourlyBuckets{0: 40}
	s.TotalTransactions = 700

	resp := BuildStats(s, now)

	assert.Equal(t, "2025-08-19", resp.Analysis.LatestCompleteDate)
	assert.False(t, resp.Analysis.WeeklyComplete)
	assert.Equal(t, 700, resp.Analysis.WeeklyTxs, "window total still sums recorded days")
	assert.Equal(t, 600, resp.Analysis.MonthlyTxs, "month-to-date excludes the partial day")
}

func TestBuildStats_WeeklyGrowthAndPeak(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	s := model.NewSnapshot()
	for day := 6; day <= 12; day++ {
		s.DailyTotals[model.DateKey(time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC))] = 50
	}
	for day := 13; day <= 19; day++ {
		s.DailyTotals[model.DateKey(time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC))] = 100
	}
	s.DailyTotals["2025-08-17"] = 130
	s.TotalTransactions = 1080

	resp := BuildStats(s, now)

	a := resp.Analysis
	assert.Equal(t, 730, a.WeeklyTxs)
	assert.Equal(t, "2025-08-17", a.PeakDayDate)
	assert.Equal(t, 130, a.PeakDayTxs)
	// 730 against the prior week's 350.
	assert.InDelta(t, 108.57, a.WeeklyGrowthRate, 0.01)
}

func TestBuildStats_EmptySnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	resp := BuildStats(model.NewSnapshot(), now)

	assert.Zero(t, resp.TotalTransactions)
	assert.Empty(t, resp.Analysis.LatestCompleteDate)
	assert.Zero(t, resp.Analysis.WeeklyTxs)
	assert.Empty(t, resp.Analysis.HourlyData)
	require.NotNil(t, resp.Analysis.DailyData)
}

func nonZeroHours(hourly map[int]int) map[int]int {
	out := make(map[int]int)
	for h, v := range hourly {
		if v != 0 {
			out[h] = v
		}
	}
	return out
}
