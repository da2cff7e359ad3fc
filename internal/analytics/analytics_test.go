package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

func hourlySummingTo(total int) model.HourlyBuckets {
	var b model.HourlyBuckets
	per := total / model.HoursPerDay
	for h := 0; h < model.HoursPerDay; h++ {
		b[h] = per
	}
	b[0] += total - per*model.HoursPerDay
	return b
}

// scenarioSnapshot has 2025-08-10 complete (hourly sums to the 500 total)
// and 2025-08-11 partial (hourly sums to 200 against a declared 300).
func scenarioSnapshot() *model.Snapshot {
	s := model.NewSnapshot()
	s.DailyTotals["2025-08-10"] = 500
	s.DailyTotals["2025-08-11"] = 300
	s.MonthlyTotals["2025-08"] = 800
	s.RecentHourly["2025-08-10"] = hourlySummingTo(500)
	s.RecentHourly["2025-08-11"] = hourlySummingTo(200)
	s.TotalTransactions = 800
	return s
}

func TestScenario_CompletePartialMonthToDate(t *testing.T) {
	t.Parallel()

	s := scenarioSnapshot()
	now := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
	todayKey := model.DateKey(now)

	assert.Equal(t, model.StatusComplete, s.DayStatusOf("2025-08-10", todayKey))
	assert.Equal(t, model.StatusPartial, s.DayStatusOf("2025-08-11", todayKey))

	anchor, ok := LatestAnchor(s, now)
	require.True(t, ok)
	assert.Equal(t, "2025-08-11", anchor, "freshness beats completeness for the anchor")

	month := MonthToDate(s, anchor, now)
	assert.Equal(t, 500, month.Sum)
	assert.Equal(t, 1, month.CompleteDayCount)
	assert.InDelta(t, 500.0, month.AveragePerCompleteDay, 0.001)
}

func TestLatestAnchor_BoundedLookback(t *testing.T) {
	t.Parallel()

	s := model.NewSnapshot()
	s.DailyTotals["2025-07-01"] = 100

	now := time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC)
	_, ok := LatestAnchor(s, now)
	assert.False(t, ok, "data older than the lookback window never anchors")

	s.DailyTotals["2025-08-01"] = 40
	anchor, ok := LatestAnchor(s, now)
	require.True(t, ok)
	assert.Equal(t, "2025-08-01", anchor)
}

func TestWeekly_ValidatesAllSevenDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	s := model.NewSnapshot()
	// Seven rotated (hourly-absent, hence complete) days ending 2025-08-12.
	for d := 6; d <= 12; d++ {
		s.DailyTotals[time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC).Format(model.DateKeyLayout)] = 10
	}

	week, err := Weekly(s, "2025-08-12", now)
	require.NoError(t, err)
	assert.True(t, week.OK)
	assert.Equal(t, "2025-08-06", week.Dates[0])
	assert.Equal(t, "2025-08-12", week.Dates[6])

	// Removing one day breaks validation but the date list stays intact.
	delete(s.DailyTotals, "2025-08-09")
	week, err = Weekly(s, "2025-08-12", now)
	require.NoError(t, err)
	assert.False(t, week.OK)
	assert.Equal(t, "2025-08-09", week.Dates[3])
}

func TestPeakDay_EarliestWinsTies(t *testing.T) {
	t.Parallel()

	s := model.NewSnapshot()
	s.DailyTotals["2025-08-10"] = 70
	s.DailyTotals["2025-08-11"] = 70
	s.DailyTotals["2025-08-12"] = 30

	day, total := PeakDay(s, []string{"2025-08-12", "2025-08-11", "2025-08-10"})
	assert.Equal(t, "2025-08-10", day)
	assert.Equal(t, 70, total)
}

func TestGrowthRate(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 50.0, GrowthRate(150, 100), 0.001)
	assert.InDelta(t, -25.0, GrowthRate(75, 100), 0.001)
	assert.Zero(t, GrowthRate(100, 0), "previous 0 never divides")
	assert.Zero(t, GrowthRate(0, 0))
}

func TestMissingDays_ExcludesOpenToday(t *testing.T) {
	t.Parallel()

	s := model.NewSnapshot()
	s.DailyTotals["2025-08-08"] = 10
	s.DailyTotals["2025-08-09"] = 10

	now := time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC)
	got := MissingDays(s, now)
	assert.Equal(t, []string{"2025-08-10", "2025-08-11", "2025-08-12"}, got)
}

func TestMissingDays_EmptySnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC)
	assert.Nil(t, MissingDays(model.NewSnapshot(), now))
}

func TestMissingDays_NoGap(t *testing.T) {
	t.Parallel()

	s := model.NewSnapshot()
	s.DailyTotals["2025-08-12"] = 10

	now := time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC)
	assert.Empty(t, MissingDays(s, now))
}
