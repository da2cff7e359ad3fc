// Package transport exposes the engine's HTTP surface: the stats data
// contract, the force-update trigger and health endpoints.
package transport

import (
	"time"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/analytics"
	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
)

// StatsResponse is the outbound data contract consumed by the presentation
// layer. It is always derived from one fully-consistent snapshot.
type StatsResponse struct {
	TotalTransactions int      `json:"totalTransactions"`
	Analysis          Analysis `json:"analysis"`
	LastUpdate        string   `json:"lastUpdate"`
}

// Analysis carries the derived rollups for the reporting layer.
type Analysis struct {
	LatestCompleteDate          string                 `json:"latestCompleteDate"`
	LatestCompleteDateFormatted string                 `json:"latestCompleteDateFormatted"`
	LatestDayTxs                int                    `json:"latestDayTxs"`
	LatestDayLabel              string                 `json:"latestDayLabel"`
	WeeklyTxs                   int                    `json:"weeklyTxs"`
	WeeklyPeriod                string                 `json:"weeklyPeriod"`
	WeeklyComplete              bool                   `json:"weeklyComplete"`
	WeeklyGrowthRate            float64                `json:"weeklyGrowthRate"`
	PeakDayDate                 string                 `json:"peakDayDate"`
	PeakDayTxs                  int                    `json:"peakDayTxs"`
	MonthlyTxs                  int                    `json:"monthlyTxs"`
	MonthlyPeriod               string                 `json:"monthlyPeriod"`
	HourlyData                  map[int]int            `json:"hourlyData"`
	DailyData                   map[string]int         `json:"dailyData"`
	MonthlyData                 map[string]int         `json:"monthlyData"`
	Patterns                    analytics.PatternStats `json:"patterns"`
}

// BuildStats derives the full outbound payload from one snapshot.
func BuildStats(s *model.Snapshot, now time.Time) StatsResponse {
	now = now.UTC()

	resp := StatsResponse{
		TotalTransactions: s.TotalTransactions,
		LastUpdate:        s.LastUpdate.UTC().Format(time.RFC3339),
		Analysis: Analysis{
			DailyData:   s.DailyTotals,
			MonthlyData: s.MonthlyTotals,
			HourlyData:  make(map[int]int, model.HoursPerDay),
			Patterns:    analytics.Patterns(s, now),
		},
	}

	anchorKey, ok := analytics.LatestAnchor(s, now)
	if !ok {
		return resp
	}

	resp.Analysis.LatestCompleteDate = anchorKey
	resp.Analysis.LatestDayTxs = s.DailyTotals[anchorKey]
	if anchor, err := model.ParseDateKey(anchorKey); err == nil {
		resp.Analysis.LatestCompleteDateFormatted = anchor.Format("Jan 2, 2006")
		resp.Analysis.LatestDayLabel = anchor.Format("Jan 2")
		resp.Analysis.MonthlyPeriod = anchor.Format("January 2006")
	}

	hourly := s.RecentHourly[anchorKey]
	for h, v := range hourly {
		resp.Analysis.HourlyData[h] = v
	}

	if week, err := analytics.Weekly(s, anchorKey, now); err == nil {
		resp.Analysis.WeeklyTxs = analytics.WindowTotal(s, week.Dates[:])
		resp.Analysis.WeeklyComplete = week.OK
		resp.Analysis.WeeklyPeriod = periodLabel(week.Dates[0], week.Dates[6])

		if peakKey, peakTotal := analytics.PeakDay(s, week.Dates[:]); peakKey != "" {
			resp.Analysis.PeakDayDate = peakKey
			resp.Analysis.PeakDayTxs = peakTotal
		}

		// Growth compares the anchor week against the 7 days before it.
		previous := previousWindow(week.Dates[0])
		resp.Analysis.WeeklyGrowthRate = analytics.GrowthRate(
			float64(resp.Analysis.WeeklyTxs),
			float64(analytics.WindowTotal(s, previous)),
		)
	}

	month := analytics.MonthToDate(s, anchorKey, now)
	resp.Analysis.MonthlyTxs = month.Sum

	return resp
}

// previousWindow returns the 7 date keys immediately before the given
// window start.
func previousWindow(startKey string) []string {
	start, err := model.ParseDateKey(startKey)
	if err != nil {
		return nil
	}
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = model.DateKey(start.AddDate(0, 0, i-7))
	}
	return dates
}

func periodLabel(fromKey, toKey string) string {
	from, err := model.ParseDateKey(fromKey)
	if err != nil {
		return ""
	}
	to, err := model.ParseDateKey(toKey)
	if err != nil {
		return ""
	}
	return from.Format("Jan 2") + " - " + to.Format("Jan 2, 2006")
}
