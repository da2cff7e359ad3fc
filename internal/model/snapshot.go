package model

import (
	"maps"
	"time"
)

// Snapshot is the single persisted aggregate owned by the engine. It is
// loaded once at process start, mutated in memory during an update cycle and
// atomically persisted afterwards.
type Snapshot struct {
	DailyTotals       map[string]int           `json:"dailyTotals"`
	MonthlyTotals     map[string]int           `json:"monthlyTotals"`
	RecentHourly      map[string]HourlyBuckets `json:"recentHourly"`
	LastUpdate        time.Time                `json:"lastUpdate"`
	LastBlockNumber   uint64                   `json:"lastBlockNumber"`
	TotalTransactions int                      `json:"totalTransactions"`
	TotalDaysActive   int                      `json:"totalDaysActive"`
}

// NewSnapshot returns an empty snapshot with initialized maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		DailyTotals:   make(map[string]int),
		MonthlyTotals: make(map[string]int),
		RecentHourly:  make(map[string]HourlyBuckets),
	}
}

// Clone deep-copies the snapshot. Update cycles mutate a clone so readers
// never observe a partially merged aggregate.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.DailyTotals = maps.Clone(s.DailyTotals)
	c.MonthlyTotals = maps.Clone(s.MonthlyTotals)
	c.RecentHourly = maps.Clone(s.RecentHourly)
	return &c
}

// Normalize initializes nil maps after decoding foreign snapshot data.
func (s *Snapshot) Normalize() {
	if s.DailyTotals == nil {
		s.DailyTotals = make(map[string]int)
	}
	if s.MonthlyTotals == nil {
		s.MonthlyTotals = make(map[string]int)
	}
	if s.RecentHourly == nil {
		s.RecentHourly = make(map[string]HourlyBuckets)
	}
}
