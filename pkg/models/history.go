package models

import "time"

// TransferSnapshot is one sampled point of aggregate transfer rates,
// in bytes per second.
type TransferSnapshot struct {
	Timestamp time.Time `json:"-"`
	Upload    int64     `json:"upload"`
	Download  int64     `json:"download"`
}

// TransferHistory is a series of snapshots flattened into parallel
// arrays, oldest first, the shape the web UI charts from.
type TransferHistory struct {
	Timestamps []int64 `json:"timestamps"`
	Upload     []int64 `json:"upload"`
	Download   []int64 `json:"download"`
}

// HistoryPeriod names a lookback window for history queries.
type HistoryPeriod string

const (
	PeriodFiveMin   HistoryPeriod = "fiveMin"
	PeriodThirtyMin HistoryPeriod = "thirtyMin"
	PeriodHour      HistoryPeriod = "hour"
	PeriodDay       HistoryPeriod = "day"
	PeriodWeek      HistoryPeriod = "week"
	PeriodMonth     HistoryPeriod = "month"
)

// Span returns the lookback duration for the period, or false if the
// period name is unknown.
func (p HistoryPeriod) Span() (time.Duration, bool) {
	switch p {
	case PeriodFiveMin:
		return 5 * time.Minute, true
	case PeriodThirtyMin:
		return 30 * time.Minute, true
	case PeriodHour:
		return time.Hour, true
	case PeriodDay:
		return 24 * time.Hour, true
	case PeriodWeek:
		return 7 * 24 * time.Hour, true
	case PeriodMonth:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}
