package primary

import "context"

// StatsService defines the primary port for statistics over a date range.
// Ranges are inclusive civil dates ("2006-01-02"); an end before the start is
// rejected with ErrInvalidRange rather than returning misleading zeros.
type StatsService interface {
	// DailySleepHours computes total sleep for one calendar day.
	DailySleepHours(ctx context.Context, date string) (float64, error)

	// SleepStatistics aggregates sleep over [start, end].
	SleepStatistics(ctx context.Context, start, end string) (*SleepStats, error)

	// DiaperStatistics aggregates diaper changes over [start, end].
	DiaperStatistics(ctx context.Context, start, end string) (*DiaperStats, error)

	// FeedingStatistics aggregates feedings and bottles over [start, end].
	FeedingStatistics(ctx context.Context, start, end string) (*FeedingStats, error)

	// TemperatureStatistics aggregates readings over [start, end].
	TemperatureStatistics(ctx context.Context, start, end string) (*TemperatureStats, error)
}

// SleepStats is the sleep aggregate over a date range.
type SleepStats struct {
	DailySleep    map[string]float64 `json:"daily_sleep"`
	TotalSleep    float64            `json:"total_sleep"`
	AvgDailySleep float64            `json:"avg_daily_sleep"`
	NapHours      float64            `json:"nap_hours"`
	NightHours    float64            `json:"night_hours"`
	NapPct        float64            `json:"nap_pct"`
	NightPct      float64            `json:"night_pct"`
	WakeTimes     []float64          `json:"wake_times"`
	SleepTimes    []float64          `json:"sleep_times"`
	AvgWakeTime   float64            `json:"avg_wake_time"`
	AvgSleepTime  float64            `json:"avg_sleep_time"`
	TotalDays     int                `json:"total_days"`
}

// DiaperStats is the diaper aggregate over a date range.
type DiaperStats struct {
	Total     int     `json:"total"`
	Wet       int     `json:"wet"`
	Solid     int     `json:"solid"`
	Both      int     `json:"both"`
	Days      int     `json:"days"`
	AvgPerDay float64 `json:"avg_per_day"`
}

// FeedingStats is the feeding aggregate over a date range.
type FeedingStats struct {
	TotalFeedings     int     `json:"total_feedings"`
	LeftCount         int     `json:"left_count"`
	RightCount        int     `json:"right_count"`
	TotalBottles      int     `json:"total_bottles"`
	TotalBottleMl     int     `json:"total_bottle_ml"`
	Days              int     `json:"days"`
	AvgFeedingsPerDay float64 `json:"avg_feedings_per_day"`
	AvgBottlesPerDay  float64 `json:"avg_bottles_per_day"`
}

// TemperatureReading is one raw reading for charting.
type TemperatureReading struct {
	Date      string  `json:"date"`
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// TemperatureStats is the temperature aggregate over a date range.
type TemperatureStats struct {
	Count    int                  `json:"count"`
	Min      float64              `json:"min"`
	Max      float64              `json:"max"`
	Avg      float64              `json:"avg"`
	DailyAvg map[string]float64   `json:"daily_avg"`
	Readings []TemperatureReading `json:"readings"`
}
