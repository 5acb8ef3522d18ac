package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/core/sleep"
	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/ports/secondary"
)

// StatsServiceImpl implements the StatsService interface.
type StatsServiceImpl struct {
	sleeps   secondary.SleepRepository
	wakings  secondary.WakingRepository
	feedings secondary.FeedingRepository
	bottles  secondary.BottleRepository
	diapers  secondary.DiaperRepository
	temps    secondary.TemperatureRepository
	parser   *civil.Parser
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewStatsService creates a new StatsService with injected dependencies.
func NewStatsService(
	sleeps secondary.SleepRepository,
	wakings secondary.WakingRepository,
	feedings secondary.FeedingRepository,
	bottles secondary.BottleRepository,
	diapers secondary.DiaperRepository,
	temps secondary.TemperatureRepository,
	parser *civil.Parser,
	log *zap.SugaredLogger,
	now func() time.Time,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		sleeps:   sleeps,
		wakings:  wakings,
		feedings: feedings,
		bottles:  bottles,
		diapers:  diapers,
		temps:    temps,
		parser:   parser,
		log:      log,
		now:      now,
	}
}

// validateRange parses an inclusive civil-date range and fails fast on
// inverted or malformed bounds.
func (s *StatsServiceImpl) validateRange(start, end string) (time.Time, time.Time, error) {
	from, err := s.parser.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	to, err := s.parser.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, end, start)
	}
	return from, to, nil
}

// DailySleepHours computes total sleep for one calendar day.
func (s *StatsServiceImpl) DailySleepHours(ctx context.Context, date string) (float64, error) {
	now := s.now()
	day := civil.DayOf(now)
	if date != "" {
		parsed, err := s.parser.ParseDate(date)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		day = parsed
	}

	intervals, wakings, err := s.loadSleepWindow(ctx, day, day)
	if err != nil {
		return 0, err
	}
	return sleep.DailySleepHours(intervals, wakings, day, now), nil
}

// SleepStatistics aggregates sleep over [start, end].
func (s *StatsServiceImpl) SleepStatistics(ctx context.Context, start, end string) (*primary.SleepStats, error) {
	from, to, err := s.validateRange(start, end)
	if err != nil {
		return nil, err
	}

	intervals, wakings, err := s.loadSleepWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := sleep.Statistics(intervals, wakings, from, to, s.now())
	return &primary.SleepStats{
		DailySleep:    stats.DailySleep,
		TotalSleep:    stats.TotalSleep,
		AvgDailySleep: stats.AvgDailySleep,
		NapHours:      stats.NapHours,
		NightHours:    stats.NightHours,
		NapPct:        stats.NapPct,
		NightPct:      stats.NightPct,
		WakeTimes:     stats.WakeTimes,
		SleepTimes:    stats.SleepTimes,
		AvgWakeTime:   stats.AvgWakeTime,
		AvgSleepTime:  stats.AvgSleepTime,
		TotalDays:     stats.TotalDays,
	}, nil
}

// DiaperStatistics aggregates diaper changes over [start, end].
func (s *StatsServiceImpl) DiaperStatistics(ctx context.Context, start, end string) (*primary.DiaperStats, error) {
	from, to, err := s.validateRange(start, end)
	if err != nil {
		return nil, err
	}

	lo, hi := windowBounds(from, to)
	records, err := s.diapers.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	stats := &primary.DiaperStats{Days: daysInRange(from, to)}
	for _, rec := range records {
		stats.Total++
		switch rec.Type {
		case "wet":
			stats.Wet++
		case "solid":
			stats.Solid++
		case "both":
			stats.Both++
		}
	}
	stats.AvgPerDay = round1(float64(stats.Total) / float64(stats.Days))
	return stats, nil
}

// FeedingStatistics aggregates feedings and bottles over [start, end].
func (s *StatsServiceImpl) FeedingStatistics(ctx context.Context, start, end string) (*primary.FeedingStats, error) {
	from, to, err := s.validateRange(start, end)
	if err != nil {
		return nil, err
	}

	lo, hi := windowBounds(from, to)
	feedings, err := s.feedings.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	bottles, err := s.bottles.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	stats := &primary.FeedingStats{Days: daysInRange(from, to)}
	for _, rec := range feedings {
		stats.TotalFeedings++
		if rec.Side == "left" {
			stats.LeftCount++
		} else {
			stats.RightCount++
		}
	}
	for _, rec := range bottles {
		stats.TotalBottles++
		stats.TotalBottleMl += rec.Amount
	}
	stats.AvgFeedingsPerDay = round1(float64(stats.TotalFeedings) / float64(stats.Days))
	stats.AvgBottlesPerDay = round1(float64(stats.TotalBottles) / float64(stats.Days))
	return stats, nil
}

// TemperatureStatistics aggregates readings over [start, end].
func (s *StatsServiceImpl) TemperatureStatistics(ctx context.Context, start, end string) (*primary.TemperatureStats, error) {
	from, to, err := s.validateRange(start, end)
	if err != nil {
		return nil, err
	}

	lo, hi := windowBounds(from, to)
	records, err := s.temps.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	stats := &primary.TemperatureStats{DailyAvg: make(map[string]float64)}

	dailySum := make(map[string]float64)
	dailyCount := make(map[string]int)
	var sum float64
	for _, rec := range records {
		t, ok := s.parser.Parse(rec.Timestamp)
		if !ok {
			s.log.Warnw("skipping temperature row with malformed timestamp", "id", rec.ID, "timestamp", rec.Timestamp)
			continue
		}

		day := civil.DateString(t)
		dailySum[day] += rec.Value
		dailyCount[day]++

		stats.Count++
		sum += rec.Value
		if stats.Count == 1 || rec.Value < stats.Min {
			stats.Min = rec.Value
		}
		if rec.Value > stats.Max {
			stats.Max = rec.Value
		}
		stats.Readings = append(stats.Readings, primary.TemperatureReading{
			Date:      day,
			Timestamp: rec.Timestamp,
			Value:     rec.Value,
		})
	}

	if stats.Count > 0 {
		stats.Avg = round1(sum / float64(stats.Count))
		stats.Min = round1(stats.Min)
		stats.Max = round1(stats.Max)
	}
	for day, total := range dailySum {
		stats.DailyAvg[day] = round1(total / float64(dailyCount[day]))
	}
	return stats, nil
}

// loadSleepWindow fetches and parses sleep intervals and wakings overlapping
// the inclusive day range [from, to].
func (s *StatsServiceImpl) loadSleepWindow(ctx context.Context, from, to time.Time) ([]sleep.Interval, []sleep.Waking, error) {
	lo, hi := windowBounds(from, to)

	sleepRecords, err := s.sleeps.ListOverlapping(ctx, lo, hi)
	if err != nil {
		return nil, nil, err
	}
	wakingRecords, err := s.wakings.ListOverlapping(ctx, lo, hi)
	if err != nil {
		return nil, nil, err
	}

	return sleepIntervals(s.parser, s.log, sleepRecords),
		wakingIntervals(s.parser, s.log, wakingRecords), nil
}

// daysInRange counts calendar days in the inclusive range. Rounding absorbs
// the 23h and 25h days around DST transitions.
func daysInRange(from, to time.Time) int {
	return int(math.Round(civil.DayOf(to).Sub(civil.DayOf(from)).Hours()/24)) + 1
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
