package app

import (
	"context"
	"errors"
	"testing"
)

// ============================================================================
// Test Helper
// ============================================================================

type statsEnv struct {
	sleeps   *mockSleepRepo
	wakings  *mockWakingRepo
	feedings *mockFeedingRepo
	bottles  *mockBottleRepo
	diapers  *mockDiaperRepo
	temps    *mockTemperatureRepo
}

func newTestStatsService() (*StatsServiceImpl, *statsEnv) {
	env := &statsEnv{
		sleeps:   newMockSleepRepo(),
		wakings:  newMockWakingRepo(),
		feedings: newMockFeedingRepo(),
		bottles:  newMockBottleRepo(),
		diapers:  newMockDiaperRepo(),
		temps:    newMockTemperatureRepo(),
	}
	service := NewStatsService(
		env.sleeps, env.wakings, env.feedings, env.bottles, env.diapers,
		env.temps, testParser(), testLogger(), fixedNow,
	)
	return service, env
}

// ============================================================================
// DailySleepHours Tests
// ============================================================================

func TestDailySleepHours_NetOfWakings(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	// Crossing night attributed to today, one waking inside it, one nap.
	env.sleeps.add("night", ts(-1, 20, 0), ts(0, 6, 0))
	env.wakings.add(ts(0, 2, 0), ts(0, 3, 0))
	env.sleeps.add("nap", ts(0, 10, 0), ts(0, 12, 0))

	hours, err := service.DailySleepHours(ctx, "2024-03-10")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hours != 11.0 {
		t.Errorf("expected 11.0 hours, got %v", hours)
	}
}

func TestDailySleepHours_EmptyDateMeansToday(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	env.sleeps.add("nap", ts(0, 9, 0), ts(0, 10, 30))

	hours, err := service.DailySleepHours(ctx, "")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hours != 1.5 {
		t.Errorf("expected 1.5 hours, got %v", hours)
	}
}

func TestDailySleepHours_InvalidDate(t *testing.T) {
	service, _ := newTestStatsService()
	ctx := context.Background()

	_, err := service.DailySleepHours(ctx, "10.03.2024")

	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

// ============================================================================
// SleepStatistics Tests
// ============================================================================

func TestSleepStatistics_Aggregates(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	env.sleeps.add("night", ts(-2, 20, 0), ts(-1, 6, 0))
	env.sleeps.add("nap", ts(-1, 10, 0), ts(-1, 12, 0))
	env.sleeps.add("night", ts(-1, 20, 0), ts(0, 7, 0))

	stats, err := service.SleepStatistics(ctx, "2024-03-09", "2024-03-10")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalDays != 2 {
		t.Errorf("expected 2 days, got %d", stats.TotalDays)
	}
	if stats.TotalSleep != 23.0 {
		t.Errorf("expected total 23.0, got %v", stats.TotalSleep)
	}
	if stats.NapHours != 2.0 {
		t.Errorf("expected 2.0 nap hours, got %v", stats.NapHours)
	}
	if stats.NightHours != 21.0 {
		t.Errorf("expected 21.0 night hours, got %v", stats.NightHours)
	}
	if stats.DailySleep["2024-03-09"] != 12.0 {
		t.Errorf("expected 12.0 on 03-09, got %v", stats.DailySleep["2024-03-09"])
	}
}

func TestSleepStatistics_InvalidRange(t *testing.T) {
	service, _ := newTestStatsService()
	ctx := context.Background()

	if _, err := service.SleepStatistics(ctx, "2024-03-10", "2024-03-09"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for inverted range, got %v", err)
	}
	if _, err := service.SleepStatistics(ctx, "bogus", "2024-03-10"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for malformed start, got %v", err)
	}
}

// ============================================================================
// DiaperStatistics Tests
// ============================================================================

func TestDiaperStatistics_CountsByType(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	env.diapers.add(ts(-1, 8, 0), "wet")
	env.diapers.add(ts(-1, 14, 0), "wet")
	env.diapers.add(ts(0, 9, 0), "solid")
	env.diapers.add(ts(0, 13, 0), "both")
	env.diapers.add(ts(1, 9, 0), "wet") // outside range

	stats, err := service.DiaperStatistics(ctx, "2024-03-09", "2024-03-10")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("expected 4 changes, got %d", stats.Total)
	}
	if stats.Wet != 2 || stats.Solid != 1 || stats.Both != 1 {
		t.Errorf("unexpected type counts: %+v", stats)
	}
	if stats.Days != 2 {
		t.Errorf("expected 2 days, got %d", stats.Days)
	}
	if stats.AvgPerDay != 2.0 {
		t.Errorf("expected 2.0 per day, got %v", stats.AvgPerDay)
	}
}

// ============================================================================
// FeedingStatistics Tests
// ============================================================================

func TestFeedingStatistics_Totals(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	env.feedings.add(ts(0, 6, 0), "left")
	env.feedings.add(ts(0, 10, 0), "left")
	env.feedings.add(ts(0, 13, 0), "right")
	env.bottles.add(ts(0, 8, 0), 120)
	env.bottles.add(ts(0, 12, 0), 60)

	stats, err := service.FeedingStatistics(ctx, "2024-03-10", "2024-03-10")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.TotalFeedings != 3 || stats.LeftCount != 2 || stats.RightCount != 1 {
		t.Errorf("unexpected feeding counts: %+v", stats)
	}
	if stats.TotalBottles != 2 || stats.TotalBottleMl != 180 {
		t.Errorf("unexpected bottle totals: %+v", stats)
	}
	if stats.AvgFeedingsPerDay != 3.0 {
		t.Errorf("expected 3.0 feedings per day, got %v", stats.AvgFeedingsPerDay)
	}
	if stats.AvgBottlesPerDay != 2.0 {
		t.Errorf("expected 2.0 bottles per day, got %v", stats.AvgBottlesPerDay)
	}
}

// ============================================================================
// TemperatureStatistics Tests
// ============================================================================

func TestTemperatureStatistics_Aggregates(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	env.temps.add(ts(-1, 19, 0), 38.0)
	env.temps.add(ts(0, 8, 0), 36.5)
	env.temps.add(ts(0, 20, 0), 37.5)

	stats, err := service.TemperatureStatistics(ctx, "2024-03-09", "2024-03-10")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("expected 3 readings, got %d", stats.Count)
	}
	if stats.Min != 36.5 || stats.Max != 38.0 {
		t.Errorf("expected min 36.5 max 38.0, got %v / %v", stats.Min, stats.Max)
	}
	if stats.Avg != 37.3 {
		t.Errorf("expected avg 37.3, got %v", stats.Avg)
	}
	if stats.DailyAvg["2024-03-10"] != 37.0 {
		t.Errorf("expected 37.0 daily avg, got %v", stats.DailyAvg["2024-03-10"])
	}
	if stats.DailyAvg["2024-03-09"] != 38.0 {
		t.Errorf("expected 38.0 daily avg, got %v", stats.DailyAvg["2024-03-09"])
	}
	if len(stats.Readings) != 3 {
		t.Errorf("expected 3 readings listed, got %d", len(stats.Readings))
	}
}

func TestTemperatureStatistics_SkipsMalformedTimestamps(t *testing.T) {
	service, env := newTestStatsService()
	ctx := context.Background()

	env.temps.add(ts(0, 8, 0), 37.0)
	env.temps.add("2024-03-10Tgarbage", 41.0)

	stats, err := service.TemperatureStatistics(ctx, "2024-03-10", "2024-03-10")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.Count != 1 {
		t.Errorf("expected 1 reading after skipping malformed row, got %d", stats.Count)
	}
	if stats.Max != 37.0 {
		t.Errorf("expected max 37.0, got %v", stats.Max)
	}
}
