package sleep

import (
	"testing"
	"time"
)

var loc = func() *time.Location {
	l, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
	return l
}()

func at(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func TestDailySleepHours_NightNetOfWaking(t *testing.T) {
	night := Interval{
		ID:    1,
		Kind:  KindNight,
		Start: at(t, 2024, 3, 9, 21, 0),
		End:   at(t, 2024, 3, 10, 7, 0),
	}
	waking := Waking{
		ID:    1,
		Start: at(t, 2024, 3, 10, 2, 0),
		End:   at(t, 2024, 3, 10, 2, 20),
	}
	now := at(t, 2024, 3, 10, 12, 0)
	day := at(t, 2024, 3, 10, 0, 0)

	// Raw span 10h minus 20min waking = 9h40m -> 9.7 after rounding.
	got := DailySleepHours([]Interval{night}, []Waking{waking}, day, now)
	if got != 9.7 {
		t.Errorf("expected 9.7 hours, got %v", got)
	}

	// The interval ends on the 10th, so the 9th gets nothing.
	prev := at(t, 2024, 3, 9, 0, 0)
	if got := DailySleepHours([]Interval{night}, []Waking{waking}, prev, now); got != 0.0 {
		t.Errorf("expected 0.0 for start day, got %v", got)
	}
}

func TestDailySleepHours_MidnightCrossingNapGoesToEndDay(t *testing.T) {
	nap := Interval{
		ID:    1,
		Kind:  KindNap,
		Start: at(t, 2024, 3, 9, 23, 50),
		End:   at(t, 2024, 3, 10, 0, 20),
	}
	now := at(t, 2024, 3, 10, 12, 0)

	if got := DailySleepHours([]Interval{nap}, nil, at(t, 2024, 3, 10, 0, 0), now); got != 0.5 {
		t.Errorf("expected the whole 0.5h on the end day, got %v", got)
	}
	if got := DailySleepHours([]Interval{nap}, nil, at(t, 2024, 3, 9, 0, 0), now); got != 0.0 {
		t.Errorf("expected nothing on the start day, got %v", got)
	}
}

func TestDailySleepHours_NoRows(t *testing.T) {
	now := at(t, 2024, 3, 10, 12, 0)
	if got := DailySleepHours(nil, nil, at(t, 2024, 3, 10, 0, 0), now); got != 0.0 {
		t.Errorf("expected exactly 0.0, got %v", got)
	}
}

func TestDailySleepHours_InProgressOnlyToday(t *testing.T) {
	open := Interval{
		ID:    1,
		Kind:  KindNap,
		Start: at(t, 2024, 3, 10, 13, 0),
	}
	now := at(t, 2024, 3, 10, 14, 30)

	if got := DailySleepHours([]Interval{open}, nil, at(t, 2024, 3, 10, 0, 0), now); got != 1.5 {
		t.Errorf("expected in-progress nap clipped to now (1.5h), got %v", got)
	}

	// Same rows asked for a past day: the open interval must not count.
	if got := DailySleepHours([]Interval{open}, nil, at(t, 2024, 3, 9, 0, 0), now); got != 0.0 {
		t.Errorf("expected 0.0 for a past day, got %v", got)
	}
}

func TestDailySleepHours_DuplicateRowsCountedOnce(t *testing.T) {
	nap := Interval{
		ID:    7,
		Kind:  KindNap,
		Start: at(t, 2024, 3, 10, 13, 0),
		End:   at(t, 2024, 3, 10, 14, 0),
	}
	now := at(t, 2024, 3, 10, 18, 0)

	got := DailySleepHours([]Interval{nap, nap}, nil, at(t, 2024, 3, 10, 0, 0), now)
	if got != 1.0 {
		t.Errorf("expected duplicate row to count once (1.0h), got %v", got)
	}
}

func TestWakingTotal_FullContainmentOnly(t *testing.T) {
	start := at(t, 2024, 3, 9, 21, 0)
	end := at(t, 2024, 3, 10, 7, 0)
	now := at(t, 2024, 3, 10, 12, 0)

	wakings := []Waking{
		// Fully contained: 30 min.
		{ID: 1, Start: at(t, 2024, 3, 10, 1, 0), End: at(t, 2024, 3, 10, 1, 30)},
		// Starts before the night: skipped entirely, not clipped.
		{ID: 2, Start: at(t, 2024, 3, 9, 20, 30), End: at(t, 2024, 3, 9, 21, 30)},
		// Fully contained: 15 min.
		{ID: 3, Start: at(t, 2024, 3, 10, 4, 0), End: at(t, 2024, 3, 10, 4, 15)},
		// Ends after the night: skipped entirely, not clipped.
		{ID: 4, Start: at(t, 2024, 3, 10, 6, 30), End: at(t, 2024, 3, 10, 7, 30)},
	}

	if got := WakingTotal(wakings, start, end, now); got != 0.75 {
		t.Errorf("expected 0.75 hours, got %v", got)
	}
}

func TestNightNetHours_SubtractsContainedWakingsOnly(t *testing.T) {
	night := Interval{
		ID:    1,
		Kind:  KindNight,
		Start: at(t, 2024, 3, 9, 21, 0),
		End:   at(t, 2024, 3, 10, 7, 0),
	}
	now := at(t, 2024, 3, 10, 12, 0)

	wakings := []Waking{
		// Fully contained: subtracted.
		{ID: 1, Start: at(t, 2024, 3, 10, 2, 0), End: at(t, 2024, 3, 10, 3, 0)},
		// Straddles the night end: excluded from the net total.
		{ID: 2, Start: at(t, 2024, 3, 10, 6, 30), End: at(t, 2024, 3, 10, 7, 30)},
	}

	if got := NightNetHours(night, wakings, now); got != 9.0 {
		t.Errorf("expected 9.0 net hours, got %v", got)
	}
}

func TestWakingTotal_OpenWakingCappedAtParentEnd(t *testing.T) {
	start := at(t, 2024, 3, 9, 21, 0)
	end := at(t, 2024, 3, 10, 7, 0)

	// Waking never closed; now is past the night end, so the parent end caps it.
	wakings := []Waking{{ID: 1, Start: at(t, 2024, 3, 10, 6, 30)}}
	now := at(t, 2024, 3, 10, 9, 0)

	if got := WakingTotal(wakings, start, end, now); got != 0.5 {
		t.Errorf("expected 0.5 hours, got %v", got)
	}
}

func TestStatistics_SingleDayMatchesDaily(t *testing.T) {
	day := at(t, 2024, 3, 10, 0, 0)
	now := at(t, 2024, 3, 10, 23, 0)
	intervals := []Interval{
		{ID: 1, Kind: KindNap, Start: at(t, 2024, 3, 10, 9, 0), End: at(t, 2024, 3, 10, 10, 30)},
		{ID: 2, Kind: KindNap, Start: at(t, 2024, 3, 10, 13, 0), End: at(t, 2024, 3, 10, 14, 0)},
	}

	stats := Statistics(intervals, nil, day, day, now)
	daily := DailySleepHours(intervals, nil, day, now)

	if stats.TotalSleep != daily {
		t.Errorf("statistics total %v != daily %v", stats.TotalSleep, daily)
	}
	if stats.TotalDays != 1 {
		t.Errorf("expected 1 day, got %d", stats.TotalDays)
	}
	if stats.NapHours != 2.5 || stats.NightHours != 0 {
		t.Errorf("unexpected split: nap %v night %v", stats.NapHours, stats.NightHours)
	}
	if stats.NapPct != 100.0 {
		t.Errorf("expected nap percentage 100, got %v", stats.NapPct)
	}
}

func TestStatistics_CrossingNightAttributedToEndDay(t *testing.T) {
	// Night sleep crossing into the range: starts before rangeStart, ends inside.
	rangeStart := at(t, 2024, 3, 10, 0, 0)
	rangeEnd := at(t, 2024, 3, 11, 0, 0)
	now := at(t, 2024, 3, 11, 12, 0)

	intervals := []Interval{
		{ID: 1, Kind: KindNight, Start: at(t, 2024, 3, 9, 21, 0), End: at(t, 2024, 3, 10, 7, 0)},
	}
	wakings := []Waking{
		{ID: 1, Start: at(t, 2024, 3, 10, 2, 0), End: at(t, 2024, 3, 10, 2, 20)},
	}

	stats := Statistics(intervals, wakings, rangeStart, rangeEnd, now)

	if got := stats.DailySleep["2024-03-10"]; got != 9.7 {
		t.Errorf("expected 9.7h on the end day, got %v", got)
	}
	if _, ok := stats.DailySleep["2024-03-09"]; ok {
		t.Error("start day outside the range must not appear")
	}
	if stats.NightHours != 9.7 {
		t.Errorf("expected night hours 9.7, got %v", stats.NightHours)
	}
	// Wake time recorded (end in range); sleep time not (start outside range).
	if len(stats.WakeTimes) != 1 || len(stats.SleepTimes) != 0 {
		t.Errorf("unexpected wake/sleep times: %v / %v", stats.WakeTimes, stats.SleepTimes)
	}
	if stats.WakeTimes[0] != 7.0 {
		t.Errorf("expected wake clock time 7.0, got %v", stats.WakeTimes[0])
	}
}

func TestStatistics_WakeTimesOnlyForNightSleep(t *testing.T) {
	day := at(t, 2024, 3, 10, 0, 0)
	now := at(t, 2024, 3, 10, 23, 0)
	intervals := []Interval{
		{ID: 1, Kind: KindNap, Start: at(t, 2024, 3, 10, 9, 0), End: at(t, 2024, 3, 10, 10, 30)},
		{ID: 2, Kind: KindNight, Start: at(t, 2024, 3, 9, 20, 30), End: at(t, 2024, 3, 10, 6, 30)},
	}

	stats := Statistics(intervals, nil, day, day, now)
	if len(stats.WakeTimes) != 1 {
		t.Fatalf("expected exactly one wake time, got %v", stats.WakeTimes)
	}
	if stats.WakeTimes[0] != 6.5 {
		t.Errorf("expected 6.5, got %v", stats.WakeTimes[0])
	}
}

func TestStatistics_Empty(t *testing.T) {
	day := at(t, 2024, 3, 10, 0, 0)
	now := at(t, 2024, 3, 10, 23, 0)

	stats := Statistics(nil, nil, day, day, now)
	if stats.TotalSleep != 0 || stats.TotalDays != 0 || stats.NapPct != 0 || stats.NightPct != 0 {
		t.Errorf("expected zero-valued stats, got %+v", stats)
	}
}
