// Package sleep contains the pure interval math behind the sleep statistics:
// per-day totals, range aggregates, and night-waking subtraction. Functions
// here never touch the store; callers hand in already-parsed records.
package sleep

import (
	"math"
	"time"

	"github.com/example/cradle/internal/core/civil"
)

// Kind distinguishes daytime naps from the primary overnight interval.
type Kind string

const (
	KindNap   Kind = "nap"
	KindNight Kind = "night"
)

// Interval is one sleep record. A zero End means the sleep is in progress.
type Interval struct {
	ID    int64
	Kind  Kind
	Start time.Time
	End   time.Time
}

// Open reports whether the interval is still in progress.
func (iv Interval) Open() bool {
	return iv.End.IsZero()
}

// Waking is a wakeful stretch inside a night sleep. A zero End means it is
// still in progress.
type Waking struct {
	ID    int64
	Start time.Time
	End   time.Time
}

// WakingTotal sums the night wakings fully contained in the given night-sleep
// bounds and returns hours rounded to two decimals. An open waking gets a
// provisional end of now, capped at the parent end. Closed rows not fully
// contained are skipped, not clipped.
func WakingTotal(wakings []Waking, start, end, now time.Time) float64 {
	var total time.Duration
	for _, w := range wakings {
		effEnd := w.End
		if effEnd.IsZero() {
			effEnd = now
			if effEnd.After(end) {
				effEnd = end
			}
		}
		if w.Start.Before(start) || effEnd.After(end) || !w.Start.Before(effEnd) {
			continue
		}
		total += effEnd.Sub(w.Start)
	}
	return round2(total.Hours())
}

// wakingOverlap sums waking time clipped to the given parent bounds. Used by
// the daily totals and range statistics, where partially overlapping rows
// still reduce the net total.
func wakingOverlap(wakings []Waking, start, end, now time.Time) time.Duration {
	var total time.Duration
	for _, w := range wakings {
		ws := w.Start
		we := w.End
		if we.IsZero() {
			we = now
		}
		if ws.Before(start) {
			ws = start
		}
		if we.After(end) {
			we = end
		}
		if ws.Before(we) {
			total += we.Sub(ws)
		}
	}
	return total
}

// DailySleepHours computes total sleep for one calendar day, in hours rounded
// to one decimal.
//
// An interval belongs to the day it ends on; this deliberately attributes a
// midnight-crossing interval entirely to its end day rather than splitting it.
// An in-progress interval only counts when the requested day is today, with
// now as its provisional end. Night intervals are net of waking time clipped
// to their bounds.
func DailySleepHours(intervals []Interval, wakings []Waking, day, now time.Time) float64 {
	endOfDay := civil.DayOf(day).AddDate(0, 0, 1)

	var total time.Duration
	seen := make(map[int64]bool)
	for _, iv := range intervals {
		if seen[iv.ID] {
			continue
		}
		seen[iv.ID] = true

		if iv.Open() {
			if !civil.SameDay(day, now) {
				continue
			}
			effEnd := now
			if effEnd.After(endOfDay) {
				effEnd = endOfDay
			}
			if !effEnd.After(iv.Start) {
				continue
			}
			dur := effEnd.Sub(iv.Start)
			if iv.Kind == KindNight {
				dur -= wakingOverlap(wakings, iv.Start, effEnd, now)
			}
			total += dur
			continue
		}

		if !civil.SameDay(iv.End, day) {
			continue
		}
		dur := iv.End.Sub(iv.Start)
		if dur <= 0 {
			continue
		}
		if iv.Kind == KindNight {
			dur -= wakingOverlap(wakings, iv.Start, iv.End, now)
		}
		total += dur
	}

	if total <= 0 {
		return 0.0
	}
	return round1(total.Hours())
}

// NightNetHours returns a completed night interval's duration in hours, net
// of the fully contained waking total. Returns 0 for open or inverted
// intervals.
func NightNetHours(iv Interval, wakings []Waking, now time.Time) float64 {
	if iv.Open() || !iv.End.After(iv.Start) {
		return 0
	}
	net := iv.End.Sub(iv.Start).Hours() - WakingTotal(wakings, iv.Start, iv.End, now)
	if net <= 0 {
		return 0
	}
	return net
}

// Stats is the aggregate over a date range.
type Stats struct {
	DailySleep    map[string]float64 // date -> hours
	TotalSleep    float64
	AvgDailySleep float64
	NapHours      float64
	NightHours    float64
	NapPct        float64
	NightPct      float64
	WakeTimes     []float64 // clock hours (hour + minute/60) of night-sleep ends
	SleepTimes    []float64 // clock hours of night-sleep starts
	AvgWakeTime   float64
	AvgSleepTime  float64
	TotalDays     int
}

// Statistics aggregates completed intervals over the inclusive civil-date
// range [rangeStart, rangeEnd]. Callers pass both source sets (intervals
// starting inside the range and intervals crossing into it); duplicates are
// dropped by id. Every interval is attributed to the day it ends on. Wake and
// sleep clock times are collected for night sleep only.
func Statistics(intervals []Interval, wakings []Waking, rangeStart, rangeEnd, now time.Time) Stats {
	rangeStart = civil.DayOf(rangeStart)
	rangeEnd = civil.DayOf(rangeEnd)

	daily := make(map[string]float64)
	var napHours, nightHours float64
	var wakeTimes, sleepTimes []float64

	seen := make(map[int64]bool)
	for _, iv := range intervals {
		if iv.Open() || seen[iv.ID] {
			continue
		}
		seen[iv.ID] = true
		if !iv.End.After(iv.Start) {
			continue
		}

		dur := iv.End.Sub(iv.Start)
		if iv.Kind == KindNight {
			dur -= wakingOverlap(wakings, iv.Start, iv.End, now)
		}
		hours := dur.Hours()
		if hours <= 0 {
			continue
		}

		endDay := civil.DayOf(iv.End)
		if !endDay.Before(rangeStart) && !endDay.After(rangeEnd) {
			daily[civil.DateString(iv.End)] += hours
			if iv.Kind == KindNap {
				napHours += hours
			} else {
				nightHours += hours
			}
		}

		if iv.Kind == KindNight {
			if !endDay.Before(rangeStart) && !endDay.After(rangeEnd) {
				wakeTimes = append(wakeTimes, float64(iv.End.Hour())+float64(iv.End.Minute())/60.0)
			}
			startDay := civil.DayOf(iv.Start)
			if !startDay.Before(rangeStart) && !startDay.After(rangeEnd) {
				sleepTimes = append(sleepTimes, float64(iv.Start.Hour())+float64(iv.Start.Minute())/60.0)
			}
		}
	}

	var totalSleep float64
	for day, hours := range daily {
		daily[day] = round1(hours)
		totalSleep += hours
	}
	totalDays := len(daily)

	stats := Stats{
		DailySleep: daily,
		TotalSleep: round1(totalSleep),
		NapHours:   round1(napHours),
		NightHours: round1(nightHours),
		WakeTimes:  wakeTimes,
		SleepTimes: sleepTimes,
		TotalDays:  totalDays,
	}
	if totalDays > 0 {
		stats.AvgDailySleep = round1(totalSleep / float64(totalDays))
	}
	if totalSleep > 0 {
		stats.NapPct = round1(napHours / totalSleep * 100)
		stats.NightPct = round1(nightHours / totalSleep * 100)
	}
	if len(wakeTimes) > 0 {
		stats.AvgWakeTime = round1(mean(wakeTimes))
	}
	if len(sleepTimes) > 0 {
		stats.AvgSleepTime = round1(mean(sleepTimes))
	}
	return stats
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
