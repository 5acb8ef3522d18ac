// Package advisor computes the next suggested nap time and bedtime from the
// baby's age band and the day's actual sleep so far. All functions are pure:
// the service layer assembles an input snapshot from the store, and "now" is
// read exactly once per request so a computation stays internally consistent.
package advisor

import (
	"math"
	"time"

	"github.com/example/cradle/internal/core/sleep"
)

// State describes what the baby is doing according to the active sleep
// interval, if any.
type State string

const (
	StateAwake         State = "awake"
	StateNapping       State = "napping"
	StateNightSleeping State = "night_sleeping"
)

// StateOf derives the advisor state from the active (open) sleep interval.
func StateOf(active *sleep.Interval) State {
	if active == nil {
		return StateAwake
	}
	if active.Kind == sleep.KindNight {
		return StateNightSleeping
	}
	return StateNapping
}

// Outcome distinguishes the three possible answers: a concrete suggestion,
// "waiting" because a sleep is in progress, and "none possible" because the
// anchor data is missing or the day's budget is already met.
type Outcome string

const (
	OutcomeSuggestion Outcome = "suggestion"
	OutcomeWaiting    Outcome = "waiting"
	OutcomeNone       Outcome = "none"
)

// NapInputs is the snapshot the next-nap computation works from.
type NapInputs struct {
	Now   time.Time
	Date  time.Time // midnight of the target day
	State State

	// Anchor is the most recent sleep-end timestamp falling on the target
	// date; zero if no sleep has ended on that day yet.
	Anchor time.Time

	// NightEndedToday reports whether any night sleep has ended on the
	// target date. Without a real wake-up the first nap cannot be computed.
	NightEndedToday bool

	// CompletedNaps are today's finished naps in chronological order.
	CompletedNaps []sleep.Interval

	// CachedSuggestion is the memoized suggested time for the target date,
	// zero if none. Reusing a still-future cached value keeps the suggestion
	// from creeping later on every recomputation.
	CachedSuggestion time.Time

	// BedtimeAt is the currently suggested bedtime, zero when unavailable.
	// Used to detect an absurdly long final wake window.
	BedtimeAt time.Time

	Targets Targets
}

// NapResult is the advisor's answer for the next nap.
type NapResult struct {
	Outcome         Outcome
	Reason          string
	SuggestedTime   time.Time
	DurationHours   float64
	WakeWindowHours float64
	FromCache       bool
}

// NextNap computes the next suggested nap. It never writes anything; the
// caller persists SuggestedTime into the per-date cache.
func NextNap(in NapInputs) NapResult {
	switch in.State {
	case StateNapping:
		return NapResult{Outcome: OutcomeWaiting, Reason: "nap in progress"}
	case StateNightSleeping:
		if !in.Date.After(dayOf(in.Now)) {
			return NapResult{Outcome: OutcomeWaiting, Reason: "night sleep in progress"}
		}
	}

	targetNaps := roundHalfUp(float64(in.Targets.MinNaps+in.Targets.MaxNaps) / 2)

	var totalDaySleep float64
	for _, nap := range in.CompletedNaps {
		totalDaySleep += nap.End.Sub(nap.Start).Hours()
	}
	remaining := in.Targets.DayHours - totalDaySleep

	// A nap is also warranted when the stretch until bedtime would exceed
	// the longest tolerable wake window, even if the count/duration budget
	// says otherwise.
	wakeWindowTooLong := !in.BedtimeAt.IsZero() &&
		in.BedtimeAt.Sub(in.Now).Hours() > in.Targets.MaxWake+1

	needNap := (len(in.CompletedNaps) < targetNaps && remaining > 0.5) || wakeWindowTooLong
	if !needNap {
		return NapResult{Outcome: OutcomeNone, Reason: "day sleep target reached"}
	}

	if !in.NightEndedToday {
		return NapResult{Outcome: OutcomeNone, Reason: "no wake-up recorded today"}
	}
	if in.Anchor.IsZero() {
		return NapResult{Outcome: OutcomeNone, Reason: "no sleep end on this day"}
	}

	window := wakeWindow(in)
	suggested := in.Anchor.Add(durationHours(window))
	if floor := in.Now.Add(15 * time.Minute); suggested.Before(floor) {
		suggested = floor
	}

	fromCache := false
	if !in.CachedSuggestion.IsZero() && in.CachedSuggestion.After(in.Now) {
		suggested = in.CachedSuggestion
		fromCache = true
	}

	duration := math.Max(remaining, 0.5)
	if duration > in.Targets.MaxNapHours {
		duration = in.Targets.MaxNapHours
	}

	return NapResult{
		Outcome:         OutcomeSuggestion,
		SuggestedTime:   suggested,
		DurationHours:   round2(duration),
		WakeWindowHours: round2(window),
		FromCache:       fromCache,
	}
}

// wakeWindow estimates how long the baby can stay awake before the next nap.
// With two or more naps observed today the actual gaps dominate (70/30 blend
// with the table midpoint); otherwise the table range is shaped by time of
// day and by how many naps are already done.
func wakeWindow(in NapInputs) float64 {
	minW, maxW := in.Targets.MinWake, in.Targets.MaxWake
	mid := (minW + maxW) / 2
	naps := in.CompletedNaps

	if len(naps) >= 2 {
		var gaps float64
		for i := 1; i < len(naps); i++ {
			gaps += naps[i].Start.Sub(naps[i-1].End).Hours()
		}
		actual := gaps / float64(len(naps)-1)
		// Wider tolerance when real data informs the estimate.
		return clamp(0.7*actual+0.3*mid, 0.5*minW, 1.5*maxW)
	}

	var base float64
	switch hour := in.Anchor.Hour(); {
	case hour < 11:
		base = minW
	case hour < 15:
		base = mid
	default:
		base = maxW
	}
	base += 0.15 * (maxW - minW) * float64(len(naps))
	return clamp(base, 0.75*minW, 1.25*maxW)
}

// BedtimeInputs is the snapshot the next-bedtime computation works from.
type BedtimeInputs struct {
	Now   time.Time
	Date  time.Time // midnight of the target day
	State State

	// RecentNightHours are net durations (waking subtracted) of the most
	// recent completed night sleeps, up to seven. Implausible values are
	// filtered here, not by the caller.
	RecentNightHours []float64

	// LastWake is the most recent sleep-end timestamp overall; zero if the
	// store has no completed sleep at all.
	LastWake time.Time

	// DaySleepSoFar is today's completed nap total in hours.
	DaySleepSoFar float64

	Targets Targets
}

// BedtimeResult is the advisor's answer for tonight.
type BedtimeResult struct {
	Outcome            Outcome
	Reason             string
	SuggestedTime      time.Time
	NightHoursEstimate float64
	ExpectedWakeTime   time.Time
	DaySleepSoFar      float64
	TargetDaySleep     float64
	RemainingDaySleep  float64
	HoursAwake         float64
}

// NextBedtime computes the suggested bedtime for the target date.
func NextBedtime(in BedtimeInputs) BedtimeResult {
	if in.State == StateNightSleeping {
		return BedtimeResult{Outcome: OutcomeWaiting, Reason: "night sleep in progress"}
	}

	estimate := nightEstimate(in.RecentNightHours, in.Targets.NightHours)

	var hoursAwake float64
	if !in.LastWake.IsZero() && in.Now.After(in.LastWake) {
		hoursAwake = in.Now.Sub(in.LastWake).Hours()
	}

	candidate := in.Now

	// An overtired baby needs to go down earlier. Over 12 hours awake pulls
	// the bedtime up to two hours earlier; 10-12 hours pulls more gently.
	switch {
	case hoursAwake > 12:
		pull := math.Min(2.0, 0.5*(hoursAwake-12))
		candidate = candidate.Add(-durationHours(pull))
	case hoursAwake >= 10:
		candidate = candidate.Add(-durationHours(0.25 * (hoursAwake - 10)))
	}

	remaining := in.Targets.DayHours - in.DaySleepSoFar
	switch {
	case remaining > 1:
		// Budget left: allow up to 30 minutes later, but never past 20:30.
		latest := in.Date.Add(20*time.Hour + 30*time.Minute)
		pushed := candidate.Add(30 * time.Minute)
		if pushed.After(latest) {
			pushed = latest
		}
		if pushed.After(candidate) {
			candidate = pushed
		}
	case remaining < 0.5:
		// Day budget used up: allow up to 30 minutes earlier, never before 18:00.
		earliest := in.Date.Add(18 * time.Hour)
		pulled := candidate.Add(-30 * time.Minute)
		if pulled.Before(earliest) {
			pulled = earliest
		}
		if pulled.Before(candidate) {
			candidate = pulled
		}
	}

	// Hard clamps. The late clamp is skipped when the awake stretch itself
	// is evidence of overtiredness.
	if earliest := in.Date.Add(17 * time.Hour); candidate.Before(earliest) {
		candidate = earliest
	}
	if latest := in.Date.Add(21*time.Hour + 30*time.Minute); candidate.After(latest) && hoursAwake <= 12 {
		candidate = latest
	}

	if floor := in.Now.Add(15 * time.Minute); candidate.Before(floor) {
		candidate = floor
	}

	return BedtimeResult{
		Outcome:            OutcomeSuggestion,
		SuggestedTime:      candidate,
		NightHoursEstimate: round2(estimate),
		ExpectedWakeTime:   candidate.Add(durationHours(estimate)),
		DaySleepSoFar:      round2(in.DaySleepSoFar),
		TargetDaySleep:     in.Targets.DayHours,
		RemainingDaySleep:  round2(remaining),
		HoursAwake:         round2(hoursAwake),
	}
}

// nightEstimate blends the observed recent night durations with the table
// value (60/40) after discarding implausible records.
func nightEstimate(recent []float64, tableHours float64) float64 {
	var sum float64
	var n int
	for _, h := range recent {
		if h <= 0 || h >= 16 {
			continue
		}
		sum += h
		n++
	}
	if n == 0 {
		return tableHours
	}
	return 0.6*(sum/float64(n)) + 0.4*tableHours
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func durationHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
