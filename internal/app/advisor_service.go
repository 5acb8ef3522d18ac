package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/advisor"
	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/core/sleep"
	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/ports/secondary"
)

// AdvisorServiceImpl implements the AdvisorService interface. It assembles an
// input snapshot from the store, hands it to the pure advisor functions and
// persists the memoized nap suggestion.
type AdvisorServiceImpl struct {
	sleeps      secondary.SleepRepository
	wakings     secondary.WakingRepository
	babies      secondary.BabyRepository
	suggestions secondary.SuggestionRepository
	parser      *civil.Parser
	log         *zap.SugaredLogger
	now         func() time.Time
}

// NewAdvisorService creates a new AdvisorService with injected dependencies.
func NewAdvisorService(
	sleeps secondary.SleepRepository,
	wakings secondary.WakingRepository,
	babies secondary.BabyRepository,
	suggestions secondary.SuggestionRepository,
	parser *civil.Parser,
	log *zap.SugaredLogger,
	now func() time.Time,
) *AdvisorServiceImpl {
	return &AdvisorServiceImpl{
		sleeps:      sleeps,
		wakings:     wakings,
		babies:      babies,
		suggestions: suggestions,
		parser:      parser,
		log:         log,
		now:         now,
	}
}

// NextNap computes (and memoizes) the next nap suggestion for a date.
func (s *AdvisorServiceImpl) NextNap(ctx context.Context, date string) (*primary.NapSuggestion, error) {
	now := s.now()
	day, err := s.targetDay(date, now)
	if err != nil {
		return nil, err
	}

	state, err := s.currentState(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetsForNow(ctx, now)
	if err != nil {
		return nil, err
	}

	dayState, err := s.loadDayState(ctx, day, now)
	if err != nil {
		return nil, err
	}

	var cached time.Time
	cachedRec, err := s.suggestions.GetForDate(ctx, civil.DateString(day))
	if err != nil {
		return nil, err
	}
	if cachedRec != nil {
		if t, ok := s.parser.Parse(cachedRec.SuggestedTime); ok {
			cached = t
		}
	}

	// The wake-window-too-long trigger compares against tonight's suggested
	// bedtime, so that is computed first.
	var bedtimeAt time.Time
	if bedtime := s.computeBedtime(ctx, day, now, state, targets, dayState); bedtime != nil &&
		bedtime.Outcome == advisor.OutcomeSuggestion {
		bedtimeAt = bedtime.SuggestedTime
	}

	result := advisor.NextNap(advisor.NapInputs{
		Now:              now,
		Date:             day,
		State:            state,
		Anchor:           dayState.anchor,
		NightEndedToday:  dayState.nightEnded,
		CompletedNaps:    dayState.completedNaps,
		CachedSuggestion: cached,
		BedtimeAt:        bedtimeAt,
		Targets:          targets,
	})

	out := &primary.NapSuggestion{
		Status: string(result.Outcome),
		Reason: result.Reason,
	}
	if result.Outcome == advisor.OutcomeSuggestion {
		suggested := civil.FormatTime(result.SuggestedTime)
		if err := s.suggestions.Replace(ctx, civil.DateString(day), suggested); err != nil {
			return nil, fmt.Errorf("failed to memoize nap suggestion: %w", err)
		}

		out.SuggestedTime = suggested
		out.DurationHours = result.DurationHours
		out.WakeWindowHours = result.WakeWindowHours
		out.FromCache = result.FromCache
	}
	return out, nil
}

// NextBedtime computes the bedtime suggestion for a date.
func (s *AdvisorServiceImpl) NextBedtime(ctx context.Context, date string) (*primary.BedtimeSuggestion, error) {
	now := s.now()
	day, err := s.targetDay(date, now)
	if err != nil {
		return nil, err
	}

	state, err := s.currentState(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := s.targetsForNow(ctx, now)
	if err != nil {
		return nil, err
	}

	dayState, err := s.loadDayState(ctx, day, now)
	if err != nil {
		return nil, err
	}

	result := s.computeBedtime(ctx, day, now, state, targets, dayState)
	if result == nil {
		return nil, fmt.Errorf("failed to compute bedtime for %s", civil.DateString(day))
	}

	out := &primary.BedtimeSuggestion{
		Status:            string(result.Outcome),
		Reason:            result.Reason,
		DaySleepSoFar:     result.DaySleepSoFar,
		TargetDaySleep:    result.TargetDaySleep,
		RemainingDaySleep: result.RemainingDaySleep,
		HoursAwake:        result.HoursAwake,
	}
	if result.Outcome == advisor.OutcomeSuggestion {
		out.SuggestedTime = civil.FormatTime(result.SuggestedTime)
		out.NightHoursEstimate = result.NightHoursEstimate
		out.ExpectedWakeTime = civil.FormatTime(result.ExpectedWakeTime)
	}
	return out, nil
}

// dayState is the per-date snapshot both advisor answers work from.
type dayState struct {
	completedNaps []sleep.Interval
	daySleepSoFar float64
	anchor        time.Time
	nightEnded    bool
	lastWake      time.Time
	recentNights  []float64
}

func (s *AdvisorServiceImpl) targetDay(date string, now time.Time) (time.Time, error) {
	if date == "" {
		return civil.DayOf(now), nil
	}
	day, err := s.parser.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return day, nil
}

func (s *AdvisorServiceImpl) currentState(ctx context.Context) (advisor.State, error) {
	open, err := s.sleeps.GetOpen(ctx)
	if err != nil {
		return "", err
	}
	if open == nil {
		return advisor.StateAwake, nil
	}
	if open.Type == primary.SleepKindNight {
		return advisor.StateNightSleeping, nil
	}
	return advisor.StateNapping, nil
}

// targetsForNow resolves the age band from the stored profile, or from the
// default birth date (about six months back) when no profile exists yet.
func (s *AdvisorServiceImpl) targetsForNow(ctx context.Context, now time.Time) (advisor.Targets, error) {
	birth := now.AddDate(0, 0, -180)

	profile, err := s.babies.Get(ctx)
	if err != nil {
		return advisor.Targets{}, err
	}
	if profile != nil {
		if t, err := s.parser.ParseDate(profile.BirthDate); err == nil {
			birth = t
		} else {
			s.log.Warnw("ignoring malformed birth date", "birth_date", profile.BirthDate)
		}
	}

	return advisor.TargetsForAge(advisor.AgeInMonths(birth, now)), nil
}

// loadDayState gathers today's completed naps, the anchor wake-up, the most
// recent wake time and the recent night durations in one pass.
func (s *AdvisorServiceImpl) loadDayState(ctx context.Context, day, now time.Time) (*dayState, error) {
	// A ten-day lookback covers the seven most recent nights even with gaps.
	lo, hi := windowBounds(day.AddDate(0, 0, -10), day)

	sleepRecords, err := s.sleeps.ListOverlapping(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	wakingRecords, err := s.wakings.ListOverlapping(ctx, lo, hi)
	if err != nil {
		return nil, err
	}

	intervals := sleepIntervals(s.parser, s.log, sleepRecords)
	wakings := wakingIntervals(s.parser, s.log, wakingRecords)

	st := &dayState{}
	var nights []sleep.Interval
	for _, iv := range intervals {
		if iv.Open() {
			continue
		}

		if civil.SameDay(iv.End, day) {
			if iv.End.After(st.anchor) {
				st.anchor = iv.End
			}
			if iv.Kind == sleep.KindNight {
				st.nightEnded = true
			}
			if iv.Kind == sleep.KindNap {
				st.completedNaps = append(st.completedNaps, iv)
				st.daySleepSoFar += iv.End.Sub(iv.Start).Hours()
			}
		}

		if iv.End.After(st.lastWake) {
			st.lastWake = iv.End
		}
		if iv.Kind == sleep.KindNight {
			nights = append(nights, iv)
		}
	}

	sort.Slice(st.completedNaps, func(i, j int) bool {
		return st.completedNaps[i].Start.Before(st.completedNaps[j].Start)
	})

	// Most recent nights first, capped at seven.
	sort.Slice(nights, func(i, j int) bool {
		return nights[i].End.After(nights[j].End)
	})
	if len(nights) > 7 {
		nights = nights[:7]
	}
	for _, n := range nights {
		st.recentNights = append(st.recentNights, sleep.NightNetHours(n, wakings, now))
	}

	return st, nil
}

func (s *AdvisorServiceImpl) computeBedtime(_ context.Context, day, now time.Time, state advisor.State, targets advisor.Targets, st *dayState) *advisor.BedtimeResult {
	result := advisor.NextBedtime(advisor.BedtimeInputs{
		Now:              now,
		Date:             day,
		State:            state,
		RecentNightHours: st.recentNights,
		LastWake:         st.lastWake,
		DaySleepSoFar:    st.daySleepSoFar,
		Targets:          targets,
	})
	return &result
}

// Ensure AdvisorServiceImpl implements the interface.
var _ primary.AdvisorService = (*AdvisorServiceImpl)(nil)
