package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/core/sleep"
	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/ports/secondary"
)

// TrackerServiceImpl implements the TrackerService interface.
type TrackerServiceImpl struct {
	sleeps      secondary.SleepRepository
	wakings     secondary.WakingRepository
	feedings    secondary.FeedingRepository
	bottles     secondary.BottleRepository
	diapers     secondary.DiaperRepository
	temps       secondary.TemperatureRepository
	meds        secondary.MedicineRepository
	suggestions secondary.SuggestionRepository
	parser      *civil.Parser
	log         *zap.SugaredLogger
	now         func() time.Time
}

// NewTrackerService creates a new TrackerService with injected dependencies.
func NewTrackerService(
	sleeps secondary.SleepRepository,
	wakings secondary.WakingRepository,
	feedings secondary.FeedingRepository,
	bottles secondary.BottleRepository,
	diapers secondary.DiaperRepository,
	temps secondary.TemperatureRepository,
	meds secondary.MedicineRepository,
	suggestions secondary.SuggestionRepository,
	parser *civil.Parser,
	log *zap.SugaredLogger,
	now func() time.Time,
) *TrackerServiceImpl {
	return &TrackerServiceImpl{
		sleeps:      sleeps,
		wakings:     wakings,
		feedings:    feedings,
		bottles:     bottles,
		diapers:     diapers,
		temps:       temps,
		meds:        meds,
		suggestions: suggestions,
		parser:      parser,
		log:         log,
		now:         now,
	}
}

// resolveTime turns an optional request timestamp into a canonical civil
// string: empty means "now", anything else must parse.
func (s *TrackerServiceImpl) resolveTime(value string) (string, error) {
	if value == "" {
		return civil.FormatTime(s.now()), nil
	}
	t, ok := s.parser.Parse(value)
	if !ok {
		return "", fmt.Errorf("invalid timestamp %q", value)
	}
	return civil.FormatTime(t), nil
}

// StartSleep opens a new nap or night-sleep interval.
func (s *TrackerServiceImpl) StartSleep(ctx context.Context, req primary.StartSleepRequest) (*primary.SleepEvent, error) {
	if req.Kind != primary.SleepKindNap && req.Kind != primary.SleepKindNight {
		return nil, fmt.Errorf("invalid sleep kind %q", req.Kind)
	}

	startTime, err := s.resolveTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	// The store's partial unique index rejects a second open interval, so no
	// read-then-insert check is needed here.
	id, err := s.sleeps.Create(ctx, &secondary.SleepRecord{
		Type:      req.Kind,
		StartTime: startTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", req.Kind, err)
	}

	created, err := s.sleeps.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch started sleep: %w", err)
	}

	s.log.Infow("sleep started", "id", id, "kind", req.Kind, "start", startTime)
	return sleepRecordToEvent(created), nil
}

// EndSleep closes the open interval of the given kind.
func (s *TrackerServiceImpl) EndSleep(ctx context.Context, req primary.EndSleepRequest) (*primary.SleepEvent, error) {
	open, err := s.sleeps.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoActiveSleep
	}
	if req.Kind != "" && open.Type != req.Kind {
		return nil, fmt.Errorf("open sleep is a %s, not a %s", open.Type, req.Kind)
	}

	endTime, err := s.resolveTime(req.EndTime)
	if err != nil {
		return nil, err
	}
	if endTime <= open.StartTime {
		return nil, fmt.Errorf("end time %s is not after start time %s", endTime, open.StartTime)
	}

	// A night sleep that ends while a waking is still open closes the waking
	// at the same instant.
	if open.Type == primary.SleepKindNight {
		if openWaking, err := s.wakings.GetOpen(ctx); err != nil {
			return nil, err
		} else if openWaking != nil {
			if err := s.wakings.End(ctx, openWaking.ID, endTime); err != nil {
				return nil, fmt.Errorf("failed to close open waking: %w", err)
			}
		}
	}

	if err := s.sleeps.End(ctx, open.ID, endTime); err != nil {
		return nil, err
	}

	// A freshly recorded nap supersedes that day's memoized suggestion, so
	// the advisor recomputes from the new anchor.
	if open.Type == primary.SleepKindNap {
		if end, ok := s.parser.Parse(endTime); ok {
			if err := s.suggestions.DeleteForDate(ctx, civil.DateString(end)); err != nil {
				return nil, fmt.Errorf("failed to clear nap suggestion cache: %w", err)
			}
		}
	}

	ended, err := s.sleeps.GetByID(ctx, open.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ended sleep: %w", err)
	}

	s.log.Infow("sleep ended", "id", open.ID, "kind", open.Type, "end", endTime)
	return sleepRecordToEvent(ended), nil
}

// UpdateSleep rewrites an existing interval.
func (s *TrackerServiceImpl) UpdateSleep(ctx context.Context, req primary.UpdateSleepRequest) (*primary.SleepEvent, error) {
	if req.Kind != primary.SleepKindNap && req.Kind != primary.SleepKindNight {
		return nil, fmt.Errorf("invalid sleep kind %q", req.Kind)
	}

	startTime, err := s.resolveTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime := ""
	if req.EndTime != "" {
		endTime, err = s.resolveTime(req.EndTime)
		if err != nil {
			return nil, err
		}
		if endTime <= startTime {
			return nil, fmt.Errorf("end time %s is not after start time %s", endTime, startTime)
		}
	}

	err = s.sleeps.Update(ctx, &secondary.SleepRecord{
		ID:        req.ID,
		Type:      req.Kind,
		StartTime: startTime,
		EndTime:   endTime,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.sleeps.GetByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated sleep: %w", err)
	}
	return sleepRecordToEvent(updated), nil
}

// DeleteSleep removes a sleep interval.
func (s *TrackerServiceImpl) DeleteSleep(ctx context.Context, id int64) error {
	return s.sleeps.Delete(ctx, id)
}

// ActiveSleep returns the open interval, nil when the baby is awake.
func (s *TrackerServiceImpl) ActiveSleep(ctx context.Context) (*primary.SleepEvent, error) {
	open, err := s.sleeps.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}
	return sleepRecordToEvent(open), nil
}

// StartWaking opens a night waking inside the current night sleep.
func (s *TrackerServiceImpl) StartWaking(ctx context.Context, req primary.StartWakingRequest) (*primary.WakingEvent, error) {
	open, err := s.sleeps.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open == nil || open.Type != primary.SleepKindNight {
		return nil, ErrNoNightSleep
	}

	startTime, err := s.resolveTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	id, err := s.wakings.Create(ctx, &secondary.WakingRecord{StartTime: startTime})
	if err != nil {
		return nil, fmt.Errorf("failed to start waking: %w", err)
	}

	created, err := s.wakings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch started waking: %w", err)
	}

	s.log.Infow("night waking started", "id", id, "start", startTime)
	return wakingRecordToEvent(created), nil
}

// EndWaking closes the open night waking.
func (s *TrackerServiceImpl) EndWaking(ctx context.Context, req primary.EndWakingRequest) (*primary.WakingEvent, error) {
	open, err := s.wakings.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoActiveWaking
	}

	endTime, err := s.resolveTime(req.EndTime)
	if err != nil {
		return nil, err
	}
	if endTime <= open.StartTime {
		return nil, fmt.Errorf("end time %s is not after start time %s", endTime, open.StartTime)
	}

	if err := s.wakings.End(ctx, open.ID, endTime); err != nil {
		return nil, err
	}

	ended, err := s.wakings.GetByID(ctx, open.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ended waking: %w", err)
	}
	return wakingRecordToEvent(ended), nil
}

// DeleteWaking removes a night waking.
func (s *TrackerServiceImpl) DeleteWaking(ctx context.Context, id int64) error {
	return s.wakings.Delete(ctx, id)
}

// RecordFeeding records a breastfeeding event.
func (s *TrackerServiceImpl) RecordFeeding(ctx context.Context, req primary.FeedingRequest) (*primary.FeedingEvent, error) {
	record, err := s.feedingRecord(req)
	if err != nil {
		return nil, err
	}

	id, err := s.feedings.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record feeding: %w", err)
	}

	created, err := s.feedings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recorded feeding: %w", err)
	}
	return feedingRecordToEvent(created), nil
}

// UpdateFeeding rewrites an existing feeding.
func (s *TrackerServiceImpl) UpdateFeeding(ctx context.Context, id int64, req primary.FeedingRequest) (*primary.FeedingEvent, error) {
	record, err := s.feedingRecord(req)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.feedings.Update(ctx, record); err != nil {
		return nil, err
	}

	updated, err := s.feedings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated feeding: %w", err)
	}
	return feedingRecordToEvent(updated), nil
}

// DeleteFeeding removes a feeding.
func (s *TrackerServiceImpl) DeleteFeeding(ctx context.Context, id int64) error {
	return s.feedings.Delete(ctx, id)
}

func (s *TrackerServiceImpl) feedingRecord(req primary.FeedingRequest) (*secondary.FeedingRecord, error) {
	if req.Side != "left" && req.Side != "right" {
		return nil, fmt.Errorf("invalid feeding side %q", req.Side)
	}

	timestamp, err := s.resolveTime(req.Timestamp)
	if err != nil {
		return nil, err
	}
	endTime := ""
	if req.EndTime != "" {
		if endTime, err = s.resolveTime(req.EndTime); err != nil {
			return nil, err
		}
	}

	return &secondary.FeedingRecord{Timestamp: timestamp, Side: req.Side, EndTime: endTime}, nil
}

// RecordBottle records a bottle feed.
func (s *TrackerServiceImpl) RecordBottle(ctx context.Context, req primary.BottleRequest) (*primary.BottleEvent, error) {
	record, err := s.bottleRecord(req)
	if err != nil {
		return nil, err
	}

	id, err := s.bottles.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record bottle feed: %w", err)
	}

	created, err := s.bottles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recorded bottle feed: %w", err)
	}
	return bottleRecordToEvent(created), nil
}

// UpdateBottle rewrites an existing bottle feed.
func (s *TrackerServiceImpl) UpdateBottle(ctx context.Context, id int64, req primary.BottleRequest) (*primary.BottleEvent, error) {
	record, err := s.bottleRecord(req)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.bottles.Update(ctx, record); err != nil {
		return nil, err
	}

	updated, err := s.bottles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated bottle feed: %w", err)
	}
	return bottleRecordToEvent(updated), nil
}

// DeleteBottle removes a bottle feed.
func (s *TrackerServiceImpl) DeleteBottle(ctx context.Context, id int64) error {
	return s.bottles.Delete(ctx, id)
}

func (s *TrackerServiceImpl) bottleRecord(req primary.BottleRequest) (*secondary.BottleRecord, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid bottle amount %d", req.Amount)
	}

	timestamp, err := s.resolveTime(req.Timestamp)
	if err != nil {
		return nil, err
	}
	return &secondary.BottleRecord{Timestamp: timestamp, Amount: req.Amount}, nil
}

// RecordDiaper records a diaper change.
func (s *TrackerServiceImpl) RecordDiaper(ctx context.Context, req primary.DiaperRequest) (*primary.DiaperEvent, error) {
	record, err := s.diaperRecord(req)
	if err != nil {
		return nil, err
	}

	id, err := s.diapers.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record diaper change: %w", err)
	}

	created, err := s.diapers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recorded diaper change: %w", err)
	}
	return diaperRecordToEvent(created), nil
}

// UpdateDiaper rewrites an existing diaper change.
func (s *TrackerServiceImpl) UpdateDiaper(ctx context.Context, id int64, req primary.DiaperRequest) (*primary.DiaperEvent, error) {
	record, err := s.diaperRecord(req)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.diapers.Update(ctx, record); err != nil {
		return nil, err
	}

	updated, err := s.diapers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated diaper change: %w", err)
	}
	return diaperRecordToEvent(updated), nil
}

// DeleteDiaper removes a diaper change.
func (s *TrackerServiceImpl) DeleteDiaper(ctx context.Context, id int64) error {
	return s.diapers.Delete(ctx, id)
}

func (s *TrackerServiceImpl) diaperRecord(req primary.DiaperRequest) (*secondary.DiaperRecord, error) {
	switch req.Type {
	case "wet", "solid", "both":
	default:
		return nil, fmt.Errorf("invalid diaper type %q", req.Type)
	}

	timestamp, err := s.resolveTime(req.Timestamp)
	if err != nil {
		return nil, err
	}
	return &secondary.DiaperRecord{Timestamp: timestamp, Type: req.Type}, nil
}

// RecordTemperature records a body temperature reading.
func (s *TrackerServiceImpl) RecordTemperature(ctx context.Context, req primary.TemperatureRequest) (*primary.TemperatureEvent, error) {
	record, err := s.temperatureRecord(req)
	if err != nil {
		return nil, err
	}

	id, err := s.temps.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record temperature: %w", err)
	}

	created, err := s.temps.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recorded temperature: %w", err)
	}
	return temperatureRecordToEvent(created), nil
}

// UpdateTemperature rewrites an existing reading.
func (s *TrackerServiceImpl) UpdateTemperature(ctx context.Context, id int64, req primary.TemperatureRequest) (*primary.TemperatureEvent, error) {
	record, err := s.temperatureRecord(req)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.temps.Update(ctx, record); err != nil {
		return nil, err
	}

	updated, err := s.temps.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated temperature: %w", err)
	}
	return temperatureRecordToEvent(updated), nil
}

// DeleteTemperature removes a reading.
func (s *TrackerServiceImpl) DeleteTemperature(ctx context.Context, id int64) error {
	return s.temps.Delete(ctx, id)
}

func (s *TrackerServiceImpl) temperatureRecord(req primary.TemperatureRequest) (*secondary.TemperatureRecord, error) {
	if req.Value < 30 || req.Value > 45 {
		return nil, fmt.Errorf("implausible temperature %.1f", req.Value)
	}

	timestamp, err := s.resolveTime(req.Timestamp)
	if err != nil {
		return nil, err
	}
	return &secondary.TemperatureRecord{Timestamp: timestamp, Value: req.Value}, nil
}

// RecordMedicine records a medicine dose.
func (s *TrackerServiceImpl) RecordMedicine(ctx context.Context, req primary.MedicineRequest) (*primary.MedicineEvent, error) {
	record, err := s.medicineRecord(req)
	if err != nil {
		return nil, err
	}

	id, err := s.meds.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record medicine dose: %w", err)
	}

	created, err := s.meds.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recorded medicine dose: %w", err)
	}
	return medicineRecordToEvent(created), nil
}

// UpdateMedicine rewrites an existing dose.
func (s *TrackerServiceImpl) UpdateMedicine(ctx context.Context, id int64, req primary.MedicineRequest) (*primary.MedicineEvent, error) {
	record, err := s.medicineRecord(req)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := s.meds.Update(ctx, record); err != nil {
		return nil, err
	}

	updated, err := s.meds.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated medicine dose: %w", err)
	}
	return medicineRecordToEvent(updated), nil
}

// DeleteMedicine removes a dose.
func (s *TrackerServiceImpl) DeleteMedicine(ctx context.Context, id int64) error {
	return s.meds.Delete(ctx, id)
}

func (s *TrackerServiceImpl) medicineRecord(req primary.MedicineRequest) (*secondary.MedicineRecord, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("medicine name is required")
	}
	if req.Dose == "" {
		return nil, fmt.Errorf("medicine dose is required")
	}

	timestamp, err := s.resolveTime(req.Timestamp)
	if err != nil {
		return nil, err
	}
	return &secondary.MedicineRecord{Timestamp: timestamp, Name: req.Name, Dose: req.Dose}, nil
}

// DaySummary assembles the at-a-glance state for one day.
func (s *TrackerServiceImpl) DaySummary(ctx context.Context, date string) (*primary.DaySummary, error) {
	now := s.now()
	day := civil.DayOf(now)
	if date != "" {
		parsed, err := s.parser.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		day = parsed
	}

	lo, hi := windowBounds(day, day)
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

	summary := &primary.DaySummary{
		Date:        civil.DateString(day),
		Status:      "awake",
		HoursAsleep: sleep.DailySleepHours(intervals, wakings, day, now),
	}

	open, err := s.sleeps.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open != nil {
		if open.Type == primary.SleepKindNight {
			summary.Status = "night_sleeping"
		} else {
			summary.Status = "napping"
		}
		summary.ActiveSleep = sleepRecordToEvent(open)
	} else {
		latest, err := s.sleeps.LatestEnded(ctx)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			summary.AwakeSince = latest.EndTime
		}
	}

	lastFeeding, err := s.feedings.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if lastFeeding != nil {
		summary.LastFeeding = feedingRecordToEvent(lastFeeding)
	}

	lastDiaper, err := s.diapers.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if lastDiaper != nil {
		summary.LastDiaper = diaperRecordToEvent(lastDiaper)
	}

	return summary, nil
}

// Record-to-DTO helpers

func sleepRecordToEvent(r *secondary.SleepRecord) *primary.SleepEvent {
	return &primary.SleepEvent{ID: r.ID, Kind: r.Type, StartTime: r.StartTime, EndTime: r.EndTime}
}

func wakingRecordToEvent(r *secondary.WakingRecord) *primary.WakingEvent {
	return &primary.WakingEvent{ID: r.ID, StartTime: r.StartTime, EndTime: r.EndTime}
}

func feedingRecordToEvent(r *secondary.FeedingRecord) *primary.FeedingEvent {
	return &primary.FeedingEvent{ID: r.ID, Timestamp: r.Timestamp, Side: r.Side, EndTime: r.EndTime}
}

func bottleRecordToEvent(r *secondary.BottleRecord) *primary.BottleEvent {
	return &primary.BottleEvent{ID: r.ID, Timestamp: r.Timestamp, Amount: r.Amount}
}

func diaperRecordToEvent(r *secondary.DiaperRecord) *primary.DiaperEvent {
	return &primary.DiaperEvent{ID: r.ID, Timestamp: r.Timestamp, Type: r.Type}
}

func temperatureRecordToEvent(r *secondary.TemperatureRecord) *primary.TemperatureEvent {
	return &primary.TemperatureEvent{ID: r.ID, Timestamp: r.Timestamp, Value: r.Value}
}

func medicineRecordToEvent(r *secondary.MedicineRecord) *primary.MedicineEvent {
	return &primary.MedicineEvent{ID: r.ID, Timestamp: r.Timestamp, Name: r.Name, Dose: r.Dose}
}

// Ensure TrackerServiceImpl implements the interface.
var _ primary.TrackerService = (*TrackerServiceImpl)(nil)
