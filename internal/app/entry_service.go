package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/core/entries"
	"github.com/example/cradle/internal/ports/primary"
	"github.com/example/cradle/internal/ports/secondary"
)

// EntryServiceImpl implements the EntryService interface. It flattens every
// event table into one chronological feed.
type EntryServiceImpl struct {
	sleeps   secondary.SleepRepository
	feedings secondary.FeedingRepository
	bottles  secondary.BottleRepository
	diapers  secondary.DiaperRepository
	temps    secondary.TemperatureRepository
	meds     secondary.MedicineRepository
	parser   *civil.Parser
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewEntryService creates a new EntryService with injected dependencies.
func NewEntryService(
	sleeps secondary.SleepRepository,
	feedings secondary.FeedingRepository,
	bottles secondary.BottleRepository,
	diapers secondary.DiaperRepository,
	temps secondary.TemperatureRepository,
	meds secondary.MedicineRepository,
	parser *civil.Parser,
	log *zap.SugaredLogger,
	now func() time.Time,
) *EntryServiceImpl {
	return &EntryServiceImpl{
		sleeps:   sleeps,
		feedings: feedings,
		bottles:  bottles,
		diapers:  diapers,
		temps:    temps,
		meds:     meds,
		parser:   parser,
		log:      log,
		now:      now,
	}
}

// EntriesForDay returns one day's entries, newest first. Sleeps are attributed
// to the day they ended on.
func (s *EntryServiceImpl) EntriesForDay(ctx context.Context, date string) ([]*primary.Entry, error) {
	day := civil.DayOf(s.now())
	if date != "" {
		parsed, err := s.parser.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		day = parsed
	}

	list, err := s.collect(ctx, day, day)
	if err != nil {
		return nil, err
	}
	return s.toPort(entries.ForDay(list, day)), nil
}

// EntriesForRange returns the entries of an inclusive day range in
// chronological order.
func (s *EntryServiceImpl) EntriesForRange(ctx context.Context, start, end string) ([]*primary.Entry, error) {
	from, err := s.parser.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	to, err := s.parser.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s before start %s", ErrInvalidRange, end, start)
	}

	list, err := s.collect(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.toPort(entries.ForRange(list, from, to)), nil
}

// collect loads and converts every event kind overlapping [from, to].
func (s *EntryServiceImpl) collect(ctx context.Context, from, to time.Time) ([]entries.Entry, error) {
	lo, hi := windowBounds(from, to)
	var list []entries.Entry

	sleeps, err := s.sleeps.ListOverlapping(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	for _, rec := range sleeps {
		start, ok := s.parser.Parse(rec.StartTime)
		if !ok {
			s.log.Warnw("skipping sleep row with malformed start", "id", rec.ID, "start_time", rec.StartTime)
			continue
		}

		label := "Nap"
		if rec.Type == primary.SleepKindNight {
			label = "Night sleep"
		}
		details := map[string]any{
			"type":       rec.Type,
			"start_time": civil.FormatTime(start),
		}

		var end time.Time
		if rec.EndTime != "" {
			end, ok = s.parser.Parse(rec.EndTime)
			if !ok {
				s.log.Warnw("skipping sleep row with malformed end", "id", rec.ID, "end_time", rec.EndTime)
				continue
			}
			details["end_time"] = civil.FormatTime(end)
			details["duration_minutes"] = int(end.Sub(start).Minutes())
		} else {
			details["in_progress"] = true
		}

		list = append(list, entries.Entry{
			ID:        rec.ID,
			Category:  entries.CategorySleep,
			Timestamp: start,
			Day:       entries.AttributedDay(start, end),
			Label:     label,
			Details:   details,
		})
	}

	feedings, err := s.feedings.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	for _, rec := range feedings {
		t, ok := s.parser.Parse(rec.Timestamp)
		if !ok {
			s.log.Warnw("skipping feeding row with malformed timestamp", "id", rec.ID, "timestamp", rec.Timestamp)
			continue
		}

		details := map[string]any{"side": rec.Side}
		if rec.EndTime != "" {
			if end, ok := s.parser.Parse(rec.EndTime); ok {
				details["end_time"] = civil.FormatTime(end)
				details["duration_minutes"] = int(end.Sub(t).Minutes())
			}
		}
		list = append(list, entries.Entry{
			ID:        rec.ID,
			Category:  entries.CategoryFeeding,
			Timestamp: t,
			Day:       civil.DayOf(t),
			Label:     fmt.Sprintf("Breastfeeding (%s)", rec.Side),
			Details:   details,
		})
	}

	bottles, err := s.bottles.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	for _, rec := range bottles {
		t, ok := s.parser.Parse(rec.Timestamp)
		if !ok {
			s.log.Warnw("skipping bottle row with malformed timestamp", "id", rec.ID, "timestamp", rec.Timestamp)
			continue
		}
		list = append(list, entries.Entry{
			ID:        rec.ID,
			Category:  entries.CategoryBottle,
			Timestamp: t,
			Day:       civil.DayOf(t),
			Label:     fmt.Sprintf("Bottle %d ml", rec.Amount),
			Details:   map[string]any{"amount_ml": rec.Amount},
		})
	}

	diapers, err := s.diapers.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	for _, rec := range diapers {
		t, ok := s.parser.Parse(rec.Timestamp)
		if !ok {
			s.log.Warnw("skipping diaper row with malformed timestamp", "id", rec.ID, "timestamp", rec.Timestamp)
			continue
		}
		list = append(list, entries.Entry{
			ID:        rec.ID,
			Category:  entries.CategoryDiaper,
			Timestamp: t,
			Day:       civil.DayOf(t),
			Label:     fmt.Sprintf("Diaper (%s)", rec.Type),
			Details:   map[string]any{"type": rec.Type},
		})
	}

	temps, err := s.temps.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	for _, rec := range temps {
		t, ok := s.parser.Parse(rec.Timestamp)
		if !ok {
			s.log.Warnw("skipping temperature row with malformed timestamp", "id", rec.ID, "timestamp", rec.Timestamp)
			continue
		}
		list = append(list, entries.Entry{
			ID:        rec.ID,
			Category:  entries.CategoryTemperature,
			Timestamp: t,
			Day:       civil.DayOf(t),
			Label:     fmt.Sprintf("Temperature %.1f °C", rec.Value),
			Details:   map[string]any{"value": rec.Value},
		})
	}

	meds, err := s.meds.ListByRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	for _, rec := range meds {
		t, ok := s.parser.Parse(rec.Timestamp)
		if !ok {
			s.log.Warnw("skipping medicine row with malformed timestamp", "id", rec.ID, "timestamp", rec.Timestamp)
			continue
		}
		list = append(list, entries.Entry{
			ID:        rec.ID,
			Category:  entries.CategoryMedicine,
			Timestamp: t,
			Day:       civil.DayOf(t),
			Label:     fmt.Sprintf("%s (%s)", rec.Name, rec.Dose),
			Details:   map[string]any{"name": rec.Name, "dose": rec.Dose},
		})
	}

	return list, nil
}

func (s *EntryServiceImpl) toPort(list []entries.Entry) []*primary.Entry {
	out := make([]*primary.Entry, 0, len(list))
	for _, e := range list {
		out = append(out, &primary.Entry{
			ID:        e.ID,
			Category:  string(e.Category),
			Timestamp: civil.FormatTime(e.Timestamp),
			Day:       civil.DateString(e.Day),
			Label:     e.Label,
			Details:   e.Details,
		})
	}
	return out
}

// Ensure EntryServiceImpl implements the interface.
var _ primary.EntryService = (*EntryServiceImpl)(nil)
