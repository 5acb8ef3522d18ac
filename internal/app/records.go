package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/core/sleep"
	"github.com/example/cradle/internal/ports/secondary"
)

// sleepIntervals converts sleep rows to core intervals. Rows whose timestamps
// fail to parse are skipped rather than aborting the whole computation.
func sleepIntervals(parser *civil.Parser, log *zap.SugaredLogger, records []*secondary.SleepRecord) []sleep.Interval {
	intervals := make([]sleep.Interval, 0, len(records))
	for _, rec := range records {
		start, ok := parser.Parse(rec.StartTime)
		if !ok {
			log.Warnw("skipping sleep row with malformed start", "id", rec.ID, "start_time", rec.StartTime)
			continue
		}

		iv := sleep.Interval{ID: rec.ID, Kind: sleep.Kind(rec.Type), Start: start}
		if rec.EndTime != "" {
			end, ok := parser.Parse(rec.EndTime)
			if !ok {
				log.Warnw("skipping sleep row with malformed end", "id", rec.ID, "end_time", rec.EndTime)
				continue
			}
			iv.End = end
		}
		intervals = append(intervals, iv)
	}
	return intervals
}

// wakingIntervals converts night waking rows, skipping malformed ones.
func wakingIntervals(parser *civil.Parser, log *zap.SugaredLogger, records []*secondary.WakingRecord) []sleep.Waking {
	wakings := make([]sleep.Waking, 0, len(records))
	for _, rec := range records {
		start, ok := parser.Parse(rec.StartTime)
		if !ok {
			log.Warnw("skipping waking row with malformed start", "id", rec.ID, "start_time", rec.StartTime)
			continue
		}

		w := sleep.Waking{ID: rec.ID, Start: start}
		if rec.EndTime != "" {
			end, ok := parser.Parse(rec.EndTime)
			if !ok {
				log.Warnw("skipping waking row with malformed end", "id", rec.ID, "end_time", rec.EndTime)
				continue
			}
			w.End = end
		}
		wakings = append(wakings, w)
	}
	return wakings
}

// windowBounds returns the civil-string query window covering the inclusive
// day range [start, end]: [start 00:00, day after end 00:00).
func windowBounds(start, end time.Time) (string, string) {
	lo := civil.DayOf(start)
	hi := civil.DayOf(end).AddDate(0, 0, 1)
	return civil.FormatTime(lo), civil.FormatTime(hi)
}
