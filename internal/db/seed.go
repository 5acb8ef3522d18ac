package db

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

// civilFormat is the canonical storage format for civil timestamps.
const civilFormat = "2006-01-02T15:04:05"

// SeedDemoData wipes all event tables and fills them with ten days of
// plausible baby activity ending today, so the statistics and advisor views
// have something to chew on during development.
func SeedDemoData(database *sql.DB, loc *time.Location) error {
	for _, table := range []string{"sleep", "night_waking", "feeding", "bottle", "diaper", "temperature", "medicine", "nap_suggestion"} {
		if _, err := database.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	insertSleep := func(kind string, start, end time.Time) error {
		_, err := database.Exec(
			"INSERT INTO sleep (type, start_time, end_time) VALUES (?, ?, ?)",
			kind, start.Format(civilFormat), end.Format(civilFormat),
		)
		return err
	}

	for offset := 10; offset >= 1; offset-- {
		day := today.AddDate(0, 0, -offset)

		// Night sleep roughly 19:00-21:00 until 06:00-08:00 the next morning.
		nightStart := day.Add(time.Duration(19*60+rng.Intn(120)) * time.Minute)
		nightEnd := day.AddDate(0, 0, 1).Add(time.Duration(6*60+rng.Intn(120)) * time.Minute)
		if err := insertSleep("night", nightStart, nightEnd); err != nil {
			return fmt.Errorf("failed to seed night sleep: %w", err)
		}

		// Roughly every other night has one wakeful stretch.
		if rng.Intn(2) == 0 {
			wakeStart := nightStart.Add(time.Duration(3+rng.Intn(4)) * time.Hour)
			wakeEnd := wakeStart.Add(time.Duration(10+rng.Intn(30)) * time.Minute)
			_, err := database.Exec(
				"INSERT INTO night_waking (start_time, end_time) VALUES (?, ?)",
				wakeStart.Format(civilFormat), wakeEnd.Format(civilFormat),
			)
			if err != nil {
				return fmt.Errorf("failed to seed night waking: %w", err)
			}
		}

		// Two or three naps spread over the day.
		napEnd := day.Add(time.Duration(7*60+rng.Intn(60)) * time.Minute)
		for n := 0; n < 2+rng.Intn(2); n++ {
			napStart := napEnd.Add(time.Duration(60+rng.Intn(120)) * time.Minute)
			napEnd = napStart.Add(time.Duration(30+rng.Intn(90)) * time.Minute)
			if napEnd.After(nightStart) {
				break
			}
			if err := insertSleep("nap", napStart, napEnd); err != nil {
				return fmt.Errorf("failed to seed nap: %w", err)
			}
		}

		// Six to ten feedings, alternating sides.
		side := "left"
		for f := 0; f < 6+rng.Intn(5); f++ {
			ts := day.Add(time.Duration(6*60+rng.Intn(15*60)) * time.Minute)
			_, err := database.Exec(
				"INSERT INTO feeding (timestamp, side) VALUES (?, ?)",
				ts.Format(civilFormat), side,
			)
			if err != nil {
				return fmt.Errorf("failed to seed feeding: %w", err)
			}
			if side == "left" {
				side = "right"
			} else {
				side = "left"
			}
		}

		// One or two bottles.
		for b := 0; b < 1+rng.Intn(2); b++ {
			ts := day.Add(time.Duration(9*60+rng.Intn(10*60)) * time.Minute)
			_, err := database.Exec(
				"INSERT INTO bottle (timestamp, amount) VALUES (?, ?)",
				ts.Format(civilFormat), 80+10*rng.Intn(10),
			)
			if err != nil {
				return fmt.Errorf("failed to seed bottle: %w", err)
			}
		}

		// Five to eight diapers.
		kinds := []string{"wet", "wet", "wet", "solid", "both"}
		for d := 0; d < 5+rng.Intn(4); d++ {
			ts := day.Add(time.Duration(6*60+rng.Intn(15*60)) * time.Minute)
			_, err := database.Exec(
				"INSERT INTO diaper (timestamp, type) VALUES (?, ?)",
				ts.Format(civilFormat), kinds[rng.Intn(len(kinds))],
			)
			if err != nil {
				return fmt.Errorf("failed to seed diaper: %w", err)
			}
		}

		// A temperature reading every few days.
		if rng.Intn(3) == 0 {
			ts := day.Add(time.Duration(17*60+rng.Intn(120)) * time.Minute)
			_, err := database.Exec(
				"INSERT INTO temperature (timestamp, value) VALUES (?, ?)",
				ts.Format(civilFormat), 36.2+rng.Float64()*1.4,
			)
			if err != nil {
				return fmt.Errorf("failed to seed temperature: %w", err)
			}
		}

		// Vitamin D is a daily routine for infants.
		ts := day.Add(time.Duration(8*60+rng.Intn(60)) * time.Minute)
		_, err := database.Exec(
			"INSERT INTO medicine (timestamp, name, dose) VALUES (?, ?, ?)",
			ts.Format(civilFormat), "Vitamin D", "1 drop",
		)
		if err != nil {
			return fmt.Errorf("failed to seed medicine: %w", err)
		}
	}

	return nil
}
