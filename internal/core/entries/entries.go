// Package entries merges the different event kinds into one chronological
// feed. The service layer converts store records into Entry values; this
// package owns attribution, de-duplication and ordering.
package entries

import (
	"sort"
	"time"

	"github.com/example/cradle/internal/core/civil"
)

// Category identifies which table an entry came from.
type Category string

const (
	CategorySleep       Category = "sleep"
	CategoryFeeding     Category = "feeding"
	CategoryBottle      Category = "bottle"
	CategoryDiaper      Category = "diaper"
	CategoryTemperature Category = "temperature"
	CategoryMedicine    Category = "medicine"
)

// Entry is one row of the merged feed. Timestamp is the event's primary
// instant (start time for intervals); Day is the calendar day the entry is
// attributed to. Details carries category-specific fields for display.
type Entry struct {
	ID        int64
	Category  Category
	Timestamp time.Time
	Day       time.Time
	Label     string
	Details   map[string]any
}

// AttributedDay returns the day an interval belongs to: the end day when the
// interval is finished, the start day while it is still open. Point events
// pass their single timestamp as both bounds.
func AttributedDay(start, end time.Time) time.Time {
	if !end.IsZero() {
		return civil.DayOf(end)
	}
	return civil.DayOf(start)
}

// Dedupe drops repeated rows, identified by (category, id). Assembling a
// multi-day range from per-day windows can surface the same midnight-crossing
// interval twice; the first occurrence wins.
func Dedupe(list []Entry) []Entry {
	type key struct {
		cat Category
		id  int64
	}
	seen := make(map[key]bool, len(list))
	out := list[:0]
	for _, e := range list {
		k := key{e.Category, e.ID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// SortDay orders a single day's feed newest first.
func SortDay(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}

// SortRange orders a multi-day feed by attributed day, then timestamp, both
// ascending.
func SortRange(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Day.Equal(list[j].Day) {
			return list[i].Day.Before(list[j].Day)
		}
		return list[i].Timestamp.Before(list[j].Timestamp)
	})
}

// ForDay filters entries attributed to the given day and returns them newest
// first.
func ForDay(list []Entry, day time.Time) []Entry {
	day = civil.DayOf(day)
	var out []Entry
	for _, e := range list {
		if e.Day.Equal(day) {
			out = append(out, e)
		}
	}
	SortDay(out)
	return out
}

// ForRange de-duplicates and orders entries for the inclusive day range
// [start, end].
func ForRange(list []Entry, start, end time.Time) []Entry {
	start = civil.DayOf(start)
	end = civil.DayOf(end)
	var out []Entry
	for _, e := range Dedupe(list) {
		if e.Day.Before(start) || e.Day.After(end) {
			continue
		}
		out = append(out, e)
	}
	SortRange(out)
	return out
}
