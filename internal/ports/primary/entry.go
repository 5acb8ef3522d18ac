package primary

import "context"

// EntryService defines the primary port for the merged chronological feed.
type EntryService interface {
	// EntriesForDay returns one day's entries, newest first.
	EntriesForDay(ctx context.Context, date string) ([]*Entry, error)

	// EntriesForRange returns entries for the inclusive day range [start, end],
	// ordered by (attributed day, timestamp) ascending and de-duplicated.
	EntriesForRange(ctx context.Context, start, end string) ([]*Entry, error)
}

// Entry is one row of the merged feed at the port boundary.
type Entry struct {
	ID        int64          `json:"id"`
	Category  string         `json:"category"`
	Timestamp string         `json:"timestamp"`
	Day       string         `json:"day"`
	Label     string         `json:"label"`
	Details   map[string]any `json:"details,omitempty"`
}
