// Package civil contains the timestamp handling for the tracker. All stored
// timestamps are wall-clock ("civil") times in one fixed timezone; this
// package turns the heterogeneous strings found in the store back into
// time.Time values in that zone.
package civil

import (
	"fmt"
	"strings"
	"time"
)

// Format is the canonical storage format for civil timestamps.
const Format = "2006-01-02T15:04:05"

// FormatMinute is the storage format without seconds, as written by older
// clients and datetime-local form inputs.
const FormatMinute = "2006-01-02T15:04"

// DateFormat is the storage format for calendar dates.
const DateFormat = "2006-01-02"

// Parser parses timestamp text into the fixed civil timezone.
//
// Parsing is two-stage: a strict pass accepts the canonical storage formats
// and full RFC 3339; only when that fails does the lenient pass strip stray
// zone suffixes and fractional seconds left behind by legacy rows.
type Parser struct {
	Loc *time.Location

	// OnFallback, if set, is called with the raw text whenever the lenient
	// cleanup pass was needed. Hook for data-quality logging.
	OnFallback func(raw string)
}

// Parse converts timestamp text into the fixed timezone. The boolean is false
// when the text is unparseable; callers skip such records instead of failing
// the whole computation.
func (p Parser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Strict pass: canonical civil formats, then RFC 3339. A value that
	// carries its own zone is converted into the fixed zone rather than
	// having its wall-clock fields reinterpreted.
	if t, err := time.ParseInLocation(Format, s, p.Loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(FormatMinute, s, p.Loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(p.Loc), true
	}

	// Lenient pass for legacy/malformed rows.
	cleaned := cleanup(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(Format, cleaned, p.Loc); err == nil {
		p.fallback(s)
		return t, true
	}
	if t, err := time.ParseInLocation(FormatMinute, cleaned, p.Loc); err == nil {
		p.fallback(s)
		return t, true
	}

	return time.Time{}, false
}

func (p Parser) fallback(raw string) {
	if p.OnFallback != nil {
		p.OnFallback(raw)
	}
}

// cleanup strips a trailing Z, a trailing explicit offset of the form ±HH:MM,
// and fractional seconds. An offset suffix is only recognized when it is
// distinguishable from the date's own hyphens: at most six characters from
// the end and containing a colon.
func cleanup(s string) string {
	s = strings.TrimSuffix(s, "Z")

	if len(s) >= 6 {
		sign := s[len(s)-6]
		if (sign == '+' || sign == '-') && s[len(s)-3] == ':' {
			s = s[:len(s)-6]
		}
	}

	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		s = s[:dot]
	}

	return s
}

// ParseDate parses a calendar date string, returning midnight of that day in
// the fixed zone. Unlike Parse this is a boundary validation: bad input is an
// error, not a skip.
func (p Parser) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), p.Loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DayOf truncates a time to midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day. The
// comparison is on date fields, never on string prefixes.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateString formats the calendar date of t.
func DateString(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatTime writes a time in the canonical storage format.
func FormatTime(t time.Time) string {
	return t.Format(Format)
}
