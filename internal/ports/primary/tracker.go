// Package primary defines the primary ports (driving adapters) for the
// application. HTTP handlers and CLI commands speak to the services through
// these interfaces. Timestamps cross this boundary as civil-time strings in
// the configured timezone; an empty string means "now".
package primary

import "context"

// TrackerService defines the primary port for recording events.
type TrackerService interface {
	// StartSleep opens a new nap or night-sleep interval.
	StartSleep(ctx context.Context, req StartSleepRequest) (*SleepEvent, error)

	// EndSleep closes the open interval of the given kind.
	EndSleep(ctx context.Context, req EndSleepRequest) (*SleepEvent, error)

	// UpdateSleep rewrites an existing interval.
	UpdateSleep(ctx context.Context, req UpdateSleepRequest) (*SleepEvent, error)

	// DeleteSleep removes a sleep interval.
	DeleteSleep(ctx context.Context, id int64) error

	// ActiveSleep returns the open interval, nil when the baby is awake.
	ActiveSleep(ctx context.Context) (*SleepEvent, error)

	// StartWaking opens a night waking inside the current night sleep.
	StartWaking(ctx context.Context, req StartWakingRequest) (*WakingEvent, error)

	// EndWaking closes the open night waking.
	EndWaking(ctx context.Context, req EndWakingRequest) (*WakingEvent, error)

	// DeleteWaking removes a night waking.
	DeleteWaking(ctx context.Context, id int64) error

	// RecordFeeding records a breastfeeding event.
	RecordFeeding(ctx context.Context, req FeedingRequest) (*FeedingEvent, error)

	// UpdateFeeding rewrites an existing feeding.
	UpdateFeeding(ctx context.Context, id int64, req FeedingRequest) (*FeedingEvent, error)

	// DeleteFeeding removes a feeding.
	DeleteFeeding(ctx context.Context, id int64) error

	// RecordBottle records a bottle feed.
	RecordBottle(ctx context.Context, req BottleRequest) (*BottleEvent, error)

	// UpdateBottle rewrites an existing bottle feed.
	UpdateBottle(ctx context.Context, id int64, req BottleRequest) (*BottleEvent, error)

	// DeleteBottle removes a bottle feed.
	DeleteBottle(ctx context.Context, id int64) error

	// RecordDiaper records a diaper change.
	RecordDiaper(ctx context.Context, req DiaperRequest) (*DiaperEvent, error)

	// UpdateDiaper rewrites an existing diaper change.
	UpdateDiaper(ctx context.Context, id int64, req DiaperRequest) (*DiaperEvent, error)

	// DeleteDiaper removes a diaper change.
	DeleteDiaper(ctx context.Context, id int64) error

	// RecordTemperature records a body temperature reading.
	RecordTemperature(ctx context.Context, req TemperatureRequest) (*TemperatureEvent, error)

	// UpdateTemperature rewrites an existing reading.
	UpdateTemperature(ctx context.Context, id int64, req TemperatureRequest) (*TemperatureEvent, error)

	// DeleteTemperature removes a reading.
	DeleteTemperature(ctx context.Context, id int64) error

	// RecordMedicine records a medicine dose.
	RecordMedicine(ctx context.Context, req MedicineRequest) (*MedicineEvent, error)

	// UpdateMedicine rewrites an existing dose.
	UpdateMedicine(ctx context.Context, id int64, req MedicineRequest) (*MedicineEvent, error)

	// DeleteMedicine removes a dose.
	DeleteMedicine(ctx context.Context, id int64) error

	// DaySummary assembles the at-a-glance state for one day.
	DaySummary(ctx context.Context, date string) (*DaySummary, error)
}

// Sleep kind constants.
const (
	SleepKindNap   = "nap"
	SleepKindNight = "night"
)

// StartSleepRequest contains parameters for opening a sleep interval.
type StartSleepRequest struct {
	Kind      string // "nap" or "night"
	StartTime string // empty means now
}

// EndSleepRequest contains parameters for closing the open sleep interval.
type EndSleepRequest struct {
	Kind    string // "nap" or "night"; must match the open interval
	EndTime string // empty means now
}

// UpdateSleepRequest contains parameters for rewriting a sleep interval.
type UpdateSleepRequest struct {
	ID        int64
	Kind      string
	StartTime string
	EndTime   string // empty keeps the interval open
}

// SleepEvent represents a sleep interval at the port boundary.
type SleepEvent struct {
	ID        int64  `json:"id"`
	Kind      string `json:"type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
}

// StartWakingRequest contains parameters for opening a night waking.
type StartWakingRequest struct {
	StartTime string // empty means now
}

// EndWakingRequest contains parameters for closing the open night waking.
type EndWakingRequest struct {
	EndTime string // empty means now
}

// WakingEvent represents a night waking at the port boundary.
type WakingEvent struct {
	ID        int64  `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
}

// FeedingRequest contains parameters for a breastfeeding event.
type FeedingRequest struct {
	Timestamp string // empty means now
	Side      string // "left" or "right"
	EndTime   string // optional
}

// FeedingEvent represents a breastfeeding event at the port boundary.
type FeedingEvent struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Side      string `json:"side"`
	EndTime   string `json:"end_time,omitempty"`
}

// BottleRequest contains parameters for a bottle feed.
type BottleRequest struct {
	Timestamp string // empty means now
	Amount    int    // millilitres
}

// BottleEvent represents a bottle feed at the port boundary.
type BottleEvent struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Amount    int    `json:"amount"`
}

// DiaperRequest contains parameters for a diaper change.
type DiaperRequest struct {
	Timestamp string // empty means now
	Type      string // "wet", "solid" or "both"
}

// DiaperEvent represents a diaper change at the port boundary.
type DiaperEvent struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
}

// TemperatureRequest contains parameters for a temperature reading.
type TemperatureRequest struct {
	Timestamp string  // empty means now
	Value     float64 // Celsius
}

// TemperatureEvent represents a temperature reading at the port boundary.
type TemperatureEvent struct {
	ID        int64   `json:"id"`
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// MedicineRequest contains parameters for a medicine dose.
type MedicineRequest struct {
	Timestamp string // empty means now
	Name      string
	Dose      string
}

// MedicineEvent represents a medicine dose at the port boundary.
type MedicineEvent struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Dose      string `json:"dose"`
}

// DaySummary is the at-a-glance state for one day.
type DaySummary struct {
	Date        string        `json:"date"`
	Status      string        `json:"status"` // "awake", "napping" or "night_sleeping"
	HoursAsleep float64       `json:"hours_asleep"`
	AwakeSince  string        `json:"awake_since,omitempty"`
	LastFeeding *FeedingEvent `json:"last_feeding,omitempty"`
	LastDiaper  *DiaperEvent  `json:"last_diaper,omitempty"`
	ActiveSleep *SleepEvent   `json:"active_sleep,omitempty"`
}
