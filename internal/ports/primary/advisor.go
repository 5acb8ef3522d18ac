package primary

import "context"

// AdvisorService defines the primary port for nap and bedtime suggestions.
type AdvisorService interface {
	// NextNap computes (and memoizes) the next nap suggestion for a date.
	// An empty date means today.
	NextNap(ctx context.Context, date string) (*NapSuggestion, error)

	// NextBedtime computes the bedtime suggestion for a date. An empty date
	// means today.
	NextBedtime(ctx context.Context, date string) (*BedtimeSuggestion, error)
}

// Suggestion status constants shared by both advisor answers.
const (
	SuggestionStatusOK      = "suggestion"
	SuggestionStatusWaiting = "waiting"
	SuggestionStatusNone    = "none"
)

// NapSuggestion is the advisor's answer for the next nap.
type NapSuggestion struct {
	Status          string  `json:"status"` // "suggestion", "waiting" or "none"
	Reason          string  `json:"reason,omitempty"`
	SuggestedTime   string  `json:"suggested_time,omitempty"`
	DurationHours   float64 `json:"duration_hours,omitempty"`
	WakeWindowHours float64 `json:"wake_window_hours,omitempty"`
	FromCache       bool    `json:"from_cache,omitempty"`
}

// BedtimeSuggestion is the advisor's answer for tonight.
type BedtimeSuggestion struct {
	Status             string  `json:"status"` // "suggestion" or "waiting"
	Reason             string  `json:"reason,omitempty"`
	SuggestedTime      string  `json:"suggested_time,omitempty"`
	NightHoursEstimate float64 `json:"night_hours_estimate,omitempty"`
	ExpectedWakeTime   string  `json:"expected_wake_time,omitempty"`
	DaySleepSoFar      float64 `json:"day_sleep_so_far"`
	TargetDaySleep     float64 `json:"target_day_sleep"`
	RemainingDaySleep  float64 `json:"remaining_day_sleep"`
	HoursAwake         float64 `json:"hours_awake"`
}
