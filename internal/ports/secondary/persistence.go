// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// the event store. All timestamps at this boundary are civil-time strings
// ("2006-01-02T15:04:05") in the configured timezone; an empty string means
// the column is NULL.
package secondary

import "context"

// SleepRepository defines the secondary port for sleep interval persistence.
type SleepRepository interface {
	// Create persists a new sleep interval and returns its ID.
	Create(ctx context.Context, record *SleepRecord) (int64, error)

	// GetByID retrieves a sleep interval by its ID.
	GetByID(ctx context.Context, id int64) (*SleepRecord, error)

	// GetOpen retrieves the open sleep interval, nil if the baby is awake.
	GetOpen(ctx context.Context) (*SleepRecord, error)

	// End closes an open interval with the given end time.
	End(ctx context.Context, id int64, endTime string) error

	// Update rewrites the type, start and end of an existing interval.
	Update(ctx context.Context, record *SleepRecord) error

	// Delete removes a sleep interval from persistence.
	Delete(ctx context.Context, id int64) error

	// ListOverlapping retrieves intervals overlapping the civil-time window
	// [startBound, endBound), including open intervals started before endBound.
	ListOverlapping(ctx context.Context, startBound, endBound string) ([]*SleepRecord, error)

	// LatestEnded retrieves the most recently ended interval, nil if no
	// interval has ended yet.
	LatestEnded(ctx context.Context) (*SleepRecord, error)
}

// SleepRecord represents a sleep interval as stored in persistence.
type SleepRecord struct {
	ID        int64
	Type      string // "nap" or "night"
	StartTime string
	EndTime   string // Empty string means null - interval in progress
	CreatedAt string
}

// WakingRepository defines the secondary port for night waking persistence.
type WakingRepository interface {
	// Create persists a new waking and returns its ID.
	Create(ctx context.Context, record *WakingRecord) (int64, error)

	// GetByID retrieves a waking by its ID.
	GetByID(ctx context.Context, id int64) (*WakingRecord, error)

	// GetOpen retrieves the open waking, nil if none is in progress.
	GetOpen(ctx context.Context) (*WakingRecord, error)

	// End closes an open waking with the given end time.
	End(ctx context.Context, id int64, endTime string) error

	// Update rewrites the start and end of an existing waking.
	Update(ctx context.Context, record *WakingRecord) error

	// Delete removes a waking from persistence.
	Delete(ctx context.Context, id int64) error

	// ListOverlapping retrieves wakings overlapping the civil-time window
	// [startBound, endBound), including an open waking started before endBound.
	ListOverlapping(ctx context.Context, startBound, endBound string) ([]*WakingRecord, error)
}

// WakingRecord represents a night waking as stored in persistence.
type WakingRecord struct {
	ID        int64
	StartTime string
	EndTime   string // Empty string means null - waking in progress
	CreatedAt string
}

// FeedingRepository defines the secondary port for breastfeeding persistence.
type FeedingRepository interface {
	// Create persists a new feeding and returns its ID.
	Create(ctx context.Context, record *FeedingRecord) (int64, error)

	// GetByID retrieves a feeding by its ID.
	GetByID(ctx context.Context, id int64) (*FeedingRecord, error)

	// Update rewrites an existing feeding.
	Update(ctx context.Context, record *FeedingRecord) error

	// Delete removes a feeding from persistence.
	Delete(ctx context.Context, id int64) error

	// ListByRange retrieves feedings with timestamp in [startBound, endBound).
	ListByRange(ctx context.Context, startBound, endBound string) ([]*FeedingRecord, error)

	// Latest retrieves the most recent feeding, nil if none exist.
	Latest(ctx context.Context) (*FeedingRecord, error)
}

// FeedingRecord represents a breastfeeding event as stored in persistence.
type FeedingRecord struct {
	ID        int64
	Timestamp string
	Side      string // "left" or "right"
	EndTime   string // Empty string means null
	CreatedAt string
}

// BottleRepository defines the secondary port for bottle feed persistence.
type BottleRepository interface {
	// Create persists a new bottle feed and returns its ID.
	Create(ctx context.Context, record *BottleRecord) (int64, error)

	// GetByID retrieves a bottle feed by its ID.
	GetByID(ctx context.Context, id int64) (*BottleRecord, error)

	// Update rewrites an existing bottle feed.
	Update(ctx context.Context, record *BottleRecord) error

	// Delete removes a bottle feed from persistence.
	Delete(ctx context.Context, id int64) error

	// ListByRange retrieves bottle feeds with timestamp in [startBound, endBound).
	ListByRange(ctx context.Context, startBound, endBound string) ([]*BottleRecord, error)
}

// BottleRecord represents a bottle feed as stored in persistence.
type BottleRecord struct {
	ID        int64
	Timestamp string
	Amount    int // millilitres
	CreatedAt string
}

// DiaperRepository defines the secondary port for diaper change persistence.
type DiaperRepository interface {
	// Create persists a new diaper change and returns its ID.
	Create(ctx context.Context, record *DiaperRecord) (int64, error)

	// GetByID retrieves a diaper change by its ID.
	GetByID(ctx context.Context, id int64) (*DiaperRecord, error)

	// Update rewrites an existing diaper change.
	Update(ctx context.Context, record *DiaperRecord) error

	// Delete removes a diaper change from persistence.
	Delete(ctx context.Context, id int64) error

	// ListByRange retrieves diaper changes with timestamp in [startBound, endBound).
	ListByRange(ctx context.Context, startBound, endBound string) ([]*DiaperRecord, error)

	// Latest retrieves the most recent diaper change, nil if none exist.
	Latest(ctx context.Context) (*DiaperRecord, error)
}

// DiaperRecord represents a diaper change as stored in persistence.
type DiaperRecord struct {
	ID        int64
	Timestamp string
	Type      string // "wet", "solid" or "both"
	CreatedAt string
}

// TemperatureRepository defines the secondary port for temperature persistence.
type TemperatureRepository interface {
	// Create persists a new reading and returns its ID.
	Create(ctx context.Context, record *TemperatureRecord) (int64, error)

	// GetByID retrieves a reading by its ID.
	GetByID(ctx context.Context, id int64) (*TemperatureRecord, error)

	// Update rewrites an existing reading.
	Update(ctx context.Context, record *TemperatureRecord) error

	// Delete removes a reading from persistence.
	Delete(ctx context.Context, id int64) error

	// ListByRange retrieves readings with timestamp in [startBound, endBound).
	ListByRange(ctx context.Context, startBound, endBound string) ([]*TemperatureRecord, error)
}

// TemperatureRecord represents a body temperature reading as stored in
// persistence.
type TemperatureRecord struct {
	ID        int64
	Timestamp string
	Value     float64 // Celsius
	CreatedAt string
}

// MedicineRepository defines the secondary port for medicine dose persistence.
type MedicineRepository interface {
	// Create persists a new dose and returns its ID.
	Create(ctx context.Context, record *MedicineRecord) (int64, error)

	// GetByID retrieves a dose by its ID.
	GetByID(ctx context.Context, id int64) (*MedicineRecord, error)

	// Update rewrites an existing dose.
	Update(ctx context.Context, record *MedicineRecord) error

	// Delete removes a dose from persistence.
	Delete(ctx context.Context, id int64) error

	// ListByRange retrieves doses with timestamp in [startBound, endBound).
	ListByRange(ctx context.Context, startBound, endBound string) ([]*MedicineRecord, error)
}

// MedicineRecord represents a medicine dose as stored in persistence.
type MedicineRecord struct {
	ID        int64
	Timestamp string
	Name      string
	Dose      string
	CreatedAt string
}

// BabyRepository defines the secondary port for the singleton baby profile.
type BabyRepository interface {
	// Get retrieves the profile, nil if none has been stored yet.
	Get(ctx context.Context) (*BabyRecord, error)

	// Upsert creates or replaces the singleton profile row.
	Upsert(ctx context.Context, record *BabyRecord) error
}

// BabyRecord represents the baby profile as stored in persistence.
type BabyRecord struct {
	Name      string
	BirthDate string // civil date, "2006-01-02"
	UpdatedAt string
}

// SuggestionRepository defines the secondary port for the per-date nap
// suggestion cache.
type SuggestionRepository interface {
	// GetForDate retrieves the cached suggestion for a civil date, nil if none.
	GetForDate(ctx context.Context, date string) (*SuggestionRecord, error)

	// Replace removes any cached suggestion for the date and stores a new one.
	Replace(ctx context.Context, date, suggestedTime string) error

	// DeleteForDate removes any cached suggestion for the date. Recording a
	// new actual nap supersedes the memo for that day.
	DeleteForDate(ctx context.Context, date string) error
}

// SuggestionRecord represents a memoized nap suggestion as stored in
// persistence.
type SuggestionRecord struct {
	ID            int64
	Date          string // civil date, "2006-01-02"
	SuggestedTime string
	CreatedAt     string
}
