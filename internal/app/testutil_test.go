package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/example/cradle/internal/core/civil"
	"github.com/example/cradle/internal/ports/secondary"
)

// ============================================================================
// Shared fixtures
// ============================================================================

var testLoc = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		panic(err)
	}
	return loc
}()

// testNow is Sunday 2024-03-10 14:00 local, the fixed "now" for service tests.
var testNow = time.Date(2024, 3, 10, 14, 0, 0, 0, testLoc)

func testParser() *civil.Parser {
	return &civil.Parser{Loc: testLoc}
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func fixedNow() time.Time {
	return testNow
}

// ts builds a civil timestamp string on the fixed test day plus a day offset.
func ts(dayOffset, hh, mm int) string {
	return civil.FormatTime(time.Date(2024, 3, 10+dayOffset, hh, mm, 0, 0, testLoc))
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockSleepRepo implements secondary.SleepRepository in memory.
type mockSleepRepo struct {
	records   map[int64]*secondary.SleepRecord
	nextID    int64
	createErr error
	getErr    error
	listErr   error
}

func newMockSleepRepo() *mockSleepRepo {
	return &mockSleepRepo{records: make(map[int64]*secondary.SleepRecord)}
}

func (m *mockSleepRepo) add(kind, start, end string) int64 {
	m.nextID++
	m.records[m.nextID] = &secondary.SleepRecord{
		ID:        m.nextID,
		Type:      kind,
		StartTime: start,
		EndTime:   end,
	}
	return m.nextID
}

func (m *mockSleepRepo) Create(ctx context.Context, record *secondary.SleepRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	// Mirrors the store's partial unique index on open intervals.
	for _, r := range m.records {
		if r.EndTime == "" && record.EndTime == "" {
			return 0, errors.New("failed to create sleep interval: constraint failed")
		}
	}
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockSleepRepo) GetByID(ctx context.Context, id int64) (*secondary.SleepRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("sleep interval not found")
}

func (m *mockSleepRepo) GetOpen(ctx context.Context) (*secondary.SleepRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, r := range m.records {
		if r.EndTime == "" {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockSleepRepo) End(ctx context.Context, id int64, endTime string) error {
	r, ok := m.records[id]
	if !ok || r.EndTime != "" {
		return errors.New("sleep interval not found or already ended")
	}
	r.EndTime = endTime
	return nil
}

func (m *mockSleepRepo) Update(ctx context.Context, record *secondary.SleepRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("sleep interval not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockSleepRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("sleep interval not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockSleepRepo) ListOverlapping(ctx context.Context, startBound, endBound string) ([]*secondary.SleepRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.SleepRecord
	for _, r := range m.records {
		if r.StartTime < endBound && (r.EndTime == "" || r.EndTime >= startBound) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockSleepRepo) LatestEnded(ctx context.Context) (*secondary.SleepRecord, error) {
	var latest *secondary.SleepRecord
	for _, r := range m.records {
		if r.EndTime == "" {
			continue
		}
		if latest == nil || r.EndTime > latest.EndTime {
			latest = r
		}
	}
	return latest, nil
}

// mockWakingRepo implements secondary.WakingRepository in memory.
type mockWakingRepo struct {
	records map[int64]*secondary.WakingRecord
	nextID  int64
}

func newMockWakingRepo() *mockWakingRepo {
	return &mockWakingRepo{records: make(map[int64]*secondary.WakingRecord)}
}

func (m *mockWakingRepo) add(start, end string) int64 {
	m.nextID++
	m.records[m.nextID] = &secondary.WakingRecord{ID: m.nextID, StartTime: start, EndTime: end}
	return m.nextID
}

func (m *mockWakingRepo) Create(ctx context.Context, record *secondary.WakingRecord) (int64, error) {
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockWakingRepo) GetByID(ctx context.Context, id int64) (*secondary.WakingRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("night waking not found")
}

func (m *mockWakingRepo) GetOpen(ctx context.Context) (*secondary.WakingRecord, error) {
	for _, r := range m.records {
		if r.EndTime == "" {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockWakingRepo) End(ctx context.Context, id int64, endTime string) error {
	r, ok := m.records[id]
	if !ok || r.EndTime != "" {
		return errors.New("night waking not found or already ended")
	}
	r.EndTime = endTime
	return nil
}

func (m *mockWakingRepo) Update(ctx context.Context, record *secondary.WakingRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("night waking not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockWakingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("night waking not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockWakingRepo) ListOverlapping(ctx context.Context, startBound, endBound string) ([]*secondary.WakingRecord, error) {
	var result []*secondary.WakingRecord
	for _, r := range m.records {
		if r.StartTime < endBound && (r.EndTime == "" || r.EndTime >= startBound) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

// mockFeedingRepo implements secondary.FeedingRepository in memory.
type mockFeedingRepo struct {
	records map[int64]*secondary.FeedingRecord
	nextID  int64
}

func newMockFeedingRepo() *mockFeedingRepo {
	return &mockFeedingRepo{records: make(map[int64]*secondary.FeedingRecord)}
}

func (m *mockFeedingRepo) add(timestamp, side string) int64 {
	m.nextID++
	m.records[m.nextID] = &secondary.FeedingRecord{ID: m.nextID, Timestamp: timestamp, Side: side}
	return m.nextID
}

func (m *mockFeedingRepo) Create(ctx context.Context, record *secondary.FeedingRecord) (int64, error) {
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockFeedingRepo) GetByID(ctx context.Context, id int64) (*secondary.FeedingRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("feeding not found")
}

func (m *mockFeedingRepo) Update(ctx context.Context, record *secondary.FeedingRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("feeding not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockFeedingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("feeding not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockFeedingRepo) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.FeedingRecord, error) {
	var result []*secondary.FeedingRecord
	for _, r := range m.records {
		if r.Timestamp >= startBound && r.Timestamp < endBound {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp < result[j].Timestamp })
	return result, nil
}

func (m *mockFeedingRepo) Latest(ctx context.Context) (*secondary.FeedingRecord, error) {
	var latest *secondary.FeedingRecord
	for _, r := range m.records {
		if latest == nil || r.Timestamp > latest.Timestamp {
			latest = r
		}
	}
	return latest, nil
}

// mockBottleRepo implements secondary.BottleRepository in memory.
type mockBottleRepo struct {
	records map[int64]*secondary.BottleRecord
	nextID  int64
}

func newMockBottleRepo() *mockBottleRepo {
	return &mockBottleRepo{records: make(map[int64]*secondary.BottleRecord)}
}

func (m *mockBottleRepo) add(timestamp string, amount int) int64 {
	m.nextID++
	m.records[m.nextID] = &secondary.BottleRecord{ID: m.nextID, Timestamp: timestamp, Amount: amount}
	return m.nextID
}

func (m *mockBottleRepo) Create(ctx context.Context, record *secondary.BottleRecord) (int64, error) {
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockBottleRepo) GetByID(ctx context.Context, id int64) (*secondary.BottleRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("bottle feed not found")
}

func (m *mockBottleRepo) Update(ctx context.Context, record *secondary.BottleRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("bottle feed not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockBottleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("bottle feed not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockBottleRepo) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.BottleRecord, error) {
	var result []*secondary.BottleRecord
	for _, r := range m.records {
		if r.Timestamp >= startBound && r.Timestamp < endBound {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp < result[j].Timestamp })
	return result, nil
}

// mockDiaperRepo implements secondary.DiaperRepository in memory.
type mockDiaperRepo struct {
	records map[int64]*secondary.DiaperRecord
	nextID  int64
}

func newMockDiaperRepo() *mockDiaperRepo {
	return &mockDiaperRepo{records: make(map[int64]*secondary.DiaperRecord)}
}

func (m *mockDiaperRepo) add(timestamp, diaperType string) int64 {
	m.nextID++
	m.records[m.nextID] = &secondary.DiaperRecord{ID: m.nextID, Timestamp: timestamp, Type: diaperType}
	return m.nextID
}

func (m *mockDiaperRepo) Create(ctx context.Context, record *secondary.DiaperRecord) (int64, error) {
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockDiaperRepo) GetByID(ctx context.Context, id int64) (*secondary.DiaperRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("diaper change not found")
}

func (m *mockDiaperRepo) Update(ctx context.Context, record *secondary.DiaperRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("diaper change not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockDiaperRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("diaper change not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockDiaperRepo) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.DiaperRecord, error) {
	var result []*secondary.DiaperRecord
	for _, r := range m.records {
		if r.Timestamp >= startBound && r.Timestamp < endBound {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp < result[j].Timestamp })
	return result, nil
}

func (m *mockDiaperRepo) Latest(ctx context.Context) (*secondary.DiaperRecord, error) {
	var latest *secondary.DiaperRecord
	for _, r := range m.records {
		if latest == nil || r.Timestamp > latest.Timestamp {
			latest = r
		}
	}
	return latest, nil
}

// mockTemperatureRepo implements secondary.TemperatureRepository in memory.
type mockTemperatureRepo struct {
	records map[int64]*secondary.TemperatureRecord
	nextID  int64
}

func newMockTemperatureRepo() *mockTemperatureRepo {
	return &mockTemperatureRepo{records: make(map[int64]*secondary.TemperatureRecord)}
}

func (m *mockTemperatureRepo) add(timestamp string, value float64) int64 {
	m.nextID++
	m.records[m.nextID] = &secondary.TemperatureRecord{ID: m.nextID, Timestamp: timestamp, Value: value}
	return m.nextID
}

func (m *mockTemperatureRepo) Create(ctx context.Context, record *secondary.TemperatureRecord) (int64, error) {
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockTemperatureRepo) GetByID(ctx context.Context, id int64) (*secondary.TemperatureRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("temperature reading not found")
}

func (m *mockTemperatureRepo) Update(ctx context.Context, record *secondary.TemperatureRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("temperature reading not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockTemperatureRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("temperature reading not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockTemperatureRepo) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.TemperatureRecord, error) {
	var result []*secondary.TemperatureRecord
	for _, r := range m.records {
		if r.Timestamp >= startBound && r.Timestamp < endBound {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp < result[j].Timestamp })
	return result, nil
}

// mockMedicineRepo implements secondary.MedicineRepository in memory.
type mockMedicineRepo struct {
	records map[int64]*secondary.MedicineRecord
	nextID  int64
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{records: make(map[int64]*secondary.MedicineRecord)}
}

func (m *mockMedicineRepo) Create(ctx context.Context, record *secondary.MedicineRecord) (int64, error) {
	m.nextID++
	record.ID = m.nextID
	m.records[record.ID] = record
	return record.ID, nil
}

func (m *mockMedicineRepo) GetByID(ctx context.Context, id int64) (*secondary.MedicineRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, errors.New("medicine dose not found")
}

func (m *mockMedicineRepo) Update(ctx context.Context, record *secondary.MedicineRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return errors.New("medicine dose not found")
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockMedicineRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return errors.New("medicine dose not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockMedicineRepo) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.MedicineRecord, error) {
	var result []*secondary.MedicineRecord
	for _, r := range m.records {
		if r.Timestamp >= startBound && r.Timestamp < endBound {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp < result[j].Timestamp })
	return result, nil
}

// mockBabyRepo implements secondary.BabyRepository in memory.
type mockBabyRepo struct {
	record    *secondary.BabyRecord
	upsertErr error
}

func (m *mockBabyRepo) Get(ctx context.Context) (*secondary.BabyRecord, error) {
	return m.record, nil
}

func (m *mockBabyRepo) Upsert(ctx context.Context, record *secondary.BabyRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.record = &secondary.BabyRecord{Name: record.Name, BirthDate: record.BirthDate}
	return nil
}

// mockSuggestionRepo implements secondary.SuggestionRepository in memory.
type mockSuggestionRepo struct {
	byDate     map[string]*secondary.SuggestionRecord
	replaceErr error
	replaces   int
}

func newMockSuggestionRepo() *mockSuggestionRepo {
	return &mockSuggestionRepo{byDate: make(map[string]*secondary.SuggestionRecord)}
}

func (m *mockSuggestionRepo) GetForDate(ctx context.Context, date string) (*secondary.SuggestionRecord, error) {
	return m.byDate[date], nil
}

func (m *mockSuggestionRepo) Replace(ctx context.Context, date, suggestedTime string) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaces++
	m.byDate[date] = &secondary.SuggestionRecord{Date: date, SuggestedTime: suggestedTime}
	return nil
}

func (m *mockSuggestionRepo) DeleteForDate(ctx context.Context, date string) error {
	delete(m.byDate, date)
	return nil
}

// Interface checks for the mocks.
var (
	_ secondary.SleepRepository       = (*mockSleepRepo)(nil)
	_ secondary.WakingRepository      = (*mockWakingRepo)(nil)
	_ secondary.FeedingRepository     = (*mockFeedingRepo)(nil)
	_ secondary.BottleRepository      = (*mockBottleRepo)(nil)
	_ secondary.DiaperRepository      = (*mockDiaperRepo)(nil)
	_ secondary.TemperatureRepository = (*mockTemperatureRepo)(nil)
	_ secondary.MedicineRepository    = (*mockMedicineRepo)(nil)
	_ secondary.BabyRepository        = (*mockBabyRepo)(nil)
	_ secondary.SuggestionRepository  = (*mockSuggestionRepo)(nil)
)
