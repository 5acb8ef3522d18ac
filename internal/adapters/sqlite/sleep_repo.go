// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// SleepRepository implements secondary.SleepRepository with SQLite.
type SleepRepository struct {
	db *sql.DB
}

// NewSleepRepository creates a new SQLite sleep repository.
func NewSleepRepository(db *sql.DB) *SleepRepository {
	return &SleepRepository{db: db}
}

// Create persists a new sleep interval and returns its ID.
func (r *SleepRepository) Create(ctx context.Context, record *secondary.SleepRecord) (int64, error) {
	var endTime sql.NullString
	if record.EndTime != "" {
		endTime = sql.NullString{String: record.EndTime, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO sleep (type, start_time, end_time) VALUES (?, ?, ?)",
		record.Type, record.StartTime, endTime,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create sleep interval: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read sleep interval id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a sleep interval by its ID.
func (r *SleepRepository) GetByID(ctx context.Context, id int64) (*secondary.SleepRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, type, start_time, end_time, created_at FROM sleep WHERE id = ?",
		id,
	)

	record, err := scanSleep(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sleep interval %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep interval: %w", err)
	}
	return record, nil
}

// GetOpen retrieves the open sleep interval, nil if the baby is awake.
func (r *SleepRepository) GetOpen(ctx context.Context) (*secondary.SleepRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, type, start_time, end_time, created_at FROM sleep WHERE end_time IS NULL LIMIT 1",
	)

	record, err := scanSleep(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open sleep interval: %w", err)
	}
	return record, nil
}

// End closes an open interval with the given end time.
func (r *SleepRepository) End(ctx context.Context, id int64, endTime string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sleep SET end_time = ? WHERE id = ? AND end_time IS NULL",
		endTime, id,
	)
	if err != nil {
		return fmt.Errorf("failed to end sleep interval: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("sleep interval %d not found or already ended", id)
	}
	return nil
}

// Update rewrites the type, start and end of an existing interval.
func (r *SleepRepository) Update(ctx context.Context, record *secondary.SleepRecord) error {
	var endTime sql.NullString
	if record.EndTime != "" {
		endTime = sql.NullString{String: record.EndTime, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE sleep SET type = ?, start_time = ?, end_time = ? WHERE id = ?",
		record.Type, record.StartTime, endTime, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sleep interval: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("sleep interval %d not found", record.ID)
	}
	return nil
}

// Delete removes a sleep interval from persistence.
func (r *SleepRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sleep WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete sleep interval: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("sleep interval %d not found", id)
	}
	return nil
}

// ListOverlapping retrieves intervals overlapping the civil-time window
// [startBound, endBound). Civil strings sort lexicographically, so string
// comparison in SQL matches chronological order.
func (r *SleepRepository) ListOverlapping(ctx context.Context, startBound, endBound string) ([]*secondary.SleepRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, type, start_time, end_time, created_at FROM sleep WHERE start_time < ? AND (end_time IS NULL OR end_time >= ?) ORDER BY start_time",
		endBound, startBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep intervals: %w", err)
	}
	defer rows.Close()

	var records []*secondary.SleepRecord
	for rows.Next() {
		record, err := scanSleep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sleep interval: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// LatestEnded retrieves the most recently ended interval, nil if no interval
// has ended yet.
func (r *SleepRepository) LatestEnded(ctx context.Context) (*secondary.SleepRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, type, start_time, end_time, created_at FROM sleep WHERE end_time IS NOT NULL ORDER BY end_time DESC LIMIT 1",
	)

	record, err := scanSleep(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest ended sleep: %w", err)
	}
	return record, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSleep(s scanner) (*secondary.SleepRecord, error) {
	var (
		endTime   sql.NullString
		createdAt time.Time
	)

	record := &secondary.SleepRecord{}
	if err := s.Scan(&record.ID, &record.Type, &record.StartTime, &endTime, &createdAt); err != nil {
		return nil, err
	}
	record.EndTime = endTime.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure SleepRepository implements the interface
var _ secondary.SleepRepository = (*SleepRepository)(nil)
