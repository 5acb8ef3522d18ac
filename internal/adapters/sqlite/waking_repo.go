package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// WakingRepository implements secondary.WakingRepository with SQLite.
type WakingRepository struct {
	db *sql.DB
}

// NewWakingRepository creates a new SQLite night waking repository.
func NewWakingRepository(db *sql.DB) *WakingRepository {
	return &WakingRepository{db: db}
}

// Create persists a new waking and returns its ID.
func (r *WakingRepository) Create(ctx context.Context, record *secondary.WakingRecord) (int64, error) {
	var endTime sql.NullString
	if record.EndTime != "" {
		endTime = sql.NullString{String: record.EndTime, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO night_waking (start_time, end_time) VALUES (?, ?)",
		record.StartTime, endTime,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create night waking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read night waking id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a waking by its ID.
func (r *WakingRepository) GetByID(ctx context.Context, id int64) (*secondary.WakingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, start_time, end_time, created_at FROM night_waking WHERE id = ?",
		id,
	)

	record, err := scanWaking(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("night waking %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get night waking: %w", err)
	}
	return record, nil
}

// GetOpen retrieves the open waking, nil if none is in progress.
func (r *WakingRepository) GetOpen(ctx context.Context) (*secondary.WakingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, start_time, end_time, created_at FROM night_waking WHERE end_time IS NULL LIMIT 1",
	)

	record, err := scanWaking(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open night waking: %w", err)
	}
	return record, nil
}

// End closes an open waking with the given end time.
func (r *WakingRepository) End(ctx context.Context, id int64, endTime string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE night_waking SET end_time = ? WHERE id = ? AND end_time IS NULL",
		endTime, id,
	)
	if err != nil {
		return fmt.Errorf("failed to end night waking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("night waking %d not found or already ended", id)
	}
	return nil
}

// Update rewrites the start and end of an existing waking.
func (r *WakingRepository) Update(ctx context.Context, record *secondary.WakingRecord) error {
	var endTime sql.NullString
	if record.EndTime != "" {
		endTime = sql.NullString{String: record.EndTime, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE night_waking SET start_time = ?, end_time = ? WHERE id = ?",
		record.StartTime, endTime, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update night waking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("night waking %d not found", record.ID)
	}
	return nil
}

// Delete removes a waking from persistence.
func (r *WakingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM night_waking WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete night waking: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("night waking %d not found", id)
	}
	return nil
}

// ListOverlapping retrieves wakings overlapping the civil-time window
// [startBound, endBound).
func (r *WakingRepository) ListOverlapping(ctx context.Context, startBound, endBound string) ([]*secondary.WakingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, start_time, end_time, created_at FROM night_waking WHERE start_time < ? AND (end_time IS NULL OR end_time >= ?) ORDER BY start_time",
		endBound, startBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list night wakings: %w", err)
	}
	defer rows.Close()

	var records []*secondary.WakingRecord
	for rows.Next() {
		record, err := scanWaking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan night waking: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanWaking(s scanner) (*secondary.WakingRecord, error) {
	var (
		endTime   sql.NullString
		createdAt time.Time
	)

	record := &secondary.WakingRecord{}
	if err := s.Scan(&record.ID, &record.StartTime, &endTime, &createdAt); err != nil {
		return nil, err
	}
	record.EndTime = endTime.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure WakingRepository implements the interface
var _ secondary.WakingRepository = (*WakingRepository)(nil)
