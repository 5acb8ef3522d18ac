package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// FeedingRepository implements secondary.FeedingRepository with SQLite.
type FeedingRepository struct {
	db *sql.DB
}

// NewFeedingRepository creates a new SQLite feeding repository.
func NewFeedingRepository(db *sql.DB) *FeedingRepository {
	return &FeedingRepository{db: db}
}

// Create persists a new feeding and returns its ID.
func (r *FeedingRepository) Create(ctx context.Context, record *secondary.FeedingRecord) (int64, error) {
	var endTime sql.NullString
	if record.EndTime != "" {
		endTime = sql.NullString{String: record.EndTime, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO feeding (timestamp, side, end_time) VALUES (?, ?, ?)",
		record.Timestamp, record.Side, endTime,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create feeding: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read feeding id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a feeding by its ID.
func (r *FeedingRepository) GetByID(ctx context.Context, id int64) (*secondary.FeedingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, side, end_time, created_at FROM feeding WHERE id = ?",
		id,
	)

	record, err := scanFeeding(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("feeding %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feeding: %w", err)
	}
	return record, nil
}

// Update rewrites an existing feeding.
func (r *FeedingRepository) Update(ctx context.Context, record *secondary.FeedingRecord) error {
	var endTime sql.NullString
	if record.EndTime != "" {
		endTime = sql.NullString{String: record.EndTime, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE feeding SET timestamp = ?, side = ?, end_time = ? WHERE id = ?",
		record.Timestamp, record.Side, endTime, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update feeding: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("feeding %d not found", record.ID)
	}
	return nil
}

// Delete removes a feeding from persistence.
func (r *FeedingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM feeding WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete feeding: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("feeding %d not found", id)
	}
	return nil
}

// ListByRange retrieves feedings with timestamp in [startBound, endBound).
func (r *FeedingRepository) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.FeedingRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, timestamp, side, end_time, created_at FROM feeding WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		startBound, endBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedings: %w", err)
	}
	defer rows.Close()

	var records []*secondary.FeedingRecord
	for rows.Next() {
		record, err := scanFeeding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feeding: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Latest retrieves the most recent feeding, nil if none exist.
func (r *FeedingRepository) Latest(ctx context.Context) (*secondary.FeedingRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, side, end_time, created_at FROM feeding ORDER BY timestamp DESC LIMIT 1",
	)

	record, err := scanFeeding(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest feeding: %w", err)
	}
	return record, nil
}

func scanFeeding(s scanner) (*secondary.FeedingRecord, error) {
	var (
		endTime   sql.NullString
		createdAt time.Time
	)

	record := &secondary.FeedingRecord{}
	if err := s.Scan(&record.ID, &record.Timestamp, &record.Side, &endTime, &createdAt); err != nil {
		return nil, err
	}
	record.EndTime = endTime.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure FeedingRepository implements the interface
var _ secondary.FeedingRepository = (*FeedingRepository)(nil)
