package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// TemperatureRepository implements secondary.TemperatureRepository with SQLite.
type TemperatureRepository struct {
	db *sql.DB
}

// NewTemperatureRepository creates a new SQLite temperature repository.
func NewTemperatureRepository(db *sql.DB) *TemperatureRepository {
	return &TemperatureRepository{db: db}
}

// Create persists a new reading and returns its ID.
func (r *TemperatureRepository) Create(ctx context.Context, record *secondary.TemperatureRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO temperature (timestamp, value) VALUES (?, ?)",
		record.Timestamp, record.Value,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create temperature reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read temperature reading id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a reading by its ID.
func (r *TemperatureRepository) GetByID(ctx context.Context, id int64) (*secondary.TemperatureRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, value, created_at FROM temperature WHERE id = ?",
		id,
	)

	record, err := scanTemperature(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("temperature reading %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get temperature reading: %w", err)
	}
	return record, nil
}

// Update rewrites an existing reading.
func (r *TemperatureRepository) Update(ctx context.Context, record *secondary.TemperatureRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE temperature SET timestamp = ?, value = ? WHERE id = ?",
		record.Timestamp, record.Value, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update temperature reading: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("temperature reading %d not found", record.ID)
	}
	return nil
}

// Delete removes a reading from persistence.
func (r *TemperatureRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM temperature WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete temperature reading: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("temperature reading %d not found", id)
	}
	return nil
}

// ListByRange retrieves readings with timestamp in [startBound, endBound).
func (r *TemperatureRepository) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.TemperatureRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, timestamp, value, created_at FROM temperature WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		startBound, endBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list temperature readings: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TemperatureRecord
	for rows.Next() {
		record, err := scanTemperature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan temperature reading: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanTemperature(s scanner) (*secondary.TemperatureRecord, error) {
	var createdAt time.Time

	record := &secondary.TemperatureRecord{}
	if err := s.Scan(&record.ID, &record.Timestamp, &record.Value, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure TemperatureRepository implements the interface
var _ secondary.TemperatureRepository = (*TemperatureRepository)(nil)
