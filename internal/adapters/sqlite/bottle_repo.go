package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// BottleRepository implements secondary.BottleRepository with SQLite.
type BottleRepository struct {
	db *sql.DB
}

// NewBottleRepository creates a new SQLite bottle feed repository.
func NewBottleRepository(db *sql.DB) *BottleRepository {
	return &BottleRepository{db: db}
}

// Create persists a new bottle feed and returns its ID.
func (r *BottleRepository) Create(ctx context.Context, record *secondary.BottleRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO bottle (timestamp, amount) VALUES (?, ?)",
		record.Timestamp, record.Amount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create bottle feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read bottle feed id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a bottle feed by its ID.
func (r *BottleRepository) GetByID(ctx context.Context, id int64) (*secondary.BottleRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, amount, created_at FROM bottle WHERE id = ?",
		id,
	)

	record, err := scanBottle(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bottle feed %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bottle feed: %w", err)
	}
	return record, nil
}

// Update rewrites an existing bottle feed.
func (r *BottleRepository) Update(ctx context.Context, record *secondary.BottleRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE bottle SET timestamp = ?, amount = ? WHERE id = ?",
		record.Timestamp, record.Amount, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bottle feed: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("bottle feed %d not found", record.ID)
	}
	return nil
}

// Delete removes a bottle feed from persistence.
func (r *BottleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bottle WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bottle feed: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("bottle feed %d not found", id)
	}
	return nil
}

// ListByRange retrieves bottle feeds with timestamp in [startBound, endBound).
func (r *BottleRepository) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.BottleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, timestamp, amount, created_at FROM bottle WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		startBound, endBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bottle feeds: %w", err)
	}
	defer rows.Close()

	var records []*secondary.BottleRecord
	for rows.Next() {
		record, err := scanBottle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bottle feed: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanBottle(s scanner) (*secondary.BottleRecord, error) {
	var createdAt time.Time

	record := &secondary.BottleRecord{}
	if err := s.Scan(&record.ID, &record.Timestamp, &record.Amount, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure BottleRepository implements the interface
var _ secondary.BottleRepository = (*BottleRepository)(nil)
