package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// DiaperRepository implements secondary.DiaperRepository with SQLite.
type DiaperRepository struct {
	db *sql.DB
}

// NewDiaperRepository creates a new SQLite diaper repository.
func NewDiaperRepository(db *sql.DB) *DiaperRepository {
	return &DiaperRepository{db: db}
}

// Create persists a new diaper change and returns its ID.
func (r *DiaperRepository) Create(ctx context.Context, record *secondary.DiaperRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO diaper (timestamp, type) VALUES (?, ?)",
		record.Timestamp, record.Type,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create diaper change: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read diaper change id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a diaper change by its ID.
func (r *DiaperRepository) GetByID(ctx context.Context, id int64) (*secondary.DiaperRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, type, created_at FROM diaper WHERE id = ?",
		id,
	)

	record, err := scanDiaper(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("diaper change %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diaper change: %w", err)
	}
	return record, nil
}

// Update rewrites an existing diaper change.
func (r *DiaperRepository) Update(ctx context.Context, record *secondary.DiaperRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE diaper SET timestamp = ?, type = ? WHERE id = ?",
		record.Timestamp, record.Type, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update diaper change: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("diaper change %d not found", record.ID)
	}
	return nil
}

// Delete removes a diaper change from persistence.
func (r *DiaperRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM diaper WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete diaper change: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("diaper change %d not found", id)
	}
	return nil
}

// ListByRange retrieves diaper changes with timestamp in [startBound, endBound).
func (r *DiaperRepository) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.DiaperRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, timestamp, type, created_at FROM diaper WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		startBound, endBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list diaper changes: %w", err)
	}
	defer rows.Close()

	var records []*secondary.DiaperRecord
	for rows.Next() {
		record, err := scanDiaper(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diaper change: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Latest retrieves the most recent diaper change, nil if none exist.
func (r *DiaperRepository) Latest(ctx context.Context) (*secondary.DiaperRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, type, created_at FROM diaper ORDER BY timestamp DESC LIMIT 1",
	)

	record, err := scanDiaper(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest diaper change: %w", err)
	}
	return record, nil
}

func scanDiaper(s scanner) (*secondary.DiaperRecord, error) {
	var createdAt time.Time

	record := &secondary.DiaperRecord{}
	if err := s.Scan(&record.ID, &record.Timestamp, &record.Type, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure DiaperRepository implements the interface
var _ secondary.DiaperRepository = (*DiaperRepository)(nil)
