package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// MedicineRepository implements secondary.MedicineRepository with SQLite.
type MedicineRepository struct {
	db *sql.DB
}

// NewMedicineRepository creates a new SQLite medicine repository.
func NewMedicineRepository(db *sql.DB) *MedicineRepository {
	return &MedicineRepository{db: db}
}

// Create persists a new dose and returns its ID.
func (r *MedicineRepository) Create(ctx context.Context, record *secondary.MedicineRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO medicine (timestamp, name, dose) VALUES (?, ?, ?)",
		record.Timestamp, record.Name, record.Dose,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create medicine dose: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read medicine dose id: %w", err)
	}
	return id, nil
}

// GetByID retrieves a dose by its ID.
func (r *MedicineRepository) GetByID(ctx context.Context, id int64) (*secondary.MedicineRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, timestamp, name, dose, created_at FROM medicine WHERE id = ?",
		id,
	)

	record, err := scanMedicine(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("medicine dose %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medicine dose: %w", err)
	}
	return record, nil
}

// Update rewrites an existing dose.
func (r *MedicineRepository) Update(ctx context.Context, record *secondary.MedicineRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE medicine SET timestamp = ?, name = ?, dose = ? WHERE id = ?",
		record.Timestamp, record.Name, record.Dose, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medicine dose: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("medicine dose %d not found", record.ID)
	}
	return nil
}

// Delete removes a dose from persistence.
func (r *MedicineRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM medicine WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete medicine dose: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("medicine dose %d not found", id)
	}
	return nil
}

// ListByRange retrieves doses with timestamp in [startBound, endBound).
func (r *MedicineRepository) ListByRange(ctx context.Context, startBound, endBound string) ([]*secondary.MedicineRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, timestamp, name, dose, created_at FROM medicine WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp",
		startBound, endBound,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicine doses: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MedicineRecord
	for rows.Next() {
		record, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medicine dose: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanMedicine(s scanner) (*secondary.MedicineRecord, error) {
	var createdAt time.Time

	record := &secondary.MedicineRecord{}
	if err := s.Scan(&record.ID, &record.Timestamp, &record.Name, &record.Dose, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Ensure MedicineRepository implements the interface
var _ secondary.MedicineRepository = (*MedicineRepository)(nil)
