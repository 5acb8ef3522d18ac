package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// BabyRepository implements secondary.BabyRepository with SQLite. The profile
// table holds at most one row with id fixed at 1.
type BabyRepository struct {
	db *sql.DB
}

// NewBabyRepository creates a new SQLite baby profile repository.
func NewBabyRepository(db *sql.DB) *BabyRepository {
	return &BabyRepository{db: db}
}

// Get retrieves the profile, nil if none has been stored yet.
func (r *BabyRepository) Get(ctx context.Context) (*secondary.BabyRecord, error) {
	var updatedAt time.Time

	record := &secondary.BabyRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT name, birth_date, updated_at FROM baby_info WHERE id = 1",
	).Scan(&record.Name, &record.BirthDate, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baby profile: %w", err)
	}

	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Upsert creates or replaces the singleton profile row.
func (r *BabyRepository) Upsert(ctx context.Context, record *secondary.BabyRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO baby_info (id, name, birth_date) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, birth_date = excluded.birth_date, updated_at = CURRENT_TIMESTAMP`,
		record.Name, record.BirthDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert baby profile: %w", err)
	}
	return nil
}

// Ensure BabyRepository implements the interface
var _ secondary.BabyRepository = (*BabyRepository)(nil)
