package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cradle/internal/ports/secondary"
)

// SuggestionRepository implements secondary.SuggestionRepository with SQLite.
type SuggestionRepository struct {
	db *sql.DB
}

// NewSuggestionRepository creates a new SQLite nap suggestion repository.
func NewSuggestionRepository(db *sql.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// GetForDate retrieves the cached suggestion for a civil date, nil if none.
func (r *SuggestionRepository) GetForDate(ctx context.Context, date string) (*secondary.SuggestionRecord, error) {
	var createdAt time.Time

	record := &secondary.SuggestionRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, date, suggested_time, created_at FROM nap_suggestion WHERE date = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		date,
	).Scan(&record.ID, &record.Date, &record.SuggestedTime, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nap suggestion: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// Replace removes any cached suggestion for the date and stores a new one,
// in a single transaction.
func (r *SuggestionRepository) Replace(ctx context.Context, date, suggestedTime string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin suggestion replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM nap_suggestion WHERE date = ?", date); err != nil {
		return fmt.Errorf("failed to clear nap suggestion: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO nap_suggestion (date, suggested_time) VALUES (?, ?)",
		date, suggestedTime,
	); err != nil {
		return fmt.Errorf("failed to store nap suggestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit nap suggestion: %w", err)
	}
	return nil
}

// DeleteForDate removes any cached suggestion for the date.
func (r *SuggestionRepository) DeleteForDate(ctx context.Context, date string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM nap_suggestion WHERE date = ?", date); err != nil {
		return fmt.Errorf("failed to delete nap suggestion: %w", err)
	}
	return nil
}

// Ensure SuggestionRepository implements the interface
var _ secondary.SuggestionRepository = (*SuggestionRepository)(nil)
