package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
)

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

// Upsert relies on the deterministic habit+date id: a conflicting insert
// becomes an overwrite of the same row, which is exactly the
// at-most-one-entry-per-day contract.
func (r *PostgresEntryRepository) Upsert(ctx context.Context, entry *domain.HabitEntry) error {
	query := `
		INSERT INTO habit_entries (
			id, habit_id, user_id, entry_date, value, logged_at
		) VALUES (
			:id, :habit_id, :user_id, :entry_date, :value, :logged_at
		)
		ON CONFLICT (id) DO UPDATE SET
			value = EXCLUDED.value,
			logged_at = EXCLUDED.logged_at`

	_, err := r.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errors.New("referenced habit or user does not exist")
		}
		return err
	}
	return nil
}

func (r *PostgresEntryRepository) GetByKey(ctx context.Context, key domain.EntryKey) (*domain.HabitEntry, error) {
	var entry domain.HabitEntry
	query := `SELECT * FROM habit_entries WHERE habit_id = $1 AND entry_date = $2`

	err := r.db.GetContext(ctx, &entry, query, key.HabitID, key.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PostgresEntryRepository) Delete(ctx context.Context, key domain.EntryKey) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM habit_entries WHERE habit_id = $1 AND entry_date = $2`,
		key.HabitID, key.Date)
	return err
}

func (r *PostgresEntryRepository) DeleteByHabitID(ctx context.Context, habitID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habit_entries WHERE habit_id = $1`, habitID)
	return err
}

func (r *PostgresEntryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitEntry, error) {
	entries := []*domain.HabitEntry{}

	query := `SELECT * FROM habit_entries WHERE user_id = $1 ORDER BY entry_date`

	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresEntryRepository) ListByHabitID(ctx context.Context, habitID, from, to string) ([]*domain.HabitEntry, error) {
	entries := []*domain.HabitEntry{}

	query := `
		SELECT * FROM habit_entries
		WHERE habit_id = $1
		  AND entry_date >= $2
		  AND entry_date <= $3
		ORDER BY entry_date`

	if err := r.db.SelectContext(ctx, &entries, query, habitID, from, to); err != nil {
		return nil, err
	}
	return entries, nil
}
