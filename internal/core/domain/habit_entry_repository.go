package domain

import (
	"context"
	"errors"
)

var (
	ErrEntryNotFound = errors.New("habit entry not found")
)

type EntryRepository interface {
	// Upsert inserts or overwrites the entry for its key. Because the id is
	// deterministic per habit+date, implementations must serialize writes to
	// a given key; last write wins.
	Upsert(ctx context.Context, entry *HabitEntry) error

	// GetByKey retrieves the entry for a habit+date, or ErrEntryNotFound.
	GetByKey(ctx context.Context, key EntryKey) (*HabitEntry, error)

	// Delete removes the entry for a habit+date if present.
	Delete(ctx context.Context, key EntryKey) error

	// DeleteByHabitID removes every entry of a habit (hard habit delete).
	DeleteByHabitID(ctx context.Context, habitID string) error

	// ListByUserID retrieves all entries owned by a user.
	ListByUserID(ctx context.Context, userID string) ([]*HabitEntry, error)

	// ListByHabitID retrieves a habit's entries with date in [from, to],
	// ordered by date ascending.
	ListByHabitID(ctx context.Context, habitID, from, to string) ([]*HabitEntry, error)
}
