package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrUnauthorized  = errors.New("unauthorized access")
)

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits owned by a user, archived ones
	// included (history stays queryable), ordered by sort order.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update replaces the stored state of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete permanently removes a habit. Entries are removed separately
	// via EntryRepository.DeleteByHabitID; the service layer cascades.
	Delete(ctx context.Context, id string) error
}
