package services

import (
	"context"
	"errors"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/workers"
)

type EntryService struct {
	repo      domain.EntryRepository
	habitRepo domain.HabitRepository
	worker    *workers.SummaryWorker
}

func NewEntryService(repo domain.EntryRepository, habitRepo domain.HabitRepository, worker *workers.SummaryWorker) *EntryService {
	return &EntryService{
		repo:      repo,
		habitRepo: habitRepo,
		worker:    worker,
	}
}

type UpsertEntryInput struct {
	HabitID string
	UserID  string
	Date    string
	Value   float64
}

// Upsert writes the single entry for habit+date, overwriting any previous
// value for that day. Boolean habits are clamped to 0 or 1.
func (s *EntryService) Upsert(ctx context.Context, input UpsertEntryInput) (*domain.HabitEntry, error) {
	habit, err := s.ownedHabit(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}

	value := input.Value
	if habit.Kind == domain.KindBoolean && value > 1 {
		value = 1
	}

	entry := domain.NewHabitEntry(input.HabitID, input.UserID, input.Date, value)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	s.notify(input.UserID, input.Date)
	return entry, nil
}

// Adjust shifts the day's value by delta (negative to decrement). Dropping
// to zero or below deletes the entry, in which case the returned entry is
// nil. The repository serializes writes per key, so concurrent adjustments
// never tear a value.
func (s *EntryService) Adjust(ctx context.Context, habitID, userID, date string, delta float64) (*domain.HabitEntry, error) {
	if _, err := s.ownedHabit(ctx, habitID, userID); err != nil {
		return nil, err
	}

	key := domain.EntryKey{HabitID: habitID, Date: date}

	var current float64
	existing, err := s.repo.GetByKey(ctx, key)
	switch {
	case err == nil:
		current = existing.Value
	case errors.Is(err, domain.ErrEntryNotFound):
	default:
		return nil, err
	}

	next := current + delta
	if next <= 0 {
		if err := s.repo.Delete(ctx, key); err != nil {
			return nil, err
		}
		s.notify(userID, date)
		return nil, nil
	}

	return s.Upsert(ctx, UpsertEntryInput{HabitID: habitID, UserID: userID, Date: date, Value: next})
}

func (s *EntryService) Delete(ctx context.Context, habitID, userID, date string) error {
	if _, err := s.ownedHabit(ctx, habitID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, domain.EntryKey{HabitID: habitID, Date: date}); err != nil {
		return err
	}

	s.notify(userID, date)
	return nil
}

func (s *EntryService) ListByHabit(ctx context.Context, habitID, userID, from, to string) ([]*domain.HabitEntry, error) {
	if _, err := s.ownedHabit(ctx, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByHabitID(ctx, habitID, from, to)
}

func (s *EntryService) ownedHabit(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return habit, nil
}

func (s *EntryService) notify(userID, date string) {
	if s.worker != nil {
		s.worker.Enqueue(userID, date)
	}
}
