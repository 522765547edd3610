package services

import (
	"context"
	"fmt"

	"github.com/ritmo-app/ritmo-engine/internal/core/calendar"
	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/workers"
)

type HabitService struct {
	repo      domain.HabitRepository
	entryRepo domain.EntryRepository
	worker    *workers.SummaryWorker
}

func NewHabitService(repo domain.HabitRepository, entryRepo domain.EntryRepository, worker *workers.SummaryWorker) *HabitService {
	return &HabitService{
		repo:      repo,
		entryRepo: entryRepo,
		worker:    worker,
	}
}

type CreateHabitInput struct {
	UserID    string
	Title     string
	GoalType  string
	Kind      string
	Frequency string
	Unit      string
	Target    float64
}

type UpdateHabitInput struct {
	ID        string
	UserID    string
	Title     string
	GoalType  string
	Kind      string
	Frequency string
	Unit      string
	Target    float64
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(
		input.UserID,
		input.Title,
		input.GoalType,
		input.Kind,
		input.Frequency,
		input.Unit,
		calendar.Today(),
		input.Target,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: failed to create habit: %w", err)
	}

	s.notify(input.UserID)
	return habit, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.owned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := habit.Update(input.Title, input.GoalType, input.Kind, input.Frequency, input.Unit, input.Target); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.notify(input.UserID)
	return habit, nil
}

func (s *HabitService) Reposition(ctx context.Context, id, userID string, newOrder int) (*domain.Habit, error) {
	habit, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := habit.ChangePosition(newOrder); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Pause hides the habit from today onward; past days keep their history.
func (s *HabitService) Pause(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.lifecycle(ctx, id, userID, func(h *domain.Habit) error {
		return h.Pause(calendar.Today())
	})
}

func (s *HabitService) Unpause(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.lifecycle(ctx, id, userID, func(h *domain.Habit) error {
		h.Unpause()
		return nil
	})
}

// Archive soft-deletes from today onward. History is retained and the habit
// stays listed so past dates still count it.
func (s *HabitService) Archive(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.lifecycle(ctx, id, userID, func(h *domain.Habit) error {
		return h.Archive(calendar.Today())
	})
}

func (s *HabitService) Unarchive(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.lifecycle(ctx, id, userID, func(h *domain.Habit) error {
		h.Unarchive()
		return nil
	})
}

// Delete removes the habit and every one of its entries, irreversibly.
func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	habit, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.DeleteByHabitID(ctx, habit.ID); err != nil {
		return fmt.Errorf("habit service: failed to delete entries for habit %s: %w", habit.ID, err)
	}
	if err := s.repo.Delete(ctx, habit.ID); err != nil {
		return err
	}

	s.notify(userID)
	return nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.owned(ctx, id, userID)
}

func (s *HabitService) owned(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return habit, nil
}

func (s *HabitService) lifecycle(ctx context.Context, id, userID string, change func(*domain.Habit) error) (*domain.Habit, error) {
	habit, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := change(habit); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.notify(userID)
	return habit, nil
}

func (s *HabitService) notify(userID string) {
	if s.worker != nil {
		s.worker.Enqueue(userID, calendar.Today())
	}
}
