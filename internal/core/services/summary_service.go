package services

import (
	"context"
	"log"

	"github.com/ritmo-app/ritmo-engine/internal/core/calendar"
	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/metrics"
)

// DaySummaryCache is an optional read-through cache for day summaries. A miss
// is (nil, nil); cache failures are logged and treated as misses.
type DaySummaryCache interface {
	GetDaySummary(ctx context.Context, userID, date string) (*metrics.DaySummary, error)
	SetDaySummary(ctx context.Context, userID string, summary metrics.DaySummary) error
}

// SummaryService is the single source of truth for derived metrics: every
// reader of a date's numbers goes through here, so the home ring, the
// calendar grid and the charts can never disagree.
type SummaryService struct {
	habitRepo    domain.HabitRepository
	entryRepo    domain.EntryRepository
	settingsRepo domain.SettingsRepository
	cache        DaySummaryCache
}

func NewSummaryService(habitRepo domain.HabitRepository, entryRepo domain.EntryRepository, settingsRepo domain.SettingsRepository, cache DaySummaryCache) *SummaryService {
	return &SummaryService{
		habitRepo:    habitRepo,
		entryRepo:    entryRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
	}
}

func (s *SummaryService) load(ctx context.Context, userID string) ([]*domain.Habit, metrics.Index, int, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	entries, err := s.entryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	settings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	return habits, metrics.NewIndex(entries), settings.WeekStartsOn, nil
}

func (s *SummaryService) DaySummary(ctx context.Context, userID, date string) (metrics.DaySummary, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDaySummary(ctx, userID, date)
		if err != nil {
			log.Printf("[CACHE] summary read error for user %s: %v", userID, err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	habits, ix, weekStartsOn, err := s.load(ctx, userID)
	if err != nil {
		return metrics.DaySummary{}, err
	}

	summary := metrics.ComputeDaySummary(habits, ix, date, weekStartsOn)

	if s.cache != nil {
		if err := s.cache.SetDaySummary(ctx, userID, summary); err != nil {
			log.Printf("[CACHE] summary write error for user %s: %v", userID, err)
		}
	}

	return summary, nil
}

// Series produces chart-ready buckets for a range ending at end. habitID may
// be empty for the all-habits series.
func (s *SummaryService) Series(ctx context.Context, userID string, r metrics.Range, end, habitID string) ([]metrics.BarPoint, error) {
	habits, ix, weekStartsOn, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if habitID != "" {
		if _, err := s.ownedHabit(habits, habitID); err != nil {
			return nil, err
		}
	}

	return metrics.Series(habits, ix, r, end, weekStartsOn, habitID), nil
}

func (s *SummaryService) Streak(ctx context.Context, userID string) (int, error) {
	habits, ix, weekStartsOn, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return metrics.Streak(habits, ix, calendar.Today(), weekStartsOn), nil
}

func (s *SummaryService) HabitStreak(ctx context.Context, userID, habitID string) (int, error) {
	habits, ix, weekStartsOn, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}

	habit, err := s.ownedHabit(habits, habitID)
	if err != nil {
		return 0, err
	}

	return metrics.HabitStreak(habit, ix, calendar.Today(), weekStartsOn), nil
}

func (s *SummaryService) ownedHabit(habits []*domain.Habit, habitID string) (*domain.Habit, error) {
	for _, h := range habits {
		if h.ID == habitID {
			return h, nil
		}
	}
	return nil, domain.ErrHabitNotFound
}
