package services

import (
	"context"
	"time"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
)

type SettingsService struct {
	repo domain.SettingsRepository
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	return s.repo.Get(ctx, userID)
}

func (s *SettingsService) SetWeekStart(ctx context.Context, userID string, weekStartsOn int) (*domain.Settings, error) {
	settings := &domain.Settings{
		UserID:       userID,
		WeekStartsOn: weekStartsOn,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
