package domain

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidWeekStart = errors.New("week_starts_on must be 0 (Sunday) or 1 (Monday)")

const (
	WeekStartSunday = 0
	WeekStartMonday = 1
)

// Settings holds per-user preferences consumed by the metrics layer. Every
// weekly aggregation reads WeekStartsOn.
type Settings struct {
	UserID       string    `json:"user_id" db:"user_id"`
	WeekStartsOn int       `json:"week_starts_on" db:"week_starts_on"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:       userID,
		WeekStartsOn: WeekStartMonday,
		UpdatedAt:    time.Now().UTC(),
	}
}

func (s *Settings) Validate() error {
	if s.UserID == "" {
		return ErrHabitInvalidUserID
	}
	if s.WeekStartsOn != WeekStartSunday && s.WeekStartsOn != WeekStartMonday {
		return ErrInvalidWeekStart
	}
	return nil
}

type SettingsRepository interface {
	// Get returns the user's settings, or defaults when none are stored.
	Get(ctx context.Context, userID string) (*Settings, error)

	// Put inserts or overwrites the user's settings.
	Put(ctx context.Context, settings *Settings) error
}
