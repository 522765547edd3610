package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 100 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidGoalType    = errors.New("invalid goal type (must be build or break)")
	ErrInvalidKind        = errors.New("invalid habit kind (must be boolean or numeric)")
	ErrInvalidFrequency   = errors.New("invalid frequency (must be daily, weekly, or monthly)")
	ErrInvalidTarget      = errors.New("target must be positive")
	ErrInvalidDate        = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrHabitArchived      = errors.New("cannot update an archived habit")
)

const (
	GoalTypeBuild = "build"
	GoalTypeBreak = "break"

	KindBoolean = "boolean"
	KindNumeric = "numeric"

	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"

	MaxTitleLen = 100

	dateLayout = "2006-01-02"
)

// Habit is a long-lived definition. Lifecycle dates (CreatedOn, PausedOn,
// ArchivedOn) are YYYY-MM-DD strings in the user's local time; zero-padded ISO
// dates compare correctly as plain strings, which the metrics layer relies on.
type Habit struct {
	ID        string  `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	Title     string  `json:"title" db:"title"`
	GoalType  string  `json:"goal_type" db:"goal_type"`
	Kind      string  `json:"kind" db:"kind"`
	Frequency string  `json:"frequency" db:"frequency"`
	Target    float64 `json:"target" db:"target"`
	Unit      string  `json:"unit" db:"unit"`
	SortOrder int     `json:"sort_order" db:"sort_order"`

	CreatedOn  string  `json:"created_on" db:"created_on"`
	PausedOn   *string `json:"paused_on,omitempty" db:"paused_on"`
	ArchivedOn *string `json:"archived_on,omitempty" db:"archived_on"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func validDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.ParseInLocation(dateLayout, s, time.Local)
	return err == nil
}

func validateHabit(title, goalType, kind, frequency string, target float64) (string, float64, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", 0, ErrHabitTitleEmpty
	}
	if len(trimmed) > MaxTitleLen {
		return "", 0, ErrHabitTitleTooLong
	}

	switch goalType {
	case GoalTypeBuild, GoalTypeBreak, "":
	default:
		return "", 0, ErrInvalidGoalType
	}

	switch kind {
	case KindBoolean, KindNumeric:
	default:
		return "", 0, ErrInvalidKind
	}

	switch frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return "", 0, ErrInvalidFrequency
	}

	// Boolean habits are always done/not-done against a target of 1.
	if kind == KindBoolean {
		target = 1
	} else if target <= 0 {
		return "", 0, ErrInvalidTarget
	}

	return trimmed, target, nil
}

func NewHabit(userID, title, goalType, kind, frequency, unit, createdOn string, target float64) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}
	if !validDate(createdOn) {
		return nil, ErrInvalidDate
	}

	cleanTitle, safeTarget, err := validateHabit(title, goalType, kind, frequency, target)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     cleanTitle,
		GoalType:  goalType,
		Kind:      kind,
		Frequency: frequency,
		Target:    safeTarget,
		Unit:      unit,
		SortOrder: 0,
		CreatedOn: createdOn,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// EffectiveGoalType treats an absent goal type as build.
func (h *Habit) EffectiveGoalType() string {
	if h.GoalType == GoalTypeBreak {
		return GoalTypeBreak
	}
	return GoalTypeBuild
}

// ActiveOn reports whether the habit exists and is neither paused nor archived
// as of the given date. Pause and archive are forward-looking: setting either
// to today hides the habit from today onward but leaves past dates untouched.
func (h *Habit) ActiveOn(date string) bool {
	if h.CreatedOn > date {
		return false
	}
	if h.PausedOn != nil && *h.PausedOn <= date {
		return false
	}
	if h.ArchivedOn != nil && *h.ArchivedOn <= date {
		return false
	}
	return true
}

func (h *Habit) Update(title, goalType, kind, frequency, unit string, target float64) error {
	if h.ArchivedOn != nil {
		return ErrHabitArchived
	}

	cleanTitle, safeTarget, err := validateHabit(title, goalType, kind, frequency, target)
	if err != nil {
		return err
	}

	h.Title = cleanTitle
	h.GoalType = goalType
	h.Kind = kind
	h.Frequency = frequency
	h.Unit = unit
	h.Target = safeTarget
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) ChangePosition(newOrder int) error {
	if h.ArchivedOn != nil {
		return ErrHabitArchived
	}
	h.SortOrder = newOrder
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Pause(date string) error {
	if !validDate(date) {
		return ErrInvalidDate
	}
	h.PausedOn = &date
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Unpause() {
	if h.PausedOn == nil {
		return
	}
	h.PausedOn = nil
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Archive(date string) error {
	if !validDate(date) {
		return ErrInvalidDate
	}
	h.ArchivedOn = &date
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Unarchive() {
	if h.ArchivedOn == nil {
		return
	}
	h.ArchivedOn = nil
	h.UpdatedAt = time.Now().UTC()
}
