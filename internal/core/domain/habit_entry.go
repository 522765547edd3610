package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidEntry      = errors.New("invalid habit entry data")
	ErrNegativeValue     = errors.New("entry value cannot be negative")
	ErrEntryDateMismatch = errors.New("entry id does not match habit and date")
)

// EntryKey identifies the single entry a habit may have on a calendar day.
// It is an explicit two-part key rather than a joined string so a habit id
// containing the separator can never collide with another key.
type EntryKey struct {
	HabitID string
	Date    string
}

// String renders the persistence id, habitId_date. The storage layer keys
// rows by this id, which is what makes upserts last-write-wins per day.
func (k EntryKey) String() string {
	return k.HabitID + "_" + k.Date
}

// HabitEntry is one logged value for one habit on one local calendar day.
// Entries are the sole source of truth: every score, completion and streak is
// recomputed from them, never persisted.
type HabitEntry struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	Date  string  `json:"date" db:"entry_date"`
	Value float64 `json:"value" db:"value"`

	// LoggedAt is an audit timestamp only; scoring never reads it.
	LoggedAt time.Time `json:"logged_at" db:"logged_at"`
}

func NewHabitEntry(habitID, userID, date string, value float64) *HabitEntry {
	key := EntryKey{HabitID: habitID, Date: date}

	return &HabitEntry{
		ID:       key.String(),
		HabitID:  habitID,
		UserID:   userID,
		Date:     date,
		Value:    value,
		LoggedAt: time.Now().UTC(),
	}
}

func (e *HabitEntry) Key() EntryKey {
	return EntryKey{HabitID: e.HabitID, Date: e.Date}
}

func (e *HabitEntry) Validate() error {
	if strings.TrimSpace(e.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(e.UserID) == "" {
		return errors.New("user_id is required")
	}
	if !validDate(e.Date) {
		return ErrInvalidDate
	}
	if e.Value < 0 {
		return ErrNegativeValue
	}
	if e.ID != e.Key().String() {
		return ErrEntryDateMismatch
	}
	return nil
}
