// Package metrics is the derived-metrics engine: pure functions that turn
// habit definitions and a sparse entry log into completion percentages, daily
// scores, streaks and time-bucketed aggregates. Nothing here does I/O or
// holds state; callers recompute with fresh inputs when the store changes.
package metrics

import "github.com/ritmo-app/ritmo-engine/internal/core/domain"

// Index maps habit+date to the logged value for O(1) lookups. The upsert
// contract guarantees at most one entry per habit per day, so a later entry
// for the same key simply overwrites.
type Index map[domain.EntryKey]float64

func NewIndex(entries []*domain.HabitEntry) Index {
	ix := make(Index, len(entries))
	for _, e := range entries {
		ix[e.Key()] = e.Value
	}
	return ix
}

// Value returns the logged value for a habit on a date, or 0 when absent.
// A missing entry and an explicit zero are indistinguishable on purpose.
func (ix Index) Value(habitID, date string) float64 {
	return ix[domain.EntryKey{HabitID: habitID, Date: date}]
}
