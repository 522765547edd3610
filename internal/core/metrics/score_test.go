package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/metrics"
)

func TestDailyScore(t *testing.T) {
	cfg := metrics.DefaultScoreConfig()

	t.Run("Scenario: no habits scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, metrics.DailyScore(nil, metrics.NewIndex(nil), "2024-01-10", 1, cfg))
	})

	t.Run("Scenario: one unlogged daily build scores 0", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01")}
		assert.Equal(t, 0.0, metrics.DailyScore(habits, metrics.NewIndex(nil), "2024-01-10", 1, cfg))
	})

	t.Run("Scenario: one completed daily build scores 100", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01")}
		ix := makeIndex("h1", map[string]float64{"2024-01-10": 1})
		assert.Equal(t, 100.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, cfg))
	})

	t.Run("Scenario: blown break habit clamps to zero contribution", func(t *testing.T) {
		// Build done (+50); break logged 3 against limit 1: 50 - 50*1*2 = -50,
		// clamped to 0. Total 50.
		habits := []*domain.Habit{
			makeHabit("b", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"),
			makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01"),
		}
		ix := metrics.NewIndex([]*domain.HabitEntry{
			domain.NewHabitEntry("b", "u1", "2024-01-10", 1),
			domain.NewHabitEntry("k", "u1", "2024-01-10", 3),
		})

		assert.Equal(t, 50.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, cfg))
	})

	t.Run("Success: untouched break habit keeps its full share", func(t *testing.T) {
		habits := []*domain.Habit{
			makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 2, "2024-01-01"),
		}
		assert.Equal(t, 100.0, metrics.DailyScore(habits, metrics.NewIndex(nil), "2024-01-10", 1, cfg))
	})

	t.Run("Success: partial build progress earns nothing", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyDaily, 10, "2024-01-01")}
		ix := makeIndex("h1", map[string]float64{"2024-01-10": 9})
		assert.Equal(t, 0.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, cfg))
	})

	t.Run("Success: weights split the budget equally across types", func(t *testing.T) {
		for n := 1; n <= 7; n++ {
			var habits []*domain.Habit
			var entries []*domain.HabitEntry
			for i := 0; i < n; i++ {
				id := string(rune('a' + i))
				habits = append(habits, makeHabit(id, domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"))
				entries = append(entries, domain.NewHabitEntry(id, "u1", "2024-01-10", 1))
			}

			score := metrics.DailyScore(habits, metrics.NewIndex(entries), "2024-01-10", 1, cfg)
			assert.InDelta(t, 100.0, score, 0.01, "all-complete score for %d habits", n)
		}
	})

	t.Run("Success: penalty factor scales the loss", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01")}
		ix := makeIndex("k", map[string]float64{"2024-01-10": 1.5})

		// Overflow 0.5 units at weight 100.
		half := metrics.ScoreConfig{PenaltyFactor: 0.5}
		assert.InDelta(t, 75.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, half), 0.01)
		assert.InDelta(t, 50.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, cfg), 0.01)
	})

	t.Run("Success: allow-negative lets one habit drag another's credit down", func(t *testing.T) {
		habits := []*domain.Habit{
			makeHabit("b", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"),
			makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01"),
		}
		ix := metrics.NewIndex([]*domain.HabitEntry{
			domain.NewHabitEntry("b", "u1", "2024-01-10", 1),
			domain.NewHabitEntry("k", "u1", "2024-01-10", 3),
		})

		allowNeg := metrics.ScoreConfig{PenaltyFactor: 1.0, AllowNegativeBad: true}
		// Build +50, break -50: nets to 0 instead of 50.
		assert.Equal(t, 0.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, allowNeg))
	})

	t.Run("Edge Case: score is always within [0, 100]", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01")}
		ix := makeIndex("k", map[string]float64{"2024-01-10": 1e6})

		allowNeg := metrics.ScoreConfig{PenaltyFactor: 1.0, AllowNegativeBad: true}
		assert.Equal(t, 0.0, metrics.DailyScore(habits, ix, "2024-01-10", 1, allowNeg))
	})
}

func TestOverflowAttribution(t *testing.T) {
	cfg := metrics.DefaultScoreConfig()

	t.Run("Scenario: monthly breach is attributed to the day that caused it", func(t *testing.T) {
		// Limit 10; logs of 3 on the 1st, 3 on the 2nd, 6 on the 3rd bring
		// the month to 12 (overage 2). Scoring the 3rd attributes min(6, 2).
		h := makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyMonthly, 10, "2024-01-01")
		full := makeIndex("k", map[string]float64{
			"2024-01-01": 3,
			"2024-01-02": 3,
			"2024-01-03": 6,
		})

		// 100 - 100*1*2 clamps to 0.
		assert.Equal(t, 0.0, metrics.DailyScore([]*domain.Habit{h}, full, "2024-01-03", 1, cfg))

		// Scored live (entries only up to each date), the 1st and 2nd were
		// both under the limit and carry no overflow.
		asOf1 := makeIndex("k", map[string]float64{"2024-01-01": 3})
		assert.Equal(t, 100.0, metrics.DailyScore([]*domain.Habit{h}, asOf1, "2024-01-01", 1, cfg))

		asOf2 := makeIndex("k", map[string]float64{"2024-01-01": 3, "2024-01-02": 3})
		assert.Equal(t, 100.0, metrics.DailyScore([]*domain.Habit{h}, asOf2, "2024-01-02", 1, cfg))
	})

	t.Run("Success: a day that logged nothing carries no overflow", func(t *testing.T) {
		h := makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyWeekly, 3, "2024-01-01")
		ix := makeIndex("k", map[string]float64{"2024-01-08": 5})

		// Tuesday of the same week: period is over, but Tuesday is clean.
		assert.Equal(t, 100.0, metrics.DailyScore([]*domain.Habit{h}, ix, "2024-01-09", 1, cfg))
	})

	t.Run("Success: attribution caps at the day's own log", func(t *testing.T) {
		// Week total 10 against limit 3: overage 7, but Tuesday only logged
		// 1 unit, so Tuesday is charged 1, not 7.
		h := makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyWeekly, 3, "2024-01-01")
		ix := makeIndex("k", map[string]float64{"2024-01-08": 9, "2024-01-09": 1})

		assert.Equal(t, 0.0, metrics.DailyScore([]*domain.Habit{h}, ix, "2024-01-09", 1, cfg))

		gentle := metrics.ScoreConfig{PenaltyFactor: 0.1}
		// 100 - 100*0.1*1 = 90 for Tuesday's single attributed unit.
		assert.InDelta(t, 90.0, metrics.DailyScore([]*domain.Habit{h}, ix, "2024-01-09", 1, gentle), 0.01)
	})

	t.Run("Known quirk: recomputing past days can double-count a shared overage", func(t *testing.T) {
		// Two days each logged enough to explain the same 2-unit overage on
		// their own. Recomputed after the fact, both days are charged: the
		// per-day formula does not allocate the overage chronologically.
		// The behavior is intentional and documented, not a bug to fix.
		h := makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyWeekly, 4, "2024-01-01")
		ix := makeIndex("k", map[string]float64{"2024-01-08": 3, "2024-01-09": 3})

		gentle := metrics.ScoreConfig{PenaltyFactor: 0.1}
		monday := metrics.DailyScore([]*domain.Habit{h}, ix, "2024-01-08", 1, gentle)
		tuesday := metrics.DailyScore([]*domain.Habit{h}, ix, "2024-01-09", 1, gentle)

		// Each day is charged min(3, 2) = 2 units: 100 - 100*0.1*2 = 80.
		assert.InDelta(t, 80.0, monday, 0.01)
		assert.InDelta(t, 80.0, tuesday, 0.01)
	})
}
