package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
	"github.com/ritmo-app/ritmo-engine/internal/core/metrics"
)

func makeHabit(id, goalType, kind, frequency string, target float64, createdOn string) *domain.Habit {
	return &domain.Habit{
		ID:        id,
		UserID:    "u1",
		Title:     id,
		GoalType:  goalType,
		Kind:      kind,
		Frequency: frequency,
		Target:    target,
		CreatedOn: createdOn,
	}
}

func makeIndex(habitID string, values map[string]float64) metrics.Index {
	var entries []*domain.HabitEntry
	for date, v := range values {
		entries = append(entries, domain.NewHabitEntry(habitID, "u1", date, v))
	}
	return metrics.NewIndex(entries)
}

func TestCurrentValue(t *testing.T) {
	t.Run("Success: daily habit reads the single day", func(t *testing.T) {
		h := makeHabit("h1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyDaily, 5, "2024-01-01")
		ix := makeIndex("h1", map[string]float64{"2024-01-10": 3, "2024-01-11": 4})

		assert.Equal(t, 3.0, metrics.CurrentValue(h, ix, "2024-01-10", 1))
		assert.Equal(t, 0.0, metrics.CurrentValue(h, ix, "2024-01-12", 1))
	})

	t.Run("Success: weekly habit sums the containing week", func(t *testing.T) {
		// 2024-01-08 is a Monday; logs of 2 on Mon and Tue.
		h := makeHabit("h1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyWeekly, 5, "2024-01-01")
		ix := makeIndex("h1", map[string]float64{"2024-01-08": 2, "2024-01-09": 2})

		assert.Equal(t, 4.0, metrics.CurrentValue(h, ix, "2024-01-09", 1))
		// Wednesday with no further logs still sees the same period sum.
		assert.Equal(t, 4.0, metrics.CurrentValue(h, ix, "2024-01-10", 1))
		// The next week starts from zero.
		assert.Equal(t, 0.0, metrics.CurrentValue(h, ix, "2024-01-15", 1))
	})

	t.Run("Success: weekly sum respects week start setting", func(t *testing.T) {
		// 2024-01-07 is a Sunday. With Monday start it belongs to the prior
		// week; with Sunday start it opens the week of the 8th..13th dates.
		h := makeHabit("h1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyWeekly, 5, "2024-01-01")
		ix := makeIndex("h1", map[string]float64{"2024-01-07": 3})

		assert.Equal(t, 0.0, metrics.CurrentValue(h, ix, "2024-01-08", 1))
		assert.Equal(t, 3.0, metrics.CurrentValue(h, ix, "2024-01-08", 0))
	})

	t.Run("Success: monthly habit sums the calendar month", func(t *testing.T) {
		h := makeHabit("h1", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyMonthly, 10, "2024-01-01")
		ix := makeIndex("h1", map[string]float64{"2024-01-01": 3, "2024-01-15": 4, "2024-02-01": 9})

		assert.Equal(t, 7.0, metrics.CurrentValue(h, ix, "2024-01-20", 1))
		assert.Equal(t, 9.0, metrics.CurrentValue(h, ix, "2024-02-05", 1))
	})
}

func TestIsCompleted(t *testing.T) {
	t.Run("Success: build completes at or above target", func(t *testing.T) {
		h := makeHabit("h1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyDaily, 5, "2024-01-01")

		assert.False(t, metrics.IsCompleted(h, makeIndex("h1", map[string]float64{"2024-01-10": 4}), "2024-01-10", 1))
		assert.True(t, metrics.IsCompleted(h, makeIndex("h1", map[string]float64{"2024-01-10": 5}), "2024-01-10", 1))
		assert.True(t, metrics.IsCompleted(h, makeIndex("h1", map[string]float64{"2024-01-10": 9}), "2024-01-10", 1))
	})

	t.Run("Success: break habit starts the period compliant", func(t *testing.T) {
		h := makeHabit("h1", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 2, "2024-01-01")

		assert.True(t, metrics.IsCompleted(h, metrics.NewIndex(nil), "2024-01-10", 1))
		assert.True(t, metrics.IsCompleted(h, makeIndex("h1", map[string]float64{"2024-01-10": 2}), "2024-01-10", 1))
		assert.False(t, metrics.IsCompleted(h, makeIndex("h1", map[string]float64{"2024-01-10": 3}), "2024-01-10", 1))
	})

	t.Run("Success: absent goal type is treated as build", func(t *testing.T) {
		h := makeHabit("h1", "", domain.KindNumeric, domain.FrequencyDaily, 5, "2024-01-01")
		assert.False(t, metrics.IsCompleted(h, metrics.NewIndex(nil), "2024-01-10", 1))
	})

	t.Run("Edge Case: non-positive target is treated as 1", func(t *testing.T) {
		h := makeHabit("h1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyDaily, 0, "2024-01-01")
		h.Target = 0 // bypasses constructor validation on purpose

		assert.True(t, metrics.IsCompleted(h, makeIndex("h1", map[string]float64{"2024-01-10": 1}), "2024-01-10", 1))
	})
}

func TestIsOverLimit(t *testing.T) {
	build := makeHabit("b", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01")
	brk := makeHabit("k", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01")

	ix := metrics.NewIndex([]*domain.HabitEntry{
		domain.NewHabitEntry("b", "u1", "2024-01-10", 50),
		domain.NewHabitEntry("k", "u1", "2024-01-10", 2),
	})

	assert.False(t, metrics.IsOverLimit(build, ix, "2024-01-10", 1), "build habits are never over limit")
	assert.True(t, metrics.IsOverLimit(brk, ix, "2024-01-10", 1))
	assert.False(t, metrics.IsOverLimit(brk, ix, "2024-01-11", 1))
}

func TestDailyCompletion(t *testing.T) {
	t.Run("Scenario: unlogged daily build yields 0", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01")}
		assert.Equal(t, 0, metrics.DailyCompletion(habits, metrics.NewIndex(nil), "2024-01-10", 1))
	})

	t.Run("Scenario: logged daily build yields 100", func(t *testing.T) {
		habits := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01")}
		ix := makeIndex("h1", map[string]float64{"2024-01-10": 1})
		assert.Equal(t, 100, metrics.DailyCompletion(habits, ix, "2024-01-10", 1))
	})

	t.Run("Success: rounds half up", func(t *testing.T) {
		habits := []*domain.Habit{
			makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"),
			makeHabit("h2", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"),
			makeHabit("h3", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"),
		}
		ix := makeIndex("h1", map[string]float64{"2024-01-10": 1})

		// 1 of 3 = 33.33… -> 33
		assert.Equal(t, 33, metrics.DailyCompletion(habits, ix, "2024-01-10", 1))
	})

	t.Run("Edge Case: zero active habits yields 0, not NaN", func(t *testing.T) {
		assert.Equal(t, 0, metrics.DailyCompletion(nil, metrics.NewIndex(nil), "2024-01-10", 1))

		future := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-06-01")}
		assert.Equal(t, 0, metrics.DailyCompletion(future, metrics.NewIndex(nil), "2024-01-10", 1))
	})

	t.Run("Scenario: archiving today leaves yesterday untouched", func(t *testing.T) {
		h := makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01")
		archived := "2024-01-10"
		h.ArchivedOn = &archived

		habits := []*domain.Habit{h}
		ix := makeIndex("h1", map[string]float64{"2024-01-09": 1})

		assert.Equal(t, 100, metrics.DailyCompletion(habits, ix, "2024-01-09", 1))
		assert.Equal(t, 0, metrics.DailyCompletion(habits, ix, "2024-01-10", 1), "archived habit no longer counts toward the total")
	})
}

func TestDailyOnlyRollups(t *testing.T) {
	habits := []*domain.Habit{
		makeHabit("d1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01"),
		makeHabit("w1", domain.GoalTypeBuild, domain.KindNumeric, domain.FrequencyWeekly, 10, "2024-01-01"),
	}
	ix := makeIndex("d1", map[string]float64{"2024-01-10": 1})

	t.Run("Success: daily-only ring hits 100 despite pending weekly", func(t *testing.T) {
		assert.Equal(t, 100, metrics.DailyOnlyCompletion(habits, ix, "2024-01-10", 1))
		assert.Equal(t, 50, metrics.DailyCompletion(habits, ix, "2024-01-10", 1))
	})

	t.Run("Success: weekly progress counts only weekly habits", func(t *testing.T) {
		c := metrics.WeeklyHabitProgress(habits, ix, "2024-01-10", 1)
		assert.Equal(t, metrics.DayCount{Completed: 0, Total: 1}, c)
	})

	t.Run("Edge Case: no daily habits yields 0", func(t *testing.T) {
		weeklyOnly := habits[1:]
		assert.Equal(t, 0, metrics.DailyOnlyCompletion(weeklyOnly, ix, "2024-01-10", 1))
	})
}

func TestDailyOverLimitCount(t *testing.T) {
	habits := []*domain.Habit{
		makeHabit("k1", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 1, "2024-01-01"),
		makeHabit("k2", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyDaily, 5, "2024-01-01"),
		makeHabit("k3", domain.GoalTypeBreak, domain.KindNumeric, domain.FrequencyWeekly, 1, "2024-01-01"),
	}
	ix := metrics.NewIndex([]*domain.HabitEntry{
		domain.NewHabitEntry("k1", "u1", "2024-01-10", 3),
		domain.NewHabitEntry("k2", "u1", "2024-01-10", 2),
		domain.NewHabitEntry("k3", "u1", "2024-01-10", 9),
	})

	// Only daily break habits count; k3 is weekly even though it is over.
	assert.Equal(t, 1, metrics.DailyOverLimitCount(habits, ix, "2024-01-10", 1))
}

func TestWeeklyScore(t *testing.T) {
	habits := []*domain.Habit{makeHabit("h1", domain.GoalTypeBuild, domain.KindBoolean, domain.FrequencyDaily, 1, "2024-01-01")}

	// Completed Mon..Wed of the week starting 2024-01-08, missed the rest.
	ix := makeIndex("h1", map[string]float64{
		"2024-01-08": 1,
		"2024-01-09": 1,
		"2024-01-10": 1,
	})

	score := metrics.WeeklyScore(habits, ix, "2024-01-08", 1)
	assert.InDelta(t, 300.0/7, score, 0.001)
}
