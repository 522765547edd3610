package metrics

import (
	"math"

	"github.com/ritmo-app/ritmo-engine/internal/core/calendar"
	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
)

// safeTarget guards percentage math against a non-positive target.
func safeTarget(h *domain.Habit) float64 {
	if h.Target <= 0 {
		return 1
	}
	return h.Target
}

func roundPct(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

// CurrentValue returns the habit's value for the aggregation window implied
// by its frequency: the single day's entry for daily habits, the sum over
// the containing week for weekly ones, and the sum over the calendar month
// for monthly ones. A day's log is a partial contribution toward the period
// total.
func CurrentValue(h *domain.Habit, ix Index, date string, weekStartsOn int) float64 {
	switch h.Frequency {
	case domain.FrequencyWeekly:
		var sum float64
		for _, d := range calendar.WeekDates(date, weekStartsOn) {
			sum += ix.Value(h.ID, d)
		}
		return sum
	case domain.FrequencyMonthly:
		var sum float64
		for _, d := range calendar.MonthDates(date) {
			sum += ix.Value(h.ID, d)
		}
		return sum
	default:
		return ix.Value(h.ID, date)
	}
}

// IsCompleted reports whether the habit meets its goal as of date. Build
// habits complete at or above target; break habits complete at or below
// their limit, so an untouched break habit (period value 0) is completed
// until the user logs past the limit.
func IsCompleted(h *domain.Habit, ix Index, date string, weekStartsOn int) bool {
	value := CurrentValue(h, ix, date, weekStartsOn)
	if h.EffectiveGoalType() == domain.GoalTypeBreak {
		return value <= safeTarget(h)
	}
	return value >= safeTarget(h)
}

// IsOverLimit is true only for break habits whose period value exceeds the
// limit; build habits are never over limit.
func IsOverLimit(h *domain.Habit, ix Index, date string, weekStartsOn int) bool {
	if h.EffectiveGoalType() != domain.GoalTypeBreak {
		return false
	}
	return CurrentValue(h, ix, date, weekStartsOn) > safeTarget(h)
}

// DayCount is a (completed, total) pair for one date.
type DayCount struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func countCompleted(habits []*domain.Habit, ix Index, date string, weekStartsOn int, only func(*domain.Habit) bool) DayCount {
	var c DayCount
	for _, h := range habits {
		if !h.ActiveOn(date) {
			continue
		}
		if only != nil && !only(h) {
			continue
		}
		c.Total++
		if IsCompleted(h, ix, date, weekStartsOn) {
			c.Completed++
		}
	}
	return c
}

// DailyCompletedCount counts completed vs. active habits on a date, all
// frequencies included.
func DailyCompletedCount(habits []*domain.Habit, ix Index, date string, weekStartsOn int) DayCount {
	return countCompleted(habits, ix, date, weekStartsOn, nil)
}

// DailyCompletion is the rounded completion percentage over every habit
// active on date. No active habits yields 0, never NaN.
func DailyCompletion(habits []*domain.Habit, ix Index, date string, weekStartsOn int) int {
	c := DailyCompletedCount(habits, ix, date, weekStartsOn)
	if c.Total == 0 {
		return 0
	}
	return roundPct(100 * float64(c.Completed) / float64(c.Total))
}

// DailyOnlyCompletedCount restricts the count to daily-frequency habits.
// Used where a progress ring must be able to reach 100% on today's habits
// alone, independent of in-progress weekly or monthly ones.
func DailyOnlyCompletedCount(habits []*domain.Habit, ix Index, date string, weekStartsOn int) DayCount {
	return countCompleted(habits, ix, date, weekStartsOn, func(h *domain.Habit) bool {
		return h.Frequency == domain.FrequencyDaily
	})
}

func DailyOnlyCompletion(habits []*domain.Habit, ix Index, date string, weekStartsOn int) int {
	c := DailyOnlyCompletedCount(habits, ix, date, weekStartsOn)
	if c.Total == 0 {
		return 0
	}
	return roundPct(100 * float64(c.Completed) / float64(c.Total))
}

// WeeklyHabitProgress counts completion among weekly-frequency habits only.
func WeeklyHabitProgress(habits []*domain.Habit, ix Index, date string, weekStartsOn int) DayCount {
	return countCompleted(habits, ix, date, weekStartsOn, func(h *domain.Habit) bool {
		return h.Frequency == domain.FrequencyWeekly
	})
}

// DailyOverLimitCount counts active daily break habits currently past their
// limit on date.
func DailyOverLimitCount(habits []*domain.Habit, ix Index, date string, weekStartsOn int) int {
	count := 0
	for _, h := range habits {
		if !h.ActiveOn(date) || h.Frequency != domain.FrequencyDaily {
			continue
		}
		if IsOverLimit(h, ix, date, weekStartsOn) {
			count++
		}
	}
	return count
}

// WeeklyScore is the arithmetic mean of DailyCompletion across the 7 days of
// the week starting at weekStart. Days are weighted equally regardless of how
// many habits were active on each.
func WeeklyScore(habits []*domain.Habit, ix Index, weekStart string, weekStartsOn int) float64 {
	var sum float64
	for i := 0; i < 7; i++ {
		sum += float64(DailyCompletion(habits, ix, calendar.AddDays(weekStart, i), weekStartsOn))
	}
	return sum / 7
}
