package metrics

import (
	"math"

	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
)

// ScoreConfig tunes the daily score. Both knobs are plain parameters, not
// global state.
type ScoreConfig struct {
	// PenaltyFactor scales the per-unit overflow penalty for break habits.
	// 1.0 means a full point-for-point loss per overflow unit.
	PenaltyFactor float64

	// AllowNegativeBad lets a badly blown break habit drag its own
	// contribution below zero. The total score stays clamped to [0, 100]
	// either way.
	AllowNegativeBad bool
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{PenaltyFactor: 1.0}
}

// overflowOnDate computes the break-habit overflow units attributable to one
// date. The cap at the day's own logged value keeps a later day in the same
// week or month from being blamed for overage produced by earlier days:
//
//   - period value at or under the limit: nothing to attribute;
//   - nothing logged on the date itself: the breach came from other days;
//   - otherwise min(value logged today, total overage).
//
// When several days of one period each log enough to explain the same
// overage on their own, summing per-day attributions can exceed the period's
// total overage. That asymmetry is a known property of the formula, kept
// as-is; see the score tests.
func overflowOnDate(h *domain.Habit, ix Index, date string, weekStartsOn int) float64 {
	periodValue := CurrentValue(h, ix, date, weekStartsOn)
	overage := periodValue - safeTarget(h)
	if overage <= 0 {
		return 0
	}

	loggedToday := ix.Value(h.ID, date)
	if loggedToday <= 0 {
		return 0
	}

	return math.Min(loggedToday, overage)
}

// DailyScore produces the 0-100 score for one calendar date. Every habit
// active on the date gets an equal share of the 100-point budget: build
// habits earn their full share only when completed, break habits keep their
// share by default and lose penaltyFactor points per overflow unit logged
// that day. The result is rounded to 2 decimal places.
func DailyScore(habits []*domain.Habit, ix Index, date string, weekStartsOn int, cfg ScoreConfig) float64 {
	var active []*domain.Habit
	for _, h := range habits {
		if h.ActiveOn(date) {
			active = append(active, h)
		}
	}
	if len(active) == 0 {
		return 0
	}

	weight := 100 / float64(len(active))

	var total float64
	for _, h := range active {
		if h.EffectiveGoalType() == domain.GoalTypeBreak {
			contribution := weight - weight*cfg.PenaltyFactor*overflowOnDate(h, ix, date, weekStartsOn)
			if contribution < 0 && !cfg.AllowNegativeBad {
				contribution = 0
			}
			total += contribution
			continue
		}

		// Build habits are all-or-nothing; partial progress earns nothing.
		if IsCompleted(h, ix, date, weekStartsOn) {
			total += weight
		}
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return math.Round(total*100) / 100
}
