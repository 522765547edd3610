package metrics

import "github.com/ritmo-app/ritmo-engine/internal/core/domain"

// DaySummary bundles the three numbers every view of a date reads: the
// weighted daily score, the daily-habits-only completion percentage, and the
// all-habits completion percentage. Producing them in one place keeps the
// home ring, calendar cells and analytics from ever disagreeing about the
// same date.
type DaySummary struct {
	Date                   string  `json:"date"`
	DailyScore             float64 `json:"daily_score"`
	DailyOnlyCompletionPct int     `json:"daily_only_completion_pct"`
	CompletionPct          int     `json:"completion_pct"`
}

// ComputeDaySummary derives the summary for one date with the default score
// configuration. It holds no cache; callers may memoize externally, keyed by
// date and store version.
func ComputeDaySummary(habits []*domain.Habit, ix Index, date string, weekStartsOn int) DaySummary {
	return DaySummary{
		Date:                   date,
		DailyScore:             DailyScore(habits, ix, date, weekStartsOn, DefaultScoreConfig()),
		DailyOnlyCompletionPct: DailyOnlyCompletion(habits, ix, date, weekStartsOn),
		CompletionPct:          DailyCompletion(habits, ix, date, weekStartsOn),
	}
}
