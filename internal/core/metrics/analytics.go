package metrics

import (
	"strconv"

	"github.com/ritmo-app/ritmo-engine/internal/core/calendar"
	"github.com/ritmo-app/ritmo-engine/internal/core/domain"
)

type Range string

const (
	RangeDay      Range = "day"
	RangeWeek     Range = "week"
	RangeMonth    Range = "month"
	RangeSixMonth Range = "6month"
	RangeYear     Range = "year"
)

func ValidRange(r Range) bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeSixMonth, RangeYear:
		return true
	}
	return false
}

// Bucket is one contiguous date span of a chart: a single day for day/week
// ranges, a day of the month for month, a whole month for 6month/year.
type Bucket struct {
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// BarPoint is one chart-ready bar: the bucket plus its completed/target
// counts and rounded percentage.
type BarPoint struct {
	Bucket
	Completed int `json:"completed"`
	Target    int `json:"target"`
	Percent   int `json:"percent"`
}

func monthBuckets(end string, months int) []Bucket {
	buckets := make([]Bucket, 0, months)
	anchor := end
	for i := 0; i < months; i++ {
		first, last := calendar.MonthRange(anchor)
		t, ok := calendar.Parse(first)
		label := first
		if ok {
			label = t.Format("Jan")
		}
		buckets = append(buckets, Bucket{Label: label, From: first, To: last})
		anchor = calendar.AddDays(first, -1)
	}

	// Walked backward from the end month; charts read left to right.
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	return buckets
}

// Buckets produces the ordered labeled spans for a range ending at end.
func Buckets(r Range, end string, weekStartsOn int) []Bucket {
	switch r {
	case RangeWeek:
		week := calendar.WeekDates(end, weekStartsOn)
		buckets := make([]Bucket, 0, len(week))
		for _, d := range week {
			label := d
			if t, ok := calendar.Parse(d); ok {
				label = t.Format("Mon")
			}
			buckets = append(buckets, Bucket{Label: label, From: d, To: d})
		}
		return buckets
	case RangeMonth:
		days := calendar.MonthDates(end)
		buckets := make([]Bucket, 0, len(days))
		for i, d := range days {
			buckets = append(buckets, Bucket{Label: strconv.Itoa(i + 1), From: d, To: d})
		}
		return buckets
	case RangeSixMonth:
		return monthBuckets(end, 6)
	case RangeYear:
		return monthBuckets(end, 12)
	default:
		return []Bucket{{Label: end, From: end, To: end}}
	}
}

// Series rolls the per-day completion counts of each bucket into bars. With
// an empty habitID it counts every habit active on each day; with a filter it
// counts one target per day the habit is active and one completion per day
// the habit met its goal. Percent is clamped to [0, 100] and a zero target
// yields 0 rather than a division error.
func Series(habits []*domain.Habit, ix Index, r Range, end string, weekStartsOn int, habitID string) []BarPoint {
	var filtered *domain.Habit
	if habitID != "" {
		for _, h := range habits {
			if h.ID == habitID {
				filtered = h
				break
			}
		}
	}

	buckets := Buckets(r, end, weekStartsOn)
	points := make([]BarPoint, 0, len(buckets))

	for _, b := range buckets {
		point := BarPoint{Bucket: b}

		for _, d := range calendar.DatesInRange(b.From, b.To) {
			if filtered != nil {
				if !filtered.ActiveOn(d) {
					continue
				}
				point.Target++
				if IsCompleted(filtered, ix, d, weekStartsOn) {
					point.Completed++
				}
				continue
			}

			c := DailyCompletedCount(habits, ix, d, weekStartsOn)
			point.Target += c.Total
			point.Completed += c.Completed
		}

		if point.Target > 0 {
			pct := roundPct(100 * float64(point.Completed) / float64(point.Target))
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
			point.Percent = pct
		}

		points = append(points, point)
	}

	return points
}

// streakFloorDays bounds the backward walk so a pathological store can never
// spin the computation for years of dates.
const streakFloorDays = 3650

// Streak counts consecutive 100%-completion days ending at today. An
// in-progress today (below 100%) does not break the streak; the walk simply
// starts from yesterday instead.
func Streak(habits []*domain.Habit, ix Index, today string, weekStartsOn int) int {
	start := today
	if DailyCompletion(habits, ix, today, weekStartsOn) < 100 {
		start = calendar.AddDays(today, -1)
	}

	count := 0
	for d := start; count < streakFloorDays; d = calendar.AddDays(d, -1) {
		if DailyCompletion(habits, ix, d, weekStartsOn) != 100 {
			break
		}
		count++
	}
	return count
}

// HabitStreak applies the same walk to a single habit, using its own
// completion check and stopping at the habit's creation date.
func HabitStreak(h *domain.Habit, ix Index, today string, weekStartsOn int) int {
	start := today
	if !h.ActiveOn(today) || !IsCompleted(h, ix, today, weekStartsOn) {
		start = calendar.AddDays(today, -1)
	}

	count := 0
	for d := start; d >= h.CreatedOn && count < streakFloorDays; d = calendar.AddDays(d, -1) {
		if !IsCompleted(h, ix, d, weekStartsOn) {
			break
		}
		count++
	}
	return count
}
