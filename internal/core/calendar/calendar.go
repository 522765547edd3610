// Package calendar provides date arithmetic over YYYY-MM-DD strings in the
// user's local timezone. Dates are zero-padded, so lexicographic comparison
// orders them correctly; every function here is total and side-effect-free.
package calendar

import "time"

const Layout = "2006-01-02"

// Parse anchors a date string to local midnight. Parsing a YYYY-MM-DD string
// as bare UTC and converting back would shift a day near timezone boundaries,
// so all parsing in the module goes through here.
func Parse(date string) (time.Time, bool) {
	t, err := time.ParseInLocation(Layout, date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the local current date.
func Today() string {
	return Format(time.Now())
}

// AddDays shifts a date by n days (n may be negative), crossing month and
// year boundaries. A malformed date is returned unchanged.
func AddDays(date string, n int) string {
	t, ok := Parse(date)
	if !ok {
		return date
	}
	return Format(t.AddDate(0, 0, n))
}

// WeekDates returns the ordered 7 dates of the week containing anchor,
// starting on weekStartsOn (0 = Sunday, 1 = Monday). A malformed anchor
// yields nil.
func WeekDates(anchor string, weekStartsOn int) []string {
	t, ok := Parse(anchor)
	if !ok {
		return nil
	}

	diff := (int(t.Weekday()) - weekStartsOn + 7) % 7
	start := t.AddDate(0, 0, -diff)

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = Format(start.AddDate(0, 0, i))
	}
	return dates
}

// MonthRange returns the first and last date of the calendar month
// containing the given date.
func MonthRange(date string) (string, string) {
	t, ok := Parse(date)
	if !ok {
		return date, date
	}

	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return Format(first), Format(last)
}

// MonthDates returns every date of the calendar month containing date.
func MonthDates(date string) []string {
	first, last := MonthRange(date)
	return DatesInRange(first, last)
}

// DatesInRange produces every date in [from, to] inclusive, in order. An
// empty or inverted range yields nil.
func DatesInRange(from, to string) []string {
	start, okFrom := Parse(from)
	end, okTo := Parse(to)
	if !okFrom || !okTo || from > to {
		return nil
	}

	var dates []string
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		dates = append(dates, Format(t))
	}
	return dates
}

func IsToday(date string) bool {
	return date == Today()
}

func IsFuture(date string) bool {
	return date > Today()
}

func IsPast(date string) bool {
	return date < Today()
}
