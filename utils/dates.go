package utils

import (
	"fmt"
	"time"
)

// DateLayout is the ISO form dates take at every API boundary.
const DateLayout = "2006-01-02"

// ParseDate parses "YYYY-MM-DD" into a midnight time value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date at UTC midnight. Every date in the system
// is a UTC midnight (ParseDate produces them, the DSN reads them back as
// such), so day comparisons stay instant-equal regardless of the host zone.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first day of the month and the first day of the
// next month, as a half-open window of UTC midnights.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	start, end := MonthRange(year, month)
	return int(end.Sub(start).Hours() / 24)
}
