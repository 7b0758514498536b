package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-01-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.January || got.Day() != 10 {
		t.Fatalf("ParseDate = %v", got)
	}

	if _, err := ParseDate("10/01/2025"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

func TestDateConstructorsShareOneZone(t *testing.T) {
	// ParseDate yields UTC midnights; Today and MonthRange must match, or
	// instant comparisons split the same calendar day in two.
	today := Today()
	if today.Location() != time.UTC {
		t.Fatalf("Today() location = %v, want UTC", today.Location())
	}

	reparsed, err := ParseDate(FormatDate(today))
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !reparsed.Equal(today) {
		t.Fatalf("ParseDate(FormatDate(Today())) = %v, want %v", reparsed, today)
	}

	start, end := MonthRange(2025, time.May)
	if start.Location() != time.UTC || end.Location() != time.UTC {
		t.Fatalf("MonthRange locations = %v/%v, want UTC", start.Location(), end.Location())
	}
	parsed, _ := ParseDate("2025-05-01")
	if !start.Equal(parsed) {
		t.Fatalf("MonthRange start %v is not the parsed first of month %v", start, parsed)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2025, time.February)
	if FormatDate(start) != "2025-02-01" || FormatDate(end) != "2025-03-01" {
		t.Fatalf("MonthRange = %s..%s", FormatDate(start), FormatDate(end))
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2025, time.April, 30},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}
