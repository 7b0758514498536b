package models

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckOutDate(t *testing.T) {
	r := Reservation{CheckInDate: day(2025, time.January, 10), StayDays: 3}
	want := day(2025, time.January, 13)
	if got := r.CheckOutDate(); !got.Equal(want) {
		t.Fatalf("CheckOutDate() = %v, want %v", got, want)
	}
}

func TestIsActiveOnHalfOpenRange(t *testing.T) {
	r := Reservation{
		CheckInDate: day(2025, time.January, 10),
		StayDays:    3,
		Status:      StatusConfirmed,
	}

	cases := []struct {
		d    time.Time
		want bool
	}{
		{day(2025, time.January, 9), false},
		{day(2025, time.January, 10), true},
		{day(2025, time.January, 11), true},
		{day(2025, time.January, 12), true},
		{day(2025, time.January, 13), false}, // checkout day is free
	}
	for _, c := range cases {
		if got := r.IsActiveOn(c.d); got != c.want {
			t.Errorf("IsActiveOn(%s) = %v, want %v", c.d.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestIsActiveOnIgnoresTimeOfDay(t *testing.T) {
	r := Reservation{
		CheckInDate: day(2025, time.January, 10),
		StayDays:    1,
		Status:      StatusCheckedIn,
	}
	evening := time.Date(2025, time.January, 10, 23, 45, 0, 0, time.UTC)
	if !r.IsActiveOn(evening) {
		t.Fatal("expected reservation active regardless of the hour")
	}
}

func TestCancelledNeverActive(t *testing.T) {
	r := Reservation{
		CheckInDate: day(2025, time.January, 10),
		StayDays:    3,
		Status:      StatusCancelled,
	}
	if r.IsActiveOn(day(2025, time.January, 11)) {
		t.Fatal("cancelled reservation must not occupy its room")
	}
	if r.Overlaps(day(2025, time.January, 1), day(2025, time.February, 1)) {
		t.Fatal("cancelled reservation must not overlap any range")
	}
}

func TestOverlaps(t *testing.T) {
	r := Reservation{
		CheckInDate: day(2025, time.March, 4),
		StayDays:    3, // occupies 03-04, 03-05, 03-06
		Status:      StatusConfirmed,
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"containing window", day(2025, time.March, 1), day(2025, time.March, 10), true},
		{"single occupied day", day(2025, time.March, 5), day(2025, time.March, 6), true},
		{"window ends on check-in", day(2025, time.March, 1), day(2025, time.March, 4), false},
		{"window starts on checkout", day(2025, time.March, 7), day(2025, time.March, 14), false},
		{"last night only", day(2025, time.March, 6), day(2025, time.March, 7), true},
	}
	for _, c := range cases {
		if got := r.Overlaps(c.start, c.end); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2025, time.June, 15, 18, 30, 12, 999, time.UTC)
	got := DateOf(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("DateOf left a time-of-day component: %v", got)
	}
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 15 {
		t.Fatalf("DateOf changed the calendar date: %v", got)
	}
}
