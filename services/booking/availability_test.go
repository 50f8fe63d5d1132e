package booking

import (
	"testing"
	"time"

	"fixmate/models"
)

func TestWindowFor_MatchesCaseInsensitively(t *testing.T) {
	schedule := []models.ScheduleWindow{
		{Day: "monday", StartTime: "09:00", EndTime: "17:00"},
		{Day: "Wednesday", StartTime: "10:00", EndTime: "14:00"},
	}

	w, ok := WindowFor(schedule, time.Monday)
	if !ok {
		t.Fatal("expected a window for Monday")
	}
	if w.StartTime != "09:00" || w.EndTime != "17:00" {
		t.Fatalf("wrong window for Monday: %+v", w)
	}

	w, ok = WindowFor(schedule, time.Wednesday)
	if !ok {
		t.Fatal("expected a window for Wednesday")
	}
	if w.StartTime != "10:00" {
		t.Fatalf("wrong window for Wednesday: %+v", w)
	}
}

func TestWindowFor_AbsentDay(t *testing.T) {
	schedule := []models.ScheduleWindow{
		{Day: "Monday", StartTime: "09:00", EndTime: "17:00"},
	}
	if _, ok := WindowFor(schedule, time.Sunday); ok {
		t.Fatal("expected no window for Sunday")
	}
	if _, ok := WindowFor(nil, time.Monday); ok {
		t.Fatal("expected no window for empty schedule")
	}
}

func TestInsideWindow_Boundaries(t *testing.T) {
	w := models.ScheduleWindow{Day: "Monday", StartTime: "09:00", EndTime: "17:00"}

	cases := []struct {
		clock string
		want  bool
	}{
		{"09:00", true},  // start inclusive
		{"16:59", true},
		{"17:00", false}, // end exclusive
		{"08:59", false},
		{"12:30", true},
	}
	for _, tc := range cases {
		if got := InsideWindow(w, tc.clock); got != tc.want {
			t.Errorf("InsideWindow(%s) = %v, want %v", tc.clock, got, tc.want)
		}
	}
}

func TestInsideWindow_MalformedStoredTimes(t *testing.T) {
	// Schedules come from the database and are not trusted; a bad boundary
	// must close the window rather than panic or widen it.
	cases := []models.ScheduleWindow{
		{Day: "Monday", StartTime: "9", EndTime: "17:00"},
		{Day: "Monday", StartTime: "9:00", EndTime: "17:00"},
		{Day: "Monday", StartTime: "09:00", EndTime: ""},
		{Day: "Monday"},
	}
	for _, w := range cases {
		if InsideWindow(w, "10:00") {
			t.Errorf("window %+v should admit nothing", w)
		}
	}
}
