package models

import (
	"testing"
	"time"
)

func TestParseBookingStatus(t *testing.T) {
	for _, raw := range []string{"requested", "accepted", "in_progress", "completed", "cancelled"} {
		if _, ok := ParseBookingStatus(raw); !ok {
			t.Errorf("ParseBookingStatus(%q) rejected a known status", raw)
		}
	}
	for _, raw := range []string{"", "Requested", "done", "in-progress"} {
		if _, ok := ParseBookingStatus(raw); ok {
			t.Errorf("ParseBookingStatus(%q) accepted an unknown status", raw)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		StatusRequested:  false,
		StatusAccepted:   false,
		StatusInProgress: false,
		StatusCompleted:  true,
		StatusCancelled:  true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestScheduledAt(t *testing.T) {
	b := Booking{ID: "b-1", Date: "2030-04-08", Time: "10:30"}
	got, err := b.ScheduledAt()
	if err != nil {
		t.Fatalf("ScheduledAt: %v", err)
	}
	want := time.Date(2030, time.April, 8, 10, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ScheduledAt = %v, want %v", got, want)
	}

	bad := Booking{ID: "b-2", Date: "2030-04-08", Time: "25:00"}
	if _, err := bad.ScheduledAt(); err == nil {
		t.Error("malformed time should error")
	}
}
