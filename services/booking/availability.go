package booking

import (
	"strings"
	"time"

	"fixmate/models"
)

// WindowFor returns the worker's working window for the given weekday, or
// false when the worker has no entry for that day. Day matching is
// case-insensitive. Pure; schedules hold at most one window per weekday.
func WindowFor(schedule []models.ScheduleWindow, day time.Weekday) (models.ScheduleWindow, bool) {
	name := strings.ToLower(day.String())
	for _, w := range schedule {
		if strings.ToLower(w.Day) == name {
			return w, true
		}
	}
	return models.ScheduleWindow{}, false
}

// InsideWindow checks clock against [start, end) of a schedule window. A
// window with malformed boundaries admits nothing; stored schedules are not
// trusted to be well-formed.
func InsideWindow(w models.ScheduleWindow, clock string) bool {
	start, end := ClockMinutes(w.StartTime), ClockMinutes(w.EndTime)
	if start < 0 || end < 0 {
		return false
	}
	m := ClockMinutes(clock)
	return m >= start && m < end
}
