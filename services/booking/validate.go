package booking

import (
	"time"
)

const dateLayout = "2006-01-02"

// parseBookingDate parses a "YYYY-MM-DD" string into a local midnight value.
// The date is kept as a day value throughout; the clock lives in the separate
// time field.
func parseBookingDate(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local), nil
}

// today returns the server-local current day at midnight.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// validateCreateSchedule applies the creation-side date and time rules in
// order, against the supplied "today" midnight. Returns the normalized date.
func validateCreateSchedule(rawDate, rawTime string, todayMidnight time.Time, pol Policy) (time.Time, error) {
	bookingDate, err := parseBookingDate(rawDate)
	if err != nil {
		return time.Time{}, NewValidationError("date", "Invalid date format. Use YYYY-MM-DD")
	}
	if bookingDate.Before(todayMidnight) {
		return time.Time{}, NewValidationError("date", "Booking date cannot be in the past")
	}
	if pol.ClosedForCreation(bookingDate.Weekday()) {
		return time.Time{}, NewValidationError("date", "Bookings cannot be scheduled on "+bookingDate.Weekday().String()+"s")
	}

	if !ValidClock(rawTime) {
		return time.Time{}, NewValidationError("time", "Invalid time format. Use HH:MM (24h)")
	}
	if !pol.WithinBusinessHours(rawTime) {
		return time.Time{}, NewValidationError("time", pol.HoursMessage())
	}
	return bookingDate, nil
}

// validateRescheduleSchedule applies the reschedule-side rules: time syntax
// first, then date parse, past check, and the reschedule blocked-day set.
func validateRescheduleSchedule(rawDate, rawTime string, todayMidnight time.Time, pol Policy) (time.Time, error) {
	if !ValidClock(rawTime) {
		return time.Time{}, NewValidationError("newTime", "Time must be in HH:MM 24-hour format")
	}

	newDate, err := parseBookingDate(rawDate)
	if err != nil {
		return time.Time{}, NewValidationError("newDate", "Invalid date format. Use YYYY-MM-DD")
	}
	if newDate.Before(todayMidnight) {
		return time.Time{}, NewValidationError("newDate", "Cannot reschedule to a past date")
	}
	if pol.BlockedForReschedule(newDate.Weekday()) {
		return time.Time{}, NewValidationError("newDate", "Bookings are not allowed on weekends")
	}
	return newDate, nil
}
