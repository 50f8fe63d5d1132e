package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fixmate/config"
)

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidClock reports whether s is a 24-hour "HH:MM" string.
func ValidClock(s string) bool {
	return timeRe.MatchString(s)
}

// ClockMinutes converts an "HH:MM" string to minutes from midnight.
// Returns -1 for anything that is not a valid 24-hour clock, so malformed
// stored values compare as outside every window instead of panicking.
func ClockMinutes(s string) int {
	if !ValidClock(s) {
		return -1
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h*60 + m
}

// Policy holds the scheduling business rules. Creation and reschedule carry
// separate blocked-day sets: new bookings default to one closed weekday,
// reschedules to the whole weekend, and the two rules stay independently
// configurable rather than unified.
type Policy struct {
	OpenMinutes  int // inclusive
	CloseMinutes int // exclusive

	closedForCreation    map[string]bool
	blockedForReschedule map[string]bool
}

// PolicyFromConfig builds the policy from the loaded application config.
func PolicyFromConfig() Policy {
	cfg := config.AppConfig
	open, close := "09:00", "17:00"
	if ValidClock(cfg.BusinessOpen) {
		open = cfg.BusinessOpen
	}
	if ValidClock(cfg.BusinessClose) {
		close = cfg.BusinessClose
	}
	return NewPolicy(open, close,
		config.SplitDays(cfg.ClosedWeekdays),
		config.SplitDays(cfg.RescheduleBlockedDays))
}

// NewPolicy builds a policy from explicit values.
func NewPolicy(open, close string, closedDays, rescheduleBlocked []string) Policy {
	p := Policy{
		OpenMinutes:          ClockMinutes(open),
		CloseMinutes:         ClockMinutes(close),
		closedForCreation:    make(map[string]bool),
		blockedForReschedule: make(map[string]bool),
	}
	for _, d := range closedDays {
		p.closedForCreation[strings.ToLower(d)] = true
	}
	for _, d := range rescheduleBlocked {
		p.blockedForReschedule[strings.ToLower(d)] = true
	}
	return p
}

// WithinBusinessHours checks the [open, close) window.
func (p Policy) WithinBusinessHours(clock string) bool {
	m := ClockMinutes(clock)
	return m >= p.OpenMinutes && m < p.CloseMinutes
}

// HoursMessage renders the out-of-hours rejection text for the configured
// window, e.g. "Bookings allowed only between 9 AM and 5 PM".
func (p Policy) HoursMessage() string {
	return fmt.Sprintf("Bookings allowed only between %s and %s",
		clockLabel(p.OpenMinutes), clockLabel(p.CloseMinutes))
}

func clockLabel(minutes int) string {
	h, m := minutes/60, minutes%60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	if m == 0 {
		return fmt.Sprintf("%d %s", h, suffix)
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// ClosedForCreation reports whether new bookings are refused on the weekday.
func (p Policy) ClosedForCreation(day time.Weekday) bool {
	return p.closedForCreation[strings.ToLower(day.String())]
}

// BlockedForReschedule reports whether reschedules are refused on the weekday.
func (p Policy) BlockedForReschedule(day time.Weekday) bool {
	return p.blockedForReschedule[strings.ToLower(day.String())]
}
