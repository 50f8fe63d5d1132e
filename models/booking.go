package models

import (
	"fmt"
	"time"
)

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusRequested  BookingStatus = "requested"
	StatusAccepted   BookingStatus = "accepted"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// ParseBookingStatus validates a raw status string against the known set.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	switch s := BookingStatus(raw); s {
	case StatusRequested, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return s, true
	}
	return "", false
}

// ActiveStatuses are the statuses under which a booking occupies its slot.
// Completed and cancelled bookings never conflict.
var ActiveStatuses = []BookingStatus{StatusRequested, StatusAccepted}

// IsTerminal reports whether no further transitions are allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ServiceDetails describes the requested work, embedded in a booking.
type ServiceDetails struct {
	Service     string  `bson:"service" json:"service"` // service category id
	Urgency     string  `bson:"urgency" json:"urgency"` // "low", "medium", "high"
	Type        string  `bson:"type,omitempty" json:"type,omitempty"`
	Description string  `bson:"description" json:"description"`
	Duration    int     `bson:"duration" json:"duration"` // minutes
	Price       float64 `bson:"price" json:"price"`
}

// Location is a free-form address with optional coordinates.
type Location struct {
	Address string  `bson:"address,omitempty" json:"address,omitempty"`
	Lat     float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Booking is the central record of the marketplace. Date and Time are kept
// as separate fields ("YYYY-MM-DD" and "HH:MM") because they are validated
// independently and only their combination is checked against schedules.
type Booking struct {
	ID       string `bson:"id" json:"id"`
	JobCode  string `bson:"jobCode" json:"jobCode"` // caller-supplied, unique, immutable
	Customer string `bson:"customer" json:"customer"`
	Worker   string `bson:"worker" json:"worker"`

	ServiceDetails ServiceDetails `bson:"serviceDetails" json:"serviceDetails"`

	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`

	Location Location `bson:"location,omitempty" json:"location,omitempty"`

	Status   BookingStatus `bson:"status" json:"status"`
	IsActive bool          `bson:"isActive" json:"isActive"`
	Rated    bool          `bson:"rated" json:"rated"`

	// Reminder flags; each reminder fires at most once per booking.
	AcceptedReminder30Min bool `bson:"acceptedReminder30Min" json:"acceptedReminder30Min"`
	AcceptedReminder1Hour bool `bson:"acceptedReminder1Hour" json:"acceptedReminder1Hour"`
	OverdueAutoCancel     bool `bson:"overdueRequestedReminder" json:"overdueRequestedReminder"`

	CustomerNotes string `bson:"customerNotes,omitempty" json:"customerNotes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ScheduledAt combines Date and Time into a local wall-clock instant.
func (b *Booking) ScheduledAt() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("booking %s has malformed schedule %q %q: %w", b.ID, b.Date, b.Time, err)
	}
	return t, nil
}
