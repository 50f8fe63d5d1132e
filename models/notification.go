package models

// NotificationEvent is the payload queued for asynchronous delivery when a
// booking changes state or a reminder fires. Delivery is fire-and-forget;
// failures are logged, never surfaced to the request path.
type NotificationEvent struct {
	Target    string `json:"target"` // "customer" or "worker"
	TargetID  string `json:"targetId"`
	Kind      string `json:"kind"` // e.g. "booking_cancelled", "reminder_30min"
	BookingID string `json:"bookingId"`
	JobCode   string `json:"jobCode,omitempty"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
