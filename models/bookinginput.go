package models

// CreateBookingInput is the request body for creating a booking. The customer
// id comes from the auth context, never from the body.
type CreateBookingInput struct {
	WorkerID       string         `json:"workerId"`
	ServiceDetails ServiceDetails `json:"serviceDetails"`
	Date           string         `json:"date"` // "YYYY-MM-DD"
	Time           string         `json:"time"` // "HH:MM"
	Location       Location       `json:"location"`
	CustomerNotes  string         `json:"customerNotes"`
	JobCode        string         `json:"jobCode"`
}

// UpdateStatusInput is the request body for a status transition.
type UpdateStatusInput struct {
	Status string `json:"status"`
}

// RescheduleInput is the request body for moving a booking to a new slot.
type RescheduleInput struct {
	NewDate string `json:"newDate"`
	NewTime string `json:"newTime"`
}

// VerifyJobCodeInput is the request body for completing a job by code.
type VerifyJobCodeInput struct {
	JobCode string `json:"jobCode"`
}
