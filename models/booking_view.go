package models

// BookingView is a booking with its referenced records attached for read
// responses. Views are assembled by the service layer; repositories return
// raw entities and the write path never builds views.
type BookingView struct {
	Booking
	CustomerInfo *User            `json:"customerInfo,omitempty"`
	WorkerInfo   *WorkerProfile   `json:"workerInfo,omitempty"`
	ServiceInfo  *ServiceCategory `json:"serviceInfo,omitempty"`
}
