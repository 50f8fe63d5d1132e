package tasks

import (
	"encoding/json"

	"fixmate/models"

	"github.com/hibiken/asynq"
)

const TypeBookingNotify = "booking:notify"

// NewBookingNotifyTask builds the asynq task for a booking event.
func NewBookingNotifyTask(evt models.NotificationEvent) (*asynq.Task, error) {
	b, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, b), nil
}
