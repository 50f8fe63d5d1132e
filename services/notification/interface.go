package notification

import (
	"context"

	"fixmate/models"
	"fixmate/utils"

	"go.uber.org/zap"
)

// Service delivers a booking event to its target over email or push.
// Delivery channels are external collaborators; the default implementation
// logs the attempt so the pipeline stays observable without them.
type Service interface {
	SendBookingEvent(ctx context.Context, evt models.NotificationEvent) error
}

// Dispatcher queues booking events for asynchronous delivery. Enqueue
// failures are the dispatcher's to log; callers never propagate them.
type Dispatcher interface {
	Dispatch(ctx context.Context, evt models.NotificationEvent) error
}

// LogService is the default Service: delivery targets are out of scope, so
// it records what would have been sent.
type LogService struct{}

func (LogService) SendBookingEvent(_ context.Context, evt models.NotificationEvent) error {
	utils.GetLogger().Info("booking notification",
		zap.String("target", evt.Target),
		zap.String("targetId", evt.TargetID),
		zap.String("kind", evt.Kind),
		zap.String("bookingId", evt.BookingID),
		zap.String("title", evt.Title),
	)
	return nil
}
