package notification

import (
	"context"

	"fixmate/models"
	"fixmate/services/tasks"
	"fixmate/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher queues events on the redis-backed task queue consumed by
// the notification worker.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, evt models.NotificationEvent) error {
	task, err := tasks.NewBookingNotifyTask(evt)
	if err != nil {
		utils.GetLogger().Error("failed to build notify task",
			zap.String("bookingId", evt.BookingID), zap.Error(err))
		return err
	}
	if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
		utils.GetLogger().Error("failed to enqueue notify task",
			zap.String("bookingId", evt.BookingID), zap.Error(err))
		return err
	}
	return nil
}
