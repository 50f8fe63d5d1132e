package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fixmate/config"
	"fixmate/models"
	"fixmate/services/notification"
	"fixmate/services/tasks"

	"github.com/hibiken/asynq"
)

// RedisQueueOpt returns the asynq redis connection used by both the enqueue
// client and the worker.
func RedisQueueOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitNotifyWorker runs the async notification worker in background.
func InitNotifyWorker(notifSvc notification.Service) {
	srv := asynq.NewServer(
		RedisQueueOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotify, handleNotifyTask(notifSvc))

	go func() {
		log.Println("[NotifyWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotifyWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotifyWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleNotifyTask(notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var evt models.NotificationEvent
		if err := json.Unmarshal(task.Payload(), &evt); err != nil {
			log.Printf("[NotifyWorker] invalid payload: %v", err)
			return err
		}

		if err := notifSvc.SendBookingEvent(ctx, evt); err != nil {
			log.Printf("[NotifyWorker] failed to deliver %s for booking %s: %v", evt.Kind, evt.BookingID, err)
			return err
		}
		return nil
	}
}
