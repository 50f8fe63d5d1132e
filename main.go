package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixmate/config"
	croncfg "fixmate/cron"
	"fixmate/database"
	bookingRepo "fixmate/database/repository/booking"
	serviceRepo "fixmate/database/repository/service"
	userRepo "fixmate/database/repository/user"
	workerRepo "fixmate/database/repository/worker"
	"fixmate/handlers"
	"fixmate/jobs"
	"fixmate/middleware"
	"fixmate/routes"
	"fixmate/services/booking"
	"fixmate/services/chat"
	"fixmate/services/notification"
	"fixmate/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	users := userRepo.NewMongoUserRepo()
	workers := workerRepo.NewMongoWorkerRepo()
	services := serviceRepo.NewMongoServiceRepo()

	// notification pipeline: enqueue on redis, deliver in the worker.
	asynqClient := asynq.NewClient(croncfg.RedisQueueOpt())
	defer asynqClient.Close()
	dispatcher := notification.NewAsynqDispatcher(asynqClient)
	croncfg.InitNotifyWorker(notification.LogService{})

	bookingService := &booking.DefaultBookingService{
		Repo:     bookings,
		Users:    users,
		Workers:  workers,
		Services: services,
		Chat:     chat.LogService{},
		Notifier: dispatcher,
		Policy:   booking.PolicyFromConfig(),
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

	// background jobs: reminders, overdue auto-cancel, stale purge.
	scheduler := jobs.NewScheduler()
	jobEnv := &jobs.Env{Bookings: bookings, Notifier: dispatcher}
	if err := jobs.RegisterAll(scheduler, jobEnv); err != nil {
		logger.Sugar().Fatalf("main: failed to register background jobs: %v", err)
	}
	scheduler.Start()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
