package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"darna-backend/internal/config"
	"darna-backend/internal/jobs"
	"darna-backend/internal/logger"
	"darna-backend/internal/repository/postgres"
	"darna-backend/internal/scheduler"
	"darna-backend/internal/service"
	"darna-backend/internal/settings"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g. 'complete-past-bookings', 'all-nightly')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Darna cronjob runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	settingsStore := settings.NewStore(store.SettingsRepository)
	if err := settingsStore.Load(context.Background()); err != nil {
		logger.Warn("Initial settings load failed, running on defaults", "error", err)
	}

	emailService := service.NewEmailService(cfg.Email)
	bookingService := service.NewBookingService(
		store.BookingRepository,
		store.PropertyRepository,
		store.CommissionRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailService,
		settingsStore,
	)

	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:   emailService,
		Booking: bookingService,
	}, cfg)

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "complete-past-bookings":
		jobRunner.CompletePastBookings()
	case "send-check-in-reminders":
		jobRunner.SendCheckInReminders()
	case "remind-pending-moderation":
		jobRunner.RemindPendingModeration()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		os.Exit(1)
	}
}
