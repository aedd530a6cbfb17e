package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "darna-backend/internal/api/http"
	"darna-backend/internal/config"
	"darna-backend/internal/jobs"
	"darna-backend/internal/logger"
	"darna-backend/internal/repository/postgres"
	"darna-backend/internal/scheduler"
	"darna-backend/internal/security"
	"darna-backend/internal/service"
	"darna-backend/internal/settings"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Darna API server...", "log_level", cfg.Log.Level)

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

	// Settings: load once at boot, then reload on LISTEN/NOTIFY changes.
	settingsStore := settings.NewStore(store.SettingsRepository)
	if err := settingsStore.Load(context.Background()); err != nil {
		logger.Warn("Initial settings load failed, running on defaults", "error", err)
	}
	watcher := settings.NewWatcher(cfg.GetDatabaseConnectionString(), settingsStore)
	if err := watcher.Start(); err != nil {
		logger.Warn("Settings watcher failed to start, live updates disabled", "error", err)
	} else {
		defer watcher.Stop()
	}

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	emailService := service.NewEmailService(cfg.Email)
	authService := service.NewAuthService(store.UserRepository, tokens, settingsStore)
	propertyService := service.NewPropertyService(
		store.PropertyRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailService,
	)
	bookingService := service.NewBookingService(
		store.BookingRepository,
		store.PropertyRepository,
		store.CommissionRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailService,
		settingsStore,
	)
	withdrawalService := service.NewWithdrawalService(
		store.WithdrawalRepository,
		store.PaymentAccountRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailService,
	)
	conversationService := service.NewConversationService(store.ConversationRepository, store.UserRepository, settingsStore)
	wishlistService := service.NewWishlistService(store.WishlistRepository, store.PropertyRepository)
	notificationService := service.NewNotificationService(store.NotificationRepository)

	handlers := api.NewHandlers(
		authService,
		propertyService,
		bookingService,
		withdrawalService,
		conversationService,
		wishlistService,
		notificationService,
		tokens,
		settingsStore,
	)
	router := api.NewRouter(handlers)

	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email:   emailService,
		Booking: bookingService,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
