package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"training_reminder_service/internal/app"
	"training_reminder_service/internal/infra/config"
	idb "training_reminder_service/internal/infra/database"
	"training_reminder_service/internal/infra/httpapi"
	"training_reminder_service/internal/infra/logger"
	"training_reminder_service/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	assignmentRepo := idb.NewPostgresAssignmentRepository(db)
	auditRepo := idb.NewPostgresAuditLogRepository(db)
	log.Info("Assignment and audit log repositories initialized.")

	// Initialize ReminderService
	reminderService := app.NewReminderServiceImpl(assignmentRepo, auditRepo, log)
	log.Info("Reminder service initialized.")

	// Initialize ReminderScheduler for the in-process daily tick
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		log,
		cfg.CronSpecDailyReminders,
	)
	reminderScheduler.Start()

	// Initialize HTTP trigger surface for the external scheduler
	server := httpapi.NewServer(cfg.HTTPListenAddr, reminderService, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Infof("HTTP server stopped: %v", err)
		}
	}()

	log.Info("Application setup complete. Scheduler and HTTP trigger are running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	reminderScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	// db.Close() is handled by defer
	log.Info("Application shut down gracefully.")
}
