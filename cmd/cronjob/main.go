package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"vendorhub/internal/cache"
	"vendorhub/internal/config"
	"vendorhub/internal/jobs"
	"vendorhub/internal/logger"
	"vendorhub/internal/repository/postgres"
	"vendorhub/internal/scheduler"
	"vendorhub/internal/service"
	"vendorhub/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'purge-expired-invitations', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Vendor Hub Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Snapshot Cache
	snapshotTTL := time.Duration(cfg.Redis.SnapshotTTLDays) * 24 * time.Hour
	snapshots, err := cache.NewRedisCache(cfg.Redis.URL, snapshotTTL)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer snapshots.Close()

	// Initialize Storage
	fileStore, err := storage.NewLocalStore(cfg.Uploads.StagingDir)
	if err != nil {
		logger.Error("Failed to initialize upload staging", "error", err)
		log.Fatalf("Failed to initialize upload staging: %v", err)
	}

	// Initialize Services
	emailService := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, snapshots, fileStore, emailService, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "purge-expired-invitations":
		jobRunner.PurgeExpiredInvitations()
	case "purge-submitted-snapshots":
		jobRunner.PurgeSubmittedSnapshots()
	case "purge-stale-uploads":
		jobRunner.PurgeStaleUploads()
	case "send-draft-reminders":
		jobRunner.SendDraftReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - purge-expired-invitations\n")
		fmt.Printf("  - purge-submitted-snapshots\n")
		fmt.Printf("  - purge-stale-uploads\n")
		fmt.Printf("  - send-draft-reminders\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
