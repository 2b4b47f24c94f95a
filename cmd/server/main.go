package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "vendorhub/internal/api/http"
	"vendorhub/internal/cache"
	"vendorhub/internal/config"
	"vendorhub/internal/logger"
	"vendorhub/internal/repository/postgres"
	"vendorhub/internal/security"
	"vendorhub/internal/service"
	"vendorhub/internal/storage"
	"vendorhub/internal/wizard"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Vendor Hub...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "base_url", cfg.Server.BaseURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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
	logger.Info("Redis connection established", "snapshot_ttl_days", cfg.Redis.SnapshotTTLDays)

	// Initialize Storage
	fileStore, err := storage.NewLocalStore(cfg.Uploads.StagingDir)
	if err != nil {
		logger.Error("Failed to initialize upload staging", "error", err)
		log.Fatalf("Failed to initialize upload staging: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Uploads.TokenSecret)

	// Wizard validation policy
	settings := wizard.DefaultSettings()
	settings.TaxRequired = cfg.Wizard.TaxRequired
	settings.MinInterests = cfg.Wizard.MinInterests
	settings.MaxUploadBytes = cfg.Uploads.MaxFileSize << 20
	settings.AllowedTaxTypes = cfg.Uploads.AllowedTypes
	if len(cfg.Wizard.RequiredCapabilityGroups) > 0 {
		settings.RequiredCapabilityGroups = cfg.Wizard.RequiredCapabilityGroups
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	referenceSvc := service.NewReferenceService(store)
	draftSvc := service.NewDraftService(store.DraftRepository, store.InvitationRepository, emailSvc, snapshots, settings)
	uploadSvc := service.NewUploadService(store.InvitationRepository, fileStore, tokenManager, cfg.Server.BaseURL, settings)
	inviteTTL := time.Duration(cfg.Wizard.InvitationTTLDays) * 24 * time.Hour
	adminSvc := service.NewAdminService(store.InvitationRepository, emailSvc, cfg.Wizard.OnboardingURL, inviteTTL)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Drafts:       draftSvc,
		Catalogs:     referenceSvc,
		Uploads:      uploadSvc,
		Admin:        adminSvc,
		AdminKeyHash: cfg.Admin.APIKeyHash,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
