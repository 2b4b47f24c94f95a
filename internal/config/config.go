package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Uploads   UploadConfig    `yaml:"uploads"`
	Admin     AdminConfig     `yaml:"admin"`
	Wizard    WizardConfig    `yaml:"wizard"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains the draft snapshot cache settings
type RedisConfig struct {
	URL             string `yaml:"url"`
	SnapshotTTLDays int    `yaml:"snapshot_ttl_days"`
}

// SendGridConfig contains email service settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// UploadConfig contains tax document staging settings
type UploadConfig struct {
	StagingDir   string   `yaml:"staging_dir"`
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
	TokenSecret  string   `yaml:"token_secret"`
}

// AdminConfig guards the inviter-side endpoints
type AdminConfig struct {
	APIKeyHash string `yaml:"api_key_hash"`
}

// WizardConfig contains the per-page validation policy
type WizardConfig struct {
	TaxRequired              bool     `yaml:"tax_required"`
	MinInterests             int      `yaml:"min_interests"`
	RequiredCapabilityGroups []string `yaml:"required_capability_groups"`
	OnboardingURL            string   `yaml:"onboarding_url"`
	InvitationTTLDays        int      `yaml:"invitation_ttl_days"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PurgeExpiredInvitations string `yaml:"purge_expired_invitations"`
	PurgeSubmittedSnapshots string `yaml:"purge_submitted_snapshots"`
	PurgeStaleUploads       string `yaml:"purge_stale_uploads"`
	SendDraftReminders      string `yaml:"send_draft_reminders"`
	ReminderIdleDays        int    `yaml:"reminder_idle_days"`
	StaleUploadDays         int    `yaml:"stale_upload_days"`
	SubmittedRetentionDays  int    `yaml:"submitted_retention_days"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Redis
	if val := os.Getenv("REDIS_URL"); val != "" {
		c.Redis.URL = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// Uploads
	if val := os.Getenv("UPLOAD_STAGING_DIR"); val != "" {
		c.Uploads.StagingDir = val
	}
	if val := os.Getenv("UPLOAD_TOKEN_SECRET"); val != "" {
		c.Uploads.TokenSecret = val
	}

	// Admin
	if val := os.Getenv("ADMIN_API_KEY_HASH"); val != "" {
		c.Admin.APIKeyHash = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("SERVER_BASE_URL"); val != "" {
		c.Server.BaseURL = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Redis defaults
	if c.Redis.URL == "" {
		c.Redis.URL = "redis://localhost:6379/0"
	}
	if c.Redis.SnapshotTTLDays <= 0 {
		c.Redis.SnapshotTTLDays = 30
	}

	// SendGrid validation
	if c.SendGrid.APIKey == "" {
		return fmt.Errorf("sendgrid API key is required")
	}
	if c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from address is required")
	}
	if c.SendGrid.FromName == "" {
		c.SendGrid.FromName = "Vendor Hub"
	}

	// Upload validation
	if c.Uploads.StagingDir == "" {
		return fmt.Errorf("upload staging directory is required")
	}
	if c.Uploads.TokenSecret == "" {
		return fmt.Errorf("upload token secret is required")
	}
	if len(c.Uploads.TokenSecret) < 32 {
		return fmt.Errorf("upload token secret must be at least 32 characters")
	}
	if c.Uploads.MaxFileSize <= 0 {
		c.Uploads.MaxFileSize = 10
	}
	if len(c.Uploads.AllowedTypes) == 0 {
		c.Uploads.AllowedTypes = []string{"application/pdf"}
	}

	// Admin validation
	if c.Admin.APIKeyHash == "" {
		return fmt.Errorf("admin API key hash is required")
	}

	// Wizard defaults
	if c.Wizard.MinInterests <= 0 {
		c.Wizard.MinInterests = 1
	}
	if c.Wizard.OnboardingURL == "" {
		c.Wizard.OnboardingURL = c.Server.BaseURL + "/onboarding"
	}
	if c.Wizard.InvitationTTLDays <= 0 {
		c.Wizard.InvitationTTLDays = 30
	}

	// Scheduler defaults
	if c.Scheduler.PurgeExpiredInvitations == "" {
		c.Scheduler.PurgeExpiredInvitations = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PurgeSubmittedSnapshots == "" {
		c.Scheduler.PurgeSubmittedSnapshots = "0 15 2 * * *" // 2:15 AM UTC
	}
	if c.Scheduler.PurgeStaleUploads == "" {
		c.Scheduler.PurgeStaleUploads = "0 30 2 * * *" // 2:30 AM UTC
	}
	if c.Scheduler.SendDraftReminders == "" {
		c.Scheduler.SendDraftReminders = "0 0 14 * * *" // 2 PM UTC
	}
	if c.Scheduler.ReminderIdleDays <= 0 {
		c.Scheduler.ReminderIdleDays = 3
	}
	if c.Scheduler.StaleUploadDays <= 0 {
		c.Scheduler.StaleUploadDays = 7
	}
	if c.Scheduler.SubmittedRetentionDays <= 0 {
		c.Scheduler.SubmittedRetentionDays = 7
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
