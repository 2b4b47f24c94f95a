package jobs

import (
	"vendorhub/internal/config"
	"vendorhub/internal/logger"
	"vendorhub/internal/repository/postgres"
	"vendorhub/internal/service"
	"vendorhub/internal/storage"
	"vendorhub/internal/wizard"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store     *postgres.Store
	cache     wizard.SnapshotCache
	fileStore storage.Store
	email     service.EmailService
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, cache wizard.SnapshotCache, fileStore storage.Store, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:     store,
		cache:     cache,
		fileStore: fileStore,
		email:     email,
		config:    cfg,
	}
}

// Config exposes the configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.PurgeExpiredInvitations()
	jr.PurgeSubmittedSnapshots()
	jr.PurgeStaleUploads()
	jr.SendDraftReminders()
}
