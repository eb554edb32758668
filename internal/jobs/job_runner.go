package jobs

import (
	"schoolhub-backend/internal/config"
	"schoolhub-backend/internal/logger"
	"schoolhub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	circulation service.CirculationService
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(circulation service.CirculationService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		circulation: circulation,
		config:      cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
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
	jr.SweepOverdueLoans()
	jr.SendOverdueNotices()
}
