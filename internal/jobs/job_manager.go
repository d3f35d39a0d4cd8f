package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"medex/internal/core/application/usecases/commands"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager coordinates the relay's scheduled jobs.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs []namedJob
}

// NewJobManager creates a job manager with the sync ledger retention job.
func NewJobManager(
	pruneHandler commands.PruneSyncAttemptsCommandHandler,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	jm.Add("sync ledger retention job", NewSyncLedgerRetentionJob(pruneHandler, retention, schedule, logger))
	return jm
}

// Add registers another job. Jobs start in the order they were added.
func (jm *JobManager) Add(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully, newest first.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
