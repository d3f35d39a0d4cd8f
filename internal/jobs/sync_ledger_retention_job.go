package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"medex/internal/core/application/usecases/commands"
)

// DefaultRetentionSchedule runs the ledger cleanup once a day at midnight.
const DefaultRetentionSchedule = "@daily"

// SyncLedgerRetentionJob deletes sync attempts older than the retention period.
type SyncLedgerRetentionJob struct {
	handler   commands.PruneSyncAttemptsCommandHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewSyncLedgerRetentionJob creates the job. An empty schedule means DefaultRetentionSchedule.
func NewSyncLedgerRetentionJob(
	handler commands.PruneSyncAttemptsCommandHandler,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) *SyncLedgerRetentionJob {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	return &SyncLedgerRetentionJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "sync_ledger_retention_job"),
	}
}

// Start validates the retention period and schedules the cleanup.
func (j *SyncLedgerRetentionJob) Start() error {
	cmd, err := commands.NewPruneSyncAttemptsCommand(j.retention)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background(), cmd)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sync ledger retention job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// RunOnce prunes the ledger immediately.
func (j *SyncLedgerRetentionJob) RunOnce(ctx context.Context, cmd commands.PruneSyncAttemptsCommand) {
	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Sync ledger retention failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "Expired sync attempts deleted", "count", deleted)
	}
}

// Stop stops the scheduler and waits for a running cleanup to finish.
func (j *SyncLedgerRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sync ledger retention job stopped")
}
