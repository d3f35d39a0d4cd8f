package jobs

import (
	"context"
	"log/slog"
	"sync"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/ports"
)

var _ commands.LocationReporting = (*LocationReportingJob)(nil)

// LocationReportingJob sends the driver's position while they are online.
// The current position is reported first; after that every position update
// from the source is sent as its own call, without waiting for earlier calls.
type LocationReportingJob struct {
	handler commands.ReportLocationCommandHandler
	source  ports.PositionSource
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLocationReportingJob creates a stopped job.
func NewLocationReportingJob(
	handler commands.ReportLocationCommandHandler,
	source ports.PositionSource,
	logger *slog.Logger,
) *LocationReportingJob {
	return &LocationReportingJob{
		handler: handler,
		source:  source,
		logger:  logger.With("component", "location_reporting_job"),
	}
}

// Start begins reporting for driverID, restarting if already running. Reporting
// outlives ctx's cancellation; only Stop ends it.
func (j *LocationReportingJob) Start(ctx context.Context, driverID int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	j.cancel = cancel
	j.done = done

	go j.run(runCtx, driverID, done)

	j.logger.InfoContext(ctx, "Location reporting started", "driver_id", driverID)
	return nil
}

// Stop cancels reporting. Once it returns no new location call is started, and
// calls still in flight are cancelled.
func (j *LocationReportingJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopLocked() {
		j.logger.InfoContext(context.Background(), "Location reporting stopped")
	}
}

// Running reports whether reporting is live. It turns false on Stop and also
// when the position source fails or runs out.
func (j *LocationReportingJob) Running() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.done == nil {
		return false
	}
	select {
	case <-j.done:
		return false
	default:
		return true
	}
}

func (j *LocationReportingJob) stopLocked() bool {
	if j.cancel == nil {
		return false
	}
	j.cancel()
	<-j.done
	j.cancel = nil
	j.done = nil
	return true
}

func (j *LocationReportingJob) run(ctx context.Context, driverID int64, done chan<- struct{}) {
	defer close(done)

	current, err := j.source.Current(ctx)
	if err != nil {
		j.logger.WarnContext(ctx, "Current position unavailable", "driver_id", driverID, "error", err)
	} else {
		// Updates are only subscribed after the first report has finished, so it
		// is always the first call. Stop does not wait for it.
		select {
		case <-j.report(ctx, driverID, current):
		case <-ctx.Done():
			return
		}
	}

	updates, err := j.source.Watch(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Position updates unavailable", "driver_id", driverID, "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-updates:
			if !ok {
				j.logger.InfoContext(ctx, "Position source closed", "driver_id", driverID)
				return
			}
			j.report(ctx, driverID, p)
		}
	}
}

// report sends one position in its own goroutine and returns a channel closed
// when the call has finished.
func (j *LocationReportingJob) report(ctx context.Context, driverID int64, p kernel.GeoPoint) <-chan struct{} {
	finished := make(chan struct{})
	if ctx.Err() != nil {
		close(finished)
		return finished
	}

	go func() {
		defer close(finished)

		cmd, err := commands.NewReportLocationCommand(driverID, p)
		if err != nil {
			j.logger.ErrorContext(ctx, "Invalid position", "driver_id", driverID, "error", err)
			return
		}
		if err := j.handler.Handle(ctx, cmd); err != nil && ctx.Err() == nil {
			j.logger.WarnContext(ctx, "Location update failed", "driver_id", driverID, "position", p.String(), "error", err)
		}
	}()
	return finished
}
