package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/domain/model/tracking"
)

// DefaultTrackingInterval is how often the public tracking view refreshes.
const DefaultTrackingInterval = 10 * time.Second

// TrackingPollJob fetches the tracking view immediately and then on every tick.
// Fetches may overlap. Polling stops by itself when the backend reports the token
// as invalid; transient errors are passed to onError and polling continues.
type TrackingPollJob struct {
	handler  queries.GetTrackingSnapshotQueryHandler
	query    queries.GetTrackingSnapshotQuery
	interval time.Duration
	onUpdate func(queries.TrackingView)
	onError  func(error)
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewTrackingPollJob creates a job for token. Intervals under a second are
// rounded up to one second by the scheduler. onError may be nil.
func NewTrackingPollJob(
	handler queries.GetTrackingSnapshotQueryHandler,
	token string,
	interval time.Duration,
	onUpdate func(queries.TrackingView),
	onError func(error),
	logger *slog.Logger,
) (*TrackingPollJob, error) {
	query, err := queries.NewGetTrackingSnapshotQuery(token)
	if err != nil {
		return nil, err
	}
	if onUpdate == nil {
		return nil, errors.New("tracking poll job needs an update callback")
	}
	if onError == nil {
		onError = func(error) {}
	}
	if interval <= 0 {
		interval = DefaultTrackingInterval
	}

	return &TrackingPollJob{
		handler:  handler,
		query:    query,
		interval: interval,
		onUpdate: onUpdate,
		onError:  onError,
		cron:     cron.New(),
		logger:   logger.With("component", "tracking_poll_job"),
		stopped:  make(chan struct{}),
	}, nil
}

// Start schedules the poll and runs the first fetch right away.
func (j *TrackingPollJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cancel != nil {
		return errors.New("tracking poll job already started")
	}

	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.fetch)
	if err != nil {
		return err
	}

	j.ctx, j.cancel = context.WithCancel(context.Background())
	j.cron.Start()
	go j.fetch()

	j.logger.InfoContext(j.ctx, "Tracking poll started", "interval", j.interval.String())
	return nil
}

// Stop ends polling. Fetches in flight are cancelled and their results dropped.
// It is safe to call more than once and from inside a callback.
func (j *TrackingPollJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cancel == nil {
		return
	}
	select {
	case <-j.stopped:
		return
	default:
	}

	j.cancel()
	j.cron.Stop()
	close(j.stopped)
	j.logger.InfoContext(context.Background(), "Tracking poll stopped")
}

// Done is closed once polling has stopped, by Stop or by an invalid token.
func (j *TrackingPollJob) Done() <-chan struct{} {
	return j.stopped
}

func (j *TrackingPollJob) fetch() {
	j.mu.Lock()
	ctx := j.ctx
	j.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	view, err := j.handler.Handle(ctx, j.query)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		if errors.Is(err, tracking.ErrTokenInvalid) {
			j.logger.WarnContext(ctx, "Tracking token rejected, polling stopped")
			j.onError(err)
			j.Stop()
			return
		}
		j.logger.WarnContext(ctx, "Tracking fetch failed", "error", err)
		j.onError(err)
		return
	}

	j.onUpdate(view)
}
