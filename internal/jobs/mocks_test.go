package jobs_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/domain/model/tracking"
	"medex/internal/core/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingDriverAPI records reported positions in call order.
type recordingDriverAPI struct {
	mu        sync.Mutex
	positions []kernel.GeoPoint
	block     chan struct{}
}

func (r *recordingDriverAPI) ListDrivers(context.Context, ports.DriverFilter) ([]*driver.Driver, error) {
	return nil, nil
}

func (r *recordingDriverAPI) UpdateDriverStatus(context.Context, int64, driver.Status) error {
	return nil
}

func (r *recordingDriverAPI) ReportLocation(ctx context.Context, _ int64, at kernel.GeoPoint) error {
	r.mu.Lock()
	r.positions = append(r.positions, at)
	r.mu.Unlock()

	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (r *recordingDriverAPI) reported() []kernel.GeoPoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]kernel.GeoPoint(nil), r.positions...)
}

// scriptedSource returns a fixed current position and forwards pushed updates.
type scriptedSource struct {
	current kernel.GeoPoint
	updates chan kernel.GeoPoint
}

func newScriptedSource(current kernel.GeoPoint) *scriptedSource {
	return &scriptedSource{current: current, updates: make(chan kernel.GeoPoint)}
}

func (s *scriptedSource) Current(context.Context) (kernel.GeoPoint, error) {
	return s.current, nil
}

func (s *scriptedSource) Watch(ctx context.Context) (<-chan kernel.GeoPoint, error) {
	out := make(chan kernel.GeoPoint)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p := <-s.updates:
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// push delivers p to the running watcher, or gives up after a second.
func (s *scriptedSource) push(p kernel.GeoPoint) bool {
	select {
	case s.updates <- p:
		return true
	case <-time.After(time.Second):
		return false
	}
}

// unwatchableSource has a current position but no update stream.
type unwatchableSource struct {
	current kernel.GeoPoint
}

func (s unwatchableSource) Current(context.Context) (kernel.GeoPoint, error) {
	return s.current, nil
}

func (s unwatchableSource) Watch(context.Context) (<-chan kernel.GeoPoint, error) {
	return nil, errors.New("no position updates on this device")
}

// keepFeeding writes a fresh NDJSON position on every tick until one with a
// latitude of at least minLat has been reported.
func keepFeeding(t *testing.T, w io.Writer, api *recordingDriverAPI, minLat float64) {
	t.Helper()
	lat := minLat
	require.Eventually(t, func() bool {
		if _, err := fmt.Fprintf(w, "{\"latitude\": %g, \"longitude\": 1}\n", lat); err != nil {
			return false
		}
		lat += 0.001
		for _, p := range api.reported() {
			if p.Latitude() >= minLat {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

type MockTrackingAPI struct {
	mock.Mock
}

func (m *MockTrackingAPI) Track(ctx context.Context, token string) (tracking.Snapshot, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(tracking.Snapshot), args.Error(1)
}

type MockSyncAttemptRepository struct {
	mock.Mock
}

func (m *MockSyncAttemptRepository) Add(ctx context.Context, attempt *syncattempt.Attempt) error {
	return m.Called(ctx, attempt).Error(0)
}

func (m *MockSyncAttemptRepository) LastWooStatus(ctx context.Context, wooOrderID int64) (string, bool, error) {
	args := m.Called(ctx, wooOrderID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSyncAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type stubLedgerUoW struct {
	repo *MockSyncAttemptRepository
}

func (u stubLedgerUoW) Begin(context.Context) error    { return nil }
func (u stubLedgerUoW) Commit(context.Context) error   { return nil }
func (u stubLedgerUoW) Rollback(context.Context) error { return nil }
func (u stubLedgerUoW) SyncAttemptRepository() ports.SyncAttemptRepository {
	return u.repo
}

type stubLedgerFactory struct {
	repo *MockSyncAttemptRepository
}

func (f stubLedgerFactory) Create() commands.LedgerUoW {
	return stubLedgerUoW(f)
}
