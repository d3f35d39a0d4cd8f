// Package geo provides position sources for the driver console: a simulated
// walker for demos and a newline-delimited JSON reader for recorded or piped
// device positions.
package geo

import (
	"context"
	"math"
	"sync"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
)

var _ ports.PositionSource = (*Walker)(nil)

// Walker moves from a start point toward a destination by at most stepDeg degrees
// per axis per interval. Without a destination it drifts north-east.
type Walker struct {
	mu          sync.Mutex
	position    kernel.GeoPoint
	destination *kernel.GeoPoint
	stepDeg     float64
	interval    time.Duration
}

func NewWalker(start kernel.GeoPoint, stepDeg float64, interval time.Duration) (*Walker, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if stepDeg <= 0 || math.IsNaN(stepDeg) {
		return nil, errs.NewValueIsOutOfRangeError("step", stepDeg, "> 0", 1)
	}
	if interval <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("interval", interval, "> 0", "any")
	}
	return &Walker{position: start, stepDeg: stepDeg, interval: interval}, nil
}

// HeadTo sets the point the walker moves toward. It stops there.
func (w *Walker) HeadTo(dest kernel.GeoPoint) error {
	if err := dest.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	w.destination = &dest
	return nil
}

func (w *Walker) Current(_ context.Context) (kernel.GeoPoint, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.position, nil
}

// Watch emits the new position after every step. A walker that has arrived stops
// emitting but keeps the channel open until ctx is done.
func (w *Walker) Watch(ctx context.Context) (<-chan kernel.GeoPoint, error) {
	out := make(chan kernel.GeoPoint)

	go func() {
		defer close(out)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				next, moved := w.step()
				if !moved {
					continue
				}
				select {
				case out <- next:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (w *Walker) step() (kernel.GeoPoint, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destination == nil {
		w.position = w.position.Offset(w.stepDeg, w.stepDeg)
		return w.position, true
	}
	if w.position.IsEqual(*w.destination) {
		return w.position, false
	}

	dLat := clamp(w.destination.Latitude()-w.position.Latitude(), w.stepDeg)
	dLng := clamp(w.destination.Longitude()-w.position.Longitude(), w.stepDeg)
	next := w.position.Offset(dLat, dLng)
	if math.Abs(next.Latitude()-w.destination.Latitude()) < 1e-12 &&
		math.Abs(next.Longitude()-w.destination.Longitude()) < 1e-12 {
		next = *w.destination
	}
	w.position = next
	return w.position, true
}

func clamp(delta, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, delta))
}
