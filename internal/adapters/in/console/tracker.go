package console

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/domain/model/tracking"
)

// TrackerPrinter renders tracking views. Polls may overlap, so writes are serialized.
type TrackerPrinter struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewTrackerPrinter(out io.Writer) *TrackerPrinter {
	return &TrackerPrinter{out: out, now: time.Now}
}

// Print writes the order header, the six progress steps and the driver position.
func (p *TrackerPrinter) Print(view queries.TrackingView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	o := view.Snapshot.Order
	fmt.Fprintf(p.out, "\n%s  %s  (updated %s)\n", o.Number, o.Status.Label(), p.now().Format("15:04:05"))
	fmt.Fprintf(p.out, "to %s, %s\n", o.CustomerName, o.DeliveryAddress)

	if view.Progress.Cancelled {
		fmt.Fprintln(p.out, "This order was cancelled")
		return
	}

	for _, step := range view.Progress.Steps {
		mark := "[ ]"
		switch {
		case step.Active:
			mark = "[>]"
		case step.Completed:
			mark = "[x]"
		}
		fmt.Fprintf(p.out, "  %s %s\n", mark, step.Label)
	}

	if eta := view.Snapshot.ETAMinutes; eta != nil {
		fmt.Fprintf(p.out, "arriving in about %d min\n", *eta)
	}
	if d := view.Snapshot.Driver; d != nil {
		fmt.Fprintf(p.out, "driver at %s (%s)", d.Point, d.UpdatedAt.Format("15:04:05"))
		if view.DistanceKm != nil {
			fmt.Fprintf(p.out, ", %.1f km away", *view.DistanceKm)
		}
		fmt.Fprintln(p.out)
	}
}

// PrintError reports a failed poll.
func (p *TrackerPrinter) PrintError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if errors.Is(err, tracking.ErrTokenInvalid) {
		fmt.Fprintln(p.out, "Tracking link is invalid or expired")
		return
	}
	fmt.Fprintf(p.out, "Could not refresh tracking: %v\n", err)
}
