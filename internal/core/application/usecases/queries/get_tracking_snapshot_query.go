package queries

import (
	"context"
	"errors"
	"strings"

	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/tracking"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrGetTrackingSnapshotQueryIsNotConstructed = errors.New(
	"GetTrackingSnapshotQuery must be created via NewGetTrackingSnapshotQuery constructor",
)

// GetTrackingSnapshotQuery fetches one public tracking snapshot.
type GetTrackingSnapshotQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewGetTrackingSnapshotQuery(token string) (GetTrackingSnapshotQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return GetTrackingSnapshotQuery{}, errs.NewValueIsRequiredError("tracking token")
	}
	return GetTrackingSnapshotQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackingSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingSnapshotQueryIsNotConstructed)
}

func (q GetTrackingSnapshotQuery) Token() string {
	return q.token
}

// TrackingView is what the tracking console renders.
type TrackingView struct {
	Snapshot   tracking.Snapshot
	Progress   order.Progress
	DistanceKm *float64
}

type GetTrackingSnapshotQueryHandler struct {
	tracking ports.TrackingAPI
}

func NewGetTrackingSnapshotQueryHandler(api ports.TrackingAPI) GetTrackingSnapshotQueryHandler {
	return GetTrackingSnapshotQueryHandler{tracking: api}
}

// Handle passes tracking.ErrTokenInvalid through unwrapped so pollers can stop on it.
func (h GetTrackingSnapshotQueryHandler) Handle(ctx context.Context, query GetTrackingSnapshotQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	snapshot, err := h.tracking.Track(ctx, query.Token())
	if err != nil {
		return TrackingView{}, err
	}
	if err = snapshot.Validate(); err != nil {
		return TrackingView{}, err
	}

	view := TrackingView{Snapshot: snapshot, Progress: snapshot.Progress()}
	if km, ok := snapshot.DistanceToDestinationKm(); ok {
		view.DistanceKm = &km
	}
	return view, nil
}
