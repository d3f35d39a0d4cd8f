package ports

import (
	"context"

	"medex/internal/core/domain/model/kernel"
)

// PositionSource is the device location provider of the driver console.
type PositionSource interface {
	// Current returns the most recent known position.
	Current(ctx context.Context) (kernel.GeoPoint, error)

	// Watch streams position updates until ctx is cancelled, then closes the channel.
	Watch(ctx context.Context) (<-chan kernel.GeoPoint, error)
}
