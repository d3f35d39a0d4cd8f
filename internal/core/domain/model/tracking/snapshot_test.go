package tracking_test

import (
	"testing"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Validate(t *testing.T) {
	require.NoError(t, tracking.Snapshot{Order: tracking.TrackedOrder{Number: "ORD-1", Status: order.Pending}}.Validate())
	require.Error(t, tracking.Snapshot{Order: tracking.TrackedOrder{Status: "lost"}}.Validate())
}

func TestSnapshot_Progress(t *testing.T) {
	s := tracking.Snapshot{Order: tracking.TrackedOrder{Number: "ORD-1", Status: order.PickedUp}}

	p := s.Progress()

	assert.Equal(t, 4, p.CompletedCount())
}

func TestSnapshot_DistanceToDestinationKm(t *testing.T) {
	dest := kernel.MustNewGeoPoint(52.52, 13.405)
	s := tracking.Snapshot{Order: tracking.TrackedOrder{Number: "ORD-1", Status: order.OutForDelivery, DeliveryPoint: &dest}}

	_, ok := s.DistanceToDestinationKm()
	assert.False(t, ok)

	s.Driver = &tracking.DriverPosition{Point: dest, UpdatedAt: time.Now()}
	km, ok := s.DistanceToDestinationKm()
	require.True(t, ok)
	assert.InDelta(t, 0, km, 1e-9)
}
