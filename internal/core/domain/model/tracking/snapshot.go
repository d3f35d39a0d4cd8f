// Package tracking models what the public tracking endpoint returns for a token.
package tracking

import (
	"errors"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/pkg/errs"
)

// ErrTokenInvalid is returned when the backend does not recognise a tracking token.
// Polling stops on it.
var ErrTokenInvalid = errors.New("invalid tracking token")

// TrackedOrder is the customer-visible part of an order.
type TrackedOrder struct {
	Number                string
	Status                order.Status
	CustomerName          string
	DeliveryAddress       string
	DeliveryPoint         *kernel.GeoPoint
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
}

// DriverPosition is the assigned driver's last reported location.
type DriverPosition struct {
	Point     kernel.GeoPoint
	UpdatedAt time.Time
}

// Snapshot is one poll result.
type Snapshot struct {
	Order      TrackedOrder
	Driver     *DriverPosition
	ETAMinutes *int
}

// Validate checks the fields the view cannot render without.
func (s Snapshot) Validate() error {
	var numberErr error
	if s.Order.Number == "" {
		numberErr = errs.NewValueIsRequiredError("order_number")
	}
	return errors.Join(numberErr, s.Order.Status.Validate())
}

// Progress renders the six-step indicator for the current status.
func (s Snapshot) Progress() order.Progress {
	return order.NewProgress(s.Order.Status)
}

// DistanceToDestinationKm reports how far the driver is from the delivery point.
// ok is false when either position is unknown.
func (s Snapshot) DistanceToDestinationKm() (km float64, ok bool) {
	if s.Driver == nil || s.Order.DeliveryPoint == nil {
		return 0, false
	}
	return s.Driver.Point.DistanceKm(*s.Order.DeliveryPoint), true
}
