package services

import (
	"errors"
	"math"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/order"
)

var ErrNoAvailableDriver = errors.New("no available driver")

// DriverDispatcher suggests which of a vendor's drivers should take an order.
// The backend performs the assignment; this only picks the candidate.
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// Suggest returns the available driver closest to the order's pickup point
// (or delivery point when pickup has no coordinates). Drivers without a known
// location are considered only when no located driver is available.
//
// Example:
//
//	d, err := services.NewDriverDispatcher().Suggest(o, drivers)
//	if errors.Is(err, services.ErrNoAvailableDriver) {
//	    fmt.Println("every driver is offline or busy")
//	}
func (DriverDispatcher) Suggest(o *order.Order, drivers []*driver.Driver) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.Status().CanAssignDriver() {
		return nil, order.ErrTransitionNotAllowed
	}

	target := o.PickupPoint()
	if target == nil {
		target = o.DeliveryPoint()
	}

	var (
		best         *driver.Driver
		bestDistance = math.MaxFloat64
		unlocated    *driver.Driver
	)

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.Status() != driver.Available {
			continue
		}

		position, _ := d.LastLocation()
		if position == nil || target == nil {
			if unlocated == nil {
				unlocated = d
			}
			continue
		}

		if distance := position.DistanceKm(*target); distance < bestDistance {
			best = d
			bestDistance = distance
		}
	}

	if best != nil {
		return best, nil
	}
	if unlocated != nil {
		return unlocated, nil
	}
	return nil, ErrNoAvailableDriver
}
