package order

import (
	"errors"
	"strings"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

// Item is one line of an order as the backend stores it.
type Item struct {
	SKU      string
	Name     string
	Quantity int
	Price    float64
}

// Snapshot carries the backend representation of an order into RestoreOrder.
type Snapshot struct {
	ID                    int64
	Number                string
	Status                string
	CustomerName          string
	CustomerPhone         string
	PickupAddress         string
	PickupPoint           *kernel.GeoPoint
	DeliveryAddress       string
	DeliveryPoint         *kernel.GeoPoint
	VendorID              int64
	DriverID              *int64
	TrackingToken         string
	DeliveryFee           float64
	Notes                 string
	Items                 []Item
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
}

// Order is the client-side read model of a MedEx order. The backend owns the
// order; this type never changes status locally. A status change is planned with
// PlanStatusChange, sent to the backend, and the order is fetched again.
type Order struct {
	id                    int64
	number                string
	status                Status
	customerName          string
	customerPhone         string
	pickupAddress         string
	pickupPoint           *kernel.GeoPoint
	deliveryAddress       string
	deliveryPoint         *kernel.GeoPoint
	vendorID              int64
	driverID              *int64
	trackingToken         string
	deliveryFee           float64
	notes                 string
	items                 []Item
	estimatedDeliveryTime *time.Time
	createdAt             time.Time

	guard guard.ConstructorGuard
}

// RestoreOrder validates a backend snapshot and returns the read model.
func RestoreOrder(s Snapshot) (*Order, error) {
	status, statusErr := ParseStatus(s.Status)

	var idErr, numberErr error
	if s.ID <= 0 {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if strings.TrimSpace(s.Number) == "" {
		numberErr = errs.NewValueIsRequiredError("order_number")
	}
	if err := errors.Join(idErr, numberErr, statusErr); err != nil {
		return nil, err
	}

	return &Order{
		id:                    s.ID,
		number:                s.Number,
		status:                status,
		customerName:          s.CustomerName,
		customerPhone:         s.CustomerPhone,
		pickupAddress:         s.PickupAddress,
		pickupPoint:           s.PickupPoint,
		deliveryAddress:       s.DeliveryAddress,
		deliveryPoint:         s.DeliveryPoint,
		vendorID:              s.VendorID,
		driverID:              s.DriverID,
		trackingToken:         s.TrackingToken,
		deliveryFee:           s.DeliveryFee,
		notes:                 s.Notes,
		items:                 append([]Item(nil), s.Items...),
		estimatedDeliveryTime: s.EstimatedDeliveryTime,
		createdAt:             s.CreatedAt,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() int64                       { return o.id }
func (o *Order) Number() string                  { return o.number }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) CustomerName() string            { return o.customerName }
func (o *Order) CustomerPhone() string           { return o.customerPhone }
func (o *Order) PickupAddress() string           { return o.pickupAddress }
func (o *Order) DeliveryAddress() string         { return o.deliveryAddress }
func (o *Order) VendorID() int64                 { return o.vendorID }
func (o *Order) TrackingToken() string           { return o.trackingToken }
func (o *Order) DeliveryFee() float64            { return o.deliveryFee }
func (o *Order) Notes() string                   { return o.notes }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) Items() []Item                   { return append([]Item(nil), o.items...) }
func (o *Order) HasDriver() bool                 { return o.driverID != nil }
func (o *Order) IsActive() bool                  { return o.status.IsActive() }
func (o *Order) IsTerminal() bool                { return o.status.IsTerminal() }
func (o *Order) Progress() Progress              { return NewProgress(o.status) }
func (o *Order) DeliveryPoint() *kernel.GeoPoint { return copyPoint(o.deliveryPoint) }
func (o *Order) PickupPoint() *kernel.GeoPoint   { return copyPoint(o.pickupPoint) }

func copyPoint(p *kernel.GeoPoint) *kernel.GeoPoint {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// DriverID returns the assigned driver, or nil when unassigned.
func (o *Order) DriverID() *int64 {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// EstimatedDeliveryTime returns the backend's estimate, or nil when none was given.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	if o.estimatedDeliveryTime == nil {
		return nil
	}
	t := *o.estimatedDeliveryTime
	return &t
}

// CreatedOn reports whether the order was created on the same calendar day as day,
// compared in day's location.
func (o *Order) CreatedOn(day time.Time) bool {
	created := o.createdAt.In(day.Location())
	y1, m1, d1 := created.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StatusChange is a validated request to move an order to a new status.
type StatusChange struct {
	OrderID int64
	From    Status
	To      Status
}

// PlanStatusChange checks next against the transition table and returns the
// request to send. The order itself is left untouched.
func (o *Order) PlanStatusChange(next Status) (StatusChange, error) {
	if err := o.status.ValidateTransition(next); err != nil {
		return StatusChange{}, err
	}
	return StatusChange{OrderID: o.id, From: o.status, To: next}, nil
}

// PlanDriverAction returns the status change behind the driver's next action.
func (o *Order) PlanDriverAction() (Action, StatusChange, error) {
	action, ok := NextDriverAction(o.status)
	if !ok {
		return Action{}, StatusChange{}, ErrNoDriverAction
	}
	change, err := o.PlanStatusChange(action.Next)
	if err != nil {
		return Action{}, StatusChange{}, err
	}
	return action, change, nil
}

// FilterActive keeps orders a driver is working on, preserving order.
func FilterActive(orders []*Order) []*Order {
	active := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.IsActive() {
			active = append(active, o)
		}
	}
	return active
}
