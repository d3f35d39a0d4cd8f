package order

// Actor is the role that issues a status change.
type Actor string

const (
	ActorDriver Actor = "driver"
	ActorVendor Actor = "vendor"
)

// Action is a single user-facing step that requests a status change.
type Action struct {
	Label string
	Next  Status
	Actor Actor
}

var driverActions = map[Status]Action{
	DriverAssigned: {Label: "Mark Picked Up", Next: PickedUp, Actor: ActorDriver},
	PickedUp:       {Label: "Out for Delivery", Next: OutForDelivery, Actor: ActorDriver},
	OutForDelivery: {Label: "Mark Delivered", Next: Delivered, Actor: ActorDriver},
}

var vendorActions = map[Status][]Action{
	Pending: {
		{Label: "Accept", Next: Accepted, Actor: ActorVendor},
		{Label: "Cancel", Next: Cancelled, Actor: ActorVendor},
	},
	Accepted:       {{Label: "Cancel", Next: Cancelled, Actor: ActorVendor}},
	DriverAssigned: {{Label: "Cancel", Next: Cancelled, Actor: ActorVendor}},
	PickedUp:       {{Label: "Cancel", Next: Cancelled, Actor: ActorVendor}},
	OutForDelivery: {{Label: "Cancel", Next: Cancelled, Actor: ActorVendor}},
}

// NextDriverAction returns the one action a driver may take on an order in status s.
// Statuses outside driver_assigned, picked_up and out_for_delivery have none.
//
// Example:
//
//	if a, ok := order.NextDriverAction(o.Status()); ok {
//	    fmt.Printf("[%s] -> %s\n", a.Label, a.Next)
//	}
func NextDriverAction(s Status) (Action, bool) {
	a, ok := driverActions[s]
	return a, ok
}

// VendorActions returns the actions a vendor may take on an order in status s.
// Driver assignment is a separate operation and not listed here.
func VendorActions(s Status) []Action {
	return append([]Action(nil), vendorActions[s]...)
}
