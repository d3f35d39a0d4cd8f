package order

import (
	"fmt"
	"slices"
	"strings"

	"medex/internal/pkg/errs"
)

// Status is the delivery lifecycle state of an order as the MedEx backend reports it.
//
// State transitions:
//
//	pending ──> accepted ──> driver_assigned ──> picked_up ──> out_for_delivery ──> delivered
//	   │           │               │                │                 │
//	   └───────────┴───────────────┴────────────────┴─────────────────┴──> cancelled
//
// delivered and cancelled are terminal.
type Status string

const (
	Pending        Status = "pending"
	Accepted       Status = "accepted"
	DriverAssigned Status = "driver_assigned"
	PickedUp       Status = "picked_up"
	OutForDelivery Status = "out_for_delivery"
	Delivered      Status = "delivered"
	Cancelled      Status = "cancelled"
)

// transitions is the single table every status check consults: action gating in
// the consoles and request validation before a PATCH is sent.
var transitions = map[Status][]Status{
	Pending:        {Accepted, Cancelled},
	Accepted:       {DriverAssigned, Cancelled},
	DriverAssigned: {PickedUp, Cancelled},
	PickedUp:       {OutForDelivery, Cancelled},
	OutForDelivery: {Delivered, Cancelled},
	Delivered:      {},
	Cancelled:      {},
}

// ParseStatus converts a wire value into a Status.
//
// Example:
//
//	s, err := order.ParseStatus("out_for_delivery")
//	if err != nil {
//	    return err
//	}
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate returns an error for values outside the seven known statuses.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// Label is the human-readable form, e.g. "out for delivery".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// IsActive reports whether a driver is currently working the order.
func (s Status) IsActive() bool {
	return s == DriverAssigned || s == PickedUp || s == OutForDelivery
}

// CanAssignDriver reports whether a driver may be assigned, which moves the order
// to driver_assigned. Accepted orders take a first driver; driver_assigned orders
// may be reassigned before pickup.
func (s Status) CanAssignDriver() bool {
	return s.CanTransitionTo(DriverAssigned) || s == DriverAssigned
}

// AllowedTransitions returns a copy of the statuses reachable from s.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// ValidateTransition is CanTransitionTo with a descriptive error.
func (s Status) ValidateTransition(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status transition",
			fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, s, next),
		)
	}
	return nil
}
