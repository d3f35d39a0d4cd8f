package commands

import (
	"errors"

	"medex/internal/core/domain/model/order"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand assigns a driver to an order. A zero driver id asks the
// handler to pick the nearest available driver of the order's vendor.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	order    *order.Order
	driverID int64

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(o *order.Order, driverID int64) (AssignDriverCommand, error) {
	if o == nil {
		return AssignDriverCommand{}, errs.NewValueIsRequiredError("order")
	}
	if err := o.Validate(); err != nil {
		return AssignDriverCommand{}, err
	}
	if !o.Status().CanAssignDriver() {
		return AssignDriverCommand{}, errs.NewValueIsInvalidErrorWithCause("order status", order.ErrTransitionNotAllowed)
	}
	if driverID < 0 {
		return AssignDriverCommand{}, errs.NewValueIsInvalidError("driver id")
	}

	return AssignDriverCommand{order: o, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Order() *order.Order {
	return c.order
}

// DriverID is the requested driver, or 0 for automatic selection.
func (c AssignDriverCommand) DriverID() int64 {
	return c.driverID
}
