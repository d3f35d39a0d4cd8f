package commands

import (
	"errors"
	"fmt"
	"slices"

	"medex/internal/core/domain/model/order"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrActionNotPermitted = errors.New("action is not permitted for this role")
)

// ChangeOrderStatusCommand requests PATCH /orders/{id}/status for a change the
// transition table allows and the actor is entitled to.
//
// Example:
//
//	cmd, err := NewDriverActionCommand(o)
//	if err != nil {
//	    return err // no action in this status
//	}
//	if err = handler.Handle(ctx, cmd); err != nil {
//	    return err // the previously fetched list stays authoritative
//	}
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	change order.StatusChange
	actor  order.Actor

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID int64,
	current order.Status,
	next order.Status,
	actor order.Actor,
) (ChangeOrderStatusCommand, error) {
	var idErr error
	if orderID <= 0 {
		idErr = errs.NewValueIsRequiredError("order id")
	}
	if err := errors.Join(idErr, current.ValidateTransition(next)); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	if err := checkActor(current, next, actor); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		change: order.StatusChange{OrderID: orderID, From: current, To: next},
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewDriverActionCommand builds the command behind the driver's single next action.
func NewDriverActionCommand(o *order.Order) (ChangeOrderStatusCommand, error) {
	if err := o.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	action, ok := order.NextDriverAction(o.Status())
	if !ok {
		return ChangeOrderStatusCommand{}, order.ErrNoDriverAction
	}
	return NewChangeOrderStatusCommand(o.ID(), o.Status(), action.Next, order.ActorDriver)
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() int64 {
	return c.change.OrderID
}

func (c ChangeOrderStatusCommand) From() order.Status {
	return c.change.From
}

func (c ChangeOrderStatusCommand) To() order.Status {
	return c.change.To
}

func (c ChangeOrderStatusCommand) Actor() order.Actor {
	return c.actor
}

func checkActor(current, next order.Status, actor order.Actor) error {
	var permitted []order.Status
	switch actor {
	case order.ActorDriver:
		if a, ok := order.NextDriverAction(current); ok {
			permitted = append(permitted, a.Next)
		}
	case order.ActorVendor:
		for _, a := range order.VendorActions(current) {
			permitted = append(permitted, a.Next)
		}
	default:
		return errs.NewValueIsInvalidError("actor")
	}

	if !slices.Contains(permitted, next) {
		return fmt.Errorf("%w: %s may not move %s to %s", ErrActionNotPermitted, actor, current, next)
	}
	return nil
}
