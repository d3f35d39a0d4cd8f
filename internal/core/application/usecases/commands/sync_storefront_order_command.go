package commands

import (
	"errors"
	"fmt"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var (
	ErrSyncStorefrontOrderCommandIsNotConstructed = errors.New(
		"SyncStorefrontOrderCommand must be created via NewSyncStorefrontOrderCommand constructor",
	)
	ErrOrderIDMismatch = errors.New("order body does not match the order id")
)

// SyncStorefrontOrderCommand asks the relay to push every vendor slice of a
// storefront order to MedEx. When the order body is already known (webhook
// deliveries carry it) it is used as is; otherwise it is fetched.
//
// Example:
//
//	cmd, err := NewSyncStorefrontOrderCommand(1042, syncattempt.TriggerCheckoutCompleted, nil)
//	if err != nil {
//	    return err
//	}
//	report, err := handler.Handle(ctx, cmd)
type SyncStorefrontOrderCommand struct { //nolint:recvcheck //using for validation
	wooOrderID int64
	trigger    syncattempt.Trigger
	order      *storefront.Order

	guard guard.ConstructorGuard
}

func NewSyncStorefrontOrderCommand(
	wooOrderID int64,
	trigger syncattempt.Trigger,
	order *storefront.Order,
) (SyncStorefrontOrderCommand, error) {
	cmd := SyncStorefrontOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWooOrderID(wooOrderID),
		cmd.setTrigger(trigger),
	); err != nil {
		return SyncStorefrontOrderCommand{}, err
	}

	if err := cmd.setOrder(order); err != nil {
		return SyncStorefrontOrderCommand{}, err
	}

	return cmd, nil
}

// NewCheckoutCompletedCommand builds the sync run for a storefront "thank you"
// page hit. The ping carries only the order id, so the order is fetched.
func NewCheckoutCompletedCommand(wooOrderID int64) (SyncStorefrontOrderCommand, error) {
	return NewSyncStorefrontOrderCommand(wooOrderID, syncattempt.TriggerCheckoutCompleted, nil)
}

func (c SyncStorefrontOrderCommand) Validate() error {
	return c.guard.Validate(ErrSyncStorefrontOrderCommandIsNotConstructed)
}

func (c SyncStorefrontOrderCommand) WooOrderID() int64 {
	return c.wooOrderID
}

func (c SyncStorefrontOrderCommand) Trigger() syncattempt.Trigger {
	return c.trigger
}

// Order returns the known order body, or nil when it must be fetched.
func (c SyncStorefrontOrderCommand) Order() *storefront.Order {
	return c.order
}

func (c *SyncStorefrontOrderCommand) setWooOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("woo_order_id")
	}
	c.wooOrderID = id
	return nil
}

func (c *SyncStorefrontOrderCommand) setTrigger(trigger syncattempt.Trigger) error {
	if err := trigger.Validate(); err != nil {
		return err
	}
	c.trigger = trigger
	return nil
}

func (c *SyncStorefrontOrderCommand) setOrder(order *storefront.Order) error {
	if order == nil {
		return nil
	}
	if order.ID != c.wooOrderID {
		return fmt.Errorf("%w: %d != %d", ErrOrderIDMismatch, order.ID, c.wooOrderID)
	}
	o := *order
	c.order = &o
	return nil
}
