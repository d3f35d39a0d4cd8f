package commands

import (
	"errors"
	"strings"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrPushStorefrontStatusCommandIsNotConstructed = errors.New(
	"PushStorefrontStatusCommand must be created via NewPushStorefrontStatusCommand constructor",
)

// PushStorefrontStatusCommand relays a storefront status change: a status-only
// update followed by a full resync of every vendor slice.
type PushStorefrontStatusCommand struct { //nolint:recvcheck //using for validation
	wooOrderID int64
	wooStatus  string
	order      *storefront.Order

	guard guard.ConstructorGuard
}

func NewPushStorefrontStatusCommand(
	wooOrderID int64,
	wooStatus string,
	order *storefront.Order,
) (PushStorefrontStatusCommand, error) {
	cmd := PushStorefrontStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setWooOrderID(wooOrderID),
		cmd.setWooStatus(wooStatus),
	); err != nil {
		return PushStorefrontStatusCommand{}, err
	}

	if order != nil {
		if order.ID != wooOrderID {
			return PushStorefrontStatusCommand{}, ErrOrderIDMismatch
		}
		o := *order
		cmd.order = &o
	}

	return cmd, nil
}

func (c PushStorefrontStatusCommand) Validate() error {
	return c.guard.Validate(ErrPushStorefrontStatusCommandIsNotConstructed)
}

func (c PushStorefrontStatusCommand) WooOrderID() int64 {
	return c.wooOrderID
}

// WooStatus is the new storefront status, sent as is. The backend translates it.
func (c PushStorefrontStatusCommand) WooStatus() string {
	return c.wooStatus
}

func (c PushStorefrontStatusCommand) Order() *storefront.Order {
	return c.order
}

func (c *PushStorefrontStatusCommand) setWooOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("woo_order_id")
	}
	c.wooOrderID = id
	return nil
}

func (c *PushStorefrontStatusCommand) setWooStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	c.wooStatus = status
	return nil
}
