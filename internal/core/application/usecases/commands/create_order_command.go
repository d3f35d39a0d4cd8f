package commands

import (
	"errors"
	"strings"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/ports"
	"medex/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrVendorIsRequired          = errors.New("vendor is required")
	ErrCustomerNameIsRequired    = errors.New("customer name is required")
	ErrDeliveryAddressIsRequired = errors.New("delivery address is required")
	ErrItemIsInvalid             = errors.New("item needs a name and a positive quantity")
	ErrDeliveryFeeIsInvalid      = errors.New("delivery fee must not be negative")
)

// CreateOrderCommand represents a vendor creating a delivery order by hand.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(ports.NewOrder{
//	    VendorID:        3,
//	    CustomerName:    "Jane Doe",
//	    DeliveryAddress: "12 Elm St, Springfield",
//	    Items:           []order.Item{{Name: "Insulin pen", Quantity: 1, Price: 42}},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	in ports.NewOrder

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(in ports.NewOrder) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setVendor(in.VendorID),
		cmd.setCustomer(in.CustomerName, in.CustomerPhone),
		cmd.setAddresses(in.PickupAddress, in.DeliveryAddress, in.DeliveryPoint),
		cmd.setItems(in.Items),
		cmd.setDeliveryFee(in.DeliveryFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.in.Notes = strings.TrimSpace(in.Notes)

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Request returns the body to send.
func (c CreateOrderCommand) Request() ports.NewOrder {
	out := c.in
	out.Items = append([]order.Item(nil), c.in.Items...)
	return out
}

func (c *CreateOrderCommand) setVendor(vendorID int64) error {
	if vendorID <= 0 {
		return ErrVendorIsRequired
	}
	c.in.VendorID = vendorID
	return nil
}

func (c *CreateOrderCommand) setCustomer(name, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	c.in.CustomerName = name
	c.in.CustomerPhone = strings.TrimSpace(phone)
	return nil
}

func (c *CreateOrderCommand) setAddresses(pickup, delivery string, point *kernel.GeoPoint) error {
	delivery = strings.TrimSpace(delivery)
	if delivery == "" {
		return ErrDeliveryAddressIsRequired
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
		p := *point
		c.in.DeliveryPoint = &p
	}
	c.in.PickupAddress = strings.TrimSpace(pickup)
	c.in.DeliveryAddress = delivery
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity <= 0 || item.Price < 0 {
			return ErrItemIsInvalid
		}
	}
	c.in.Items = append([]order.Item(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return ErrDeliveryFeeIsInvalid
	}
	c.in.DeliveryFee = fee
	return nil
}
