package commands

import (
	"context"
	"fmt"

	"medex/internal/core/domain/services"
	"medex/internal/core/ports"
)

// AssignDriverCommandHandler calls POST /orders/{id}/assign, choosing the driver
// with the DriverDispatcher when none was given.
type AssignDriverCommandHandler struct {
	orders     ports.OrderAPI
	vendors    ports.VendorAPI
	dispatcher services.DriverDispatcher
}

func NewAssignDriverCommandHandler(orders ports.OrderAPI, vendors ports.VendorAPI) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		orders:     orders,
		vendors:    vendors,
		dispatcher: services.NewDriverDispatcher(),
	}
}

// Handle returns the id of the driver that was assigned.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	driverID := cmd.DriverID()
	if driverID == 0 {
		drivers, err := h.vendors.VendorDrivers(ctx, cmd.Order().VendorID())
		if err != nil {
			return 0, fmt.Errorf("list vendor drivers: %w", err)
		}

		suggested, err := h.dispatcher.Suggest(cmd.Order(), drivers)
		if err != nil {
			return 0, err
		}
		driverID = suggested.ID()
	}

	if err := h.orders.AssignDriver(ctx, cmd.Order().ID(), driverID); err != nil {
		return 0, fmt.Errorf("assign driver %d to order %d: %w", driverID, cmd.Order().ID(), err)
	}
	return driverID, nil
}
