package commands

import (
	"context"
	"fmt"

	"medex/internal/core/ports"
)

// ChangeOrderStatusCommandHandler sends the status change to the backend.
// Nothing is changed locally; callers fetch the order list again on success.
type ChangeOrderStatusCommandHandler struct {
	orders ports.OrderAPI
}

func NewChangeOrderStatusCommandHandler(orders ports.OrderAPI) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{orders: orders}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.orders.UpdateOrderStatus(ctx, cmd.OrderID(), cmd.To()); err != nil {
		return fmt.Errorf("update order %d to %s: %w", cmd.OrderID(), cmd.To(), err)
	}
	return nil
}
