package commands

import (
	"context"
	"fmt"

	"medex/internal/core/domain/model/order"
	"medex/internal/core/ports"
)

// CreateOrderCommandHandler sends POST /orders. The backend assigns the order
// number and tracking token and starts the order in pending.
type CreateOrderCommandHandler struct {
	orders ports.OrderAPI
}

func NewCreateOrderCommandHandler(orders ports.OrderAPI) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{orders: orders}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := h.orders.CreateOrder(ctx, cmd.Request())
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}
