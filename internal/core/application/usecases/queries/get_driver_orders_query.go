package queries

import (
	"context"
	"errors"
	"fmt"

	"medex/internal/core/domain/model/order"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery lists the orders a driver is working on.
type GetDriverOrdersQuery struct {
	driverID int64

	guard guard.ConstructorGuard
}

func NewGetDriverOrdersQuery(driverID int64) (GetDriverOrdersQuery, error) {
	if driverID <= 0 {
		return GetDriverOrdersQuery{}, errs.NewValueIsRequiredError("driver id")
	}
	return GetDriverOrdersQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

func (q GetDriverOrdersQuery) DriverID() int64 {
	return q.driverID
}

// DriverOrderView pairs an active order with the single action the driver can take.
type DriverOrderView struct {
	Order  *order.Order
	Action order.Action
}

type GetDriverOrdersQueryHandler struct {
	orders ports.OrderAPI
}

func NewGetDriverOrdersQueryHandler(orders ports.OrderAPI) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{orders: orders}
}

// Handle fetches GET /orders?driver_id= and keeps driver_assigned, picked_up and
// out_for_delivery orders in backend order.
func (h GetDriverOrdersQueryHandler) Handle(ctx context.Context, query GetDriverOrdersQuery) ([]DriverOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListOrders(ctx, ports.OrderFilter{DriverID: query.DriverID()})
	if err != nil {
		return nil, fmt.Errorf("list orders of driver %d: %w", query.DriverID(), err)
	}

	active := order.FilterActive(orders)
	views := make([]DriverOrderView, 0, len(active))
	for _, o := range active {
		action, ok := order.NextDriverAction(o.Status())
		if !ok {
			continue
		}
		views = append(views, DriverOrderView{Order: o, Action: action})
	}
	return views, nil
}
