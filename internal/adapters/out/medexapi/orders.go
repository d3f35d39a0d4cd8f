package medexapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"medex/internal/core/domain/model/order"
	"medex/internal/core/ports"
)

var _ ports.OrderAPI = (*Client)(nil)

func (c *Client) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := url.Values{}
	if filter.VendorID > 0 {
		query.Set("vendor_id", strconv.FormatInt(filter.VendorID, 10))
	}
	if filter.DriverID > 0 {
		query.Set("driver_id", strconv.FormatInt(filter.DriverID, 10))
	}

	var out []orderDTO
	if err := c.do(ctx, call{op: "list orders", method: http.MethodGet, path: "/orders", query: query, auth: true}, &out); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(out))
	for _, dto := range out {
		o, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, in ports.NewOrder) (*order.Order, error) {
	req := createOrderRequest{
		VendorID:        in.VendorID,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		PickupAddress:   in.PickupAddress,
		DeliveryAddress: in.DeliveryAddress,
		Items:           make([]itemDTO, 0, len(in.Items)),
		DeliveryFee:     in.DeliveryFee,
		Notes:           in.Notes,
	}
	if p := in.DeliveryPoint; p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		req.DeliveryLatitude, req.DeliveryLongitude = &lat, &lng
	}
	for _, it := range in.Items {
		req.Items = append(req.Items, itemDTO{SKU: it.SKU, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	var out orderDTO
	if err := c.do(ctx, call{op: "create order", method: http.MethodPost, path: "/orders", body: req, auth: true}, &out); err != nil {
		return nil, err
	}
	created, err := out.toDomain()
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) error {
	return c.do(ctx, call{
		op:     "update order status",
		method: http.MethodPatch,
		path:   "/orders/" + strconv.FormatInt(orderID, 10) + "/status",
		query:  url.Values{"new_status": {next.String()}},
		auth:   true,
	}, nil)
}

func (c *Client) AssignDriver(ctx context.Context, orderID, driverID int64) error {
	return c.do(ctx, call{
		op:     "assign driver",
		method: http.MethodPost,
		path:   "/orders/" + strconv.FormatInt(orderID, 10) + "/assign",
		query:  url.Values{"driver_id": {strconv.FormatInt(driverID, 10)}},
		auth:   true,
	}, nil)
}
