package medexapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/ports"
)

var _ ports.DriverAPI = (*Client)(nil)

func (c *Client) ListDrivers(ctx context.Context, filter ports.DriverFilter) ([]*driver.Driver, error) {
	query := url.Values{}
	if filter.VendorID > 0 {
		query.Set("vendor_id", strconv.FormatInt(filter.VendorID, 10))
	}
	if filter.DriverID > 0 {
		query.Set("driver_id", strconv.FormatInt(filter.DriverID, 10))
	}

	var out []driverDTO
	if err := c.do(ctx, call{op: "list drivers", method: http.MethodGet, path: "/drivers", query: query, auth: true}, &out); err != nil {
		return nil, err
	}
	return driversOf("list drivers", out)
}

func (c *Client) UpdateDriverStatus(ctx context.Context, driverID int64, next driver.Status) error {
	return c.do(ctx, call{
		op:     "update driver status",
		method: http.MethodPatch,
		path:   "/drivers/" + strconv.FormatInt(driverID, 10) + "/status",
		query:  url.Values{"new_status": {next.String()}},
		auth:   true,
	}, nil)
}

func (c *Client) ReportLocation(ctx context.Context, driverID int64, at kernel.GeoPoint) error {
	if err := at.Validate(); err != nil {
		return err
	}
	return c.do(ctx, call{
		op:     "report location",
		method: http.MethodPost,
		path:   "/drivers/" + strconv.FormatInt(driverID, 10) + "/location",
		query: url.Values{
			"latitude":  {strconv.FormatFloat(at.Latitude(), 'f', -1, 64)},
			"longitude": {strconv.FormatFloat(at.Longitude(), 'f', -1, 64)},
		},
		auth: true,
	}, nil)
}

func driversOf(op string, dtos []driverDTO) ([]*driver.Driver, error) {
	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}
