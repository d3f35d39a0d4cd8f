package medexapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/vendor"
	"medex/internal/core/ports"
)

var _ ports.VendorAPI = (*Client)(nil)

func (c *Client) ListVendors(ctx context.Context) ([]vendor.Vendor, error) {
	var out []vendorDTO
	if err := c.do(ctx, call{op: "list vendors", method: http.MethodGet, path: "/vendors", auth: true}, &out); err != nil {
		return nil, err
	}

	vendors := make([]vendor.Vendor, 0, len(out))
	for _, dto := range out {
		v, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list vendors: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

func (c *Client) GetVendor(ctx context.Context, vendorID int64) (vendor.Vendor, error) {
	var out vendorDTO
	err := c.do(ctx, call{
		op:     "get vendor",
		method: http.MethodGet,
		path:   "/vendors/" + strconv.FormatInt(vendorID, 10),
		auth:   true,
	}, &out)
	if err != nil {
		return vendor.Vendor{}, err
	}
	return out.toDomain()
}

func (c *Client) VendorDrivers(ctx context.Context, vendorID int64) ([]*driver.Driver, error) {
	var out []driverDTO
	err := c.do(ctx, call{
		op:     "vendor drivers",
		method: http.MethodGet,
		path:   "/vendors/" + strconv.FormatInt(vendorID, 10) + "/drivers",
		auth:   true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return driversOf("vendor drivers", out)
}
