package medexapi

import (
	"context"
	"net/http"

	"medex/internal/core/ports"
)

var _ ports.RegistrationAPI = (*Client)(nil)

// RegisterUser creates a plain account. It does not sign in.
func (c *Client) RegisterUser(ctx context.Context, in ports.NewUser) (ports.Enrollment, error) {
	var out registerUserResponse
	err := c.do(ctx, call{
		op:     "register user",
		method: http.MethodPost,
		path:   "/auth/register",
		body: registerUserRequest{
			Email:    in.Email,
			Password: in.Password,
			FullName: in.FullName,
			Phone:    in.Phone,
			Role:     in.Role,
		},
	}, &out)
	if err != nil {
		return ports.Enrollment{}, err
	}
	return ports.Enrollment{UserID: int64(out.User.ID)}, nil
}

// RegisterVendor creates a vendor together with its owner account.
func (c *Client) RegisterVendor(ctx context.Context, in ports.NewVendor) (ports.Enrollment, error) {
	var out enrollmentResponse
	err := c.do(ctx, call{
		op:     "register vendor",
		method: http.MethodPost,
		path:   "/vendors/register",
		body: registerVendorRequest{
			BusinessName: in.BusinessName,
			Email:        in.Email,
			Password:     in.Password,
			Phone:        in.Phone,
			Address:      in.Address,
		},
	}, &out)
	if err != nil {
		return ports.Enrollment{}, err
	}
	return ports.Enrollment{UserID: int64(out.UserID), ProfileID: int64(out.VendorID)}, nil
}

// RegisterDriver creates a driver for an existing vendor together with the
// driver's account.
func (c *Client) RegisterDriver(ctx context.Context, in ports.NewDriver) (ports.Enrollment, error) {
	var out enrollmentResponse
	err := c.do(ctx, call{
		op:     "register driver",
		method: http.MethodPost,
		path:   "/drivers/register",
		body: registerDriverRequest{
			VendorID:      in.VendorID,
			FullName:      in.FullName,
			Email:         in.Email,
			Password:      in.Password,
			Phone:         in.Phone,
			VehicleType:   in.VehicleType,
			VehicleNumber: in.VehicleNumber,
			LicenseNumber: in.LicenseNumber,
		},
	}, &out)
	if err != nil {
		return ports.Enrollment{}, err
	}
	return ports.Enrollment{UserID: int64(out.UserID), ProfileID: int64(out.DriverID)}, nil
}
