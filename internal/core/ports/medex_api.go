package ports

import (
	"context"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/tracking"
	"medex/internal/core/domain/model/vendor"
)

// OrderFilter narrows GET /orders. Zero fields are omitted.
type OrderFilter struct {
	VendorID int64
	DriverID int64
}

// DriverFilter narrows GET /drivers. Zero fields are omitted.
type DriverFilter struct {
	VendorID int64
	DriverID int64
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	VendorID        int64
	CustomerName    string
	CustomerPhone   string
	PickupAddress   string
	DeliveryAddress string
	DeliveryPoint   *kernel.GeoPoint
	Items           []order.Item
	DeliveryFee     float64
	Notes           string
}

// OrderAPI is the order part of the MedEx REST contract.
type OrderAPI interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
	CreateOrder(ctx context.Context, in NewOrder) (*order.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) error
	AssignDriver(ctx context.Context, orderID, driverID int64) error
}

// DriverAPI is the driver part of the MedEx REST contract.
type DriverAPI interface {
	ListDrivers(ctx context.Context, filter DriverFilter) ([]*driver.Driver, error)
	UpdateDriverStatus(ctx context.Context, driverID int64, next driver.Status) error
	ReportLocation(ctx context.Context, driverID int64, at kernel.GeoPoint) error
}

// VendorAPI is the vendor part of the MedEx REST contract.
type VendorAPI interface {
	ListVendors(ctx context.Context) ([]vendor.Vendor, error)
	GetVendor(ctx context.Context, vendorID int64) (vendor.Vendor, error)
	VendorDrivers(ctx context.Context, vendorID int64) ([]*driver.Driver, error)
}

// Credentials are the sign-in details of a new account.
type Credentials struct {
	Email    string
	Password string
}

// NewUser is the body of POST /auth/register.
type NewUser struct {
	Credentials
	FullName string
	Phone    string
	Role     string
}

// NewVendor is the body of POST /vendors/register. The business name doubles
// as the account's full name.
type NewVendor struct {
	Credentials
	BusinessName string
	Phone        string
	Address      string
}

// NewDriver is the body of POST /drivers/register.
type NewDriver struct {
	Credentials
	VendorID      int64
	FullName      string
	Phone         string
	VehicleType   string
	VehicleNumber string
	LicenseNumber string
}

// Enrollment is what a registration created. ProfileID is the vendor or driver
// id and zero for a plain user account.
type Enrollment struct {
	UserID    int64
	ProfileID int64
}

// RegistrationAPI creates accounts. It needs no session.
type RegistrationAPI interface {
	RegisterUser(ctx context.Context, in NewUser) (Enrollment, error)
	RegisterVendor(ctx context.Context, in NewVendor) (Enrollment, error)
	RegisterDriver(ctx context.Context, in NewDriver) (Enrollment, error)
}

// TrackingAPI is the unauthenticated public tracking endpoint.
type TrackingAPI interface {
	Track(ctx context.Context, token string) (tracking.Snapshot, error)
}
