package queries_test

import (
	"context"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/tracking"
	"medex/internal/core/domain/model/vendor"
	"medex/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderAPI struct{ mock.Mock }

func (m *MockOrderAPI) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, in ports.NewOrder) (*order.Order, error) {
	args := m.Called(ctx, in)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderAPI) UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) error {
	return m.Called(ctx, orderID, next).Error(0)
}

func (m *MockOrderAPI) AssignDriver(ctx context.Context, orderID, driverID int64) error {
	return m.Called(ctx, orderID, driverID).Error(0)
}

type MockDriverAPI struct{ mock.Mock }

func (m *MockDriverAPI) ListDrivers(ctx context.Context, filter ports.DriverFilter) ([]*driver.Driver, error) {
	args := m.Called(ctx, filter)
	drivers, _ := args.Get(0).([]*driver.Driver)
	return drivers, args.Error(1)
}

func (m *MockDriverAPI) UpdateDriverStatus(ctx context.Context, driverID int64, next driver.Status) error {
	return m.Called(ctx, driverID, next).Error(0)
}

func (m *MockDriverAPI) ReportLocation(ctx context.Context, driverID int64, at kernel.GeoPoint) error {
	return m.Called(ctx, driverID, at).Error(0)
}

type MockVendorAPI struct{ mock.Mock }

func (m *MockVendorAPI) ListVendors(ctx context.Context) ([]vendor.Vendor, error) {
	args := m.Called(ctx)
	vendors, _ := args.Get(0).([]vendor.Vendor)
	return vendors, args.Error(1)
}

func (m *MockVendorAPI) GetVendor(ctx context.Context, vendorID int64) (vendor.Vendor, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(vendor.Vendor), args.Error(1)
}

func (m *MockVendorAPI) VendorDrivers(ctx context.Context, vendorID int64) ([]*driver.Driver, error) {
	args := m.Called(ctx, vendorID)
	drivers, _ := args.Get(0).([]*driver.Driver)
	return drivers, args.Error(1)
}

type MockTrackingAPI struct{ mock.Mock }

func (m *MockTrackingAPI) Track(ctx context.Context, token string) (tracking.Snapshot, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(tracking.Snapshot), args.Error(1)
}
