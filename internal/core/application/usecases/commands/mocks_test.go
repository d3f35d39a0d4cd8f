package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/domain/model/vendor"
	"medex/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSyncAttemptRepository struct{ mock.Mock }

func (m *MockSyncAttemptRepository) Add(ctx context.Context, a *syncattempt.Attempt) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockSyncAttemptRepository) LastWooStatus(ctx context.Context, wooOrderID int64) (string, bool, error) {
	args := m.Called(ctx, wooOrderID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSyncAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockLedgerUoW struct{ mock.Mock }

func (m *MockLedgerUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockLedgerUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockLedgerUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockLedgerUoW) SyncAttemptRepository() ports.SyncAttemptRepository {
	return m.Called().Get(0).(ports.SyncAttemptRepository)
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	return m.Called().Get(0).(commands.LedgerUoW)
}

// newLedger wires a factory whose unit of work accepts any number of writes.
func newLedger() (*MockLedgerUoWFactory, *MockLedgerUoW, *MockSyncAttemptRepository) {
	repo := new(MockSyncAttemptRepository)
	uow := new(MockLedgerUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("SyncAttemptRepository").Return(repo)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow)
	return factory, uow, repo
}

type MockStorefrontReader struct{ mock.Mock }

func (m *MockStorefrontReader) GetOrder(ctx context.Context, id int64) (storefront.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storefront.Order), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) ProductOwner(ctx context.Context, productID int64) (storefront.ProductOwner, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(storefront.ProductOwner), args.Error(1)
}

type MockStoreDirectory struct{ mock.Mock }

func (m *MockStoreDirectory) StoreAddress(ctx context.Context, vendorID string) (*storefront.StoreAddress, error) {
	args := m.Called(ctx, vendorID)
	addr, _ := args.Get(0).(*storefront.StoreAddress)
	return addr, args.Error(1)
}

type MockMedexSync struct{ mock.Mock }

func (m *MockMedexSync) SyncOrder(ctx context.Context, payload storefront.SyncPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *MockMedexSync) PushStatus(ctx context.Context, wooOrderID int64, wooStatus string) error {
	return m.Called(ctx, wooOrderID, wooStatus).Error(0)
}

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

type MockRegistrationAPI struct{ mock.Mock }

func (m *MockRegistrationAPI) RegisterUser(ctx context.Context, in ports.NewUser) (ports.Enrollment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(ports.Enrollment), args.Error(1)
}

func (m *MockRegistrationAPI) RegisterVendor(ctx context.Context, in ports.NewVendor) (ports.Enrollment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(ports.Enrollment), args.Error(1)
}

func (m *MockRegistrationAPI) RegisterDriver(ctx context.Context, in ports.NewDriver) (ports.Enrollment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(ports.Enrollment), args.Error(1)
}

type MockLocationReporting struct{ mock.Mock }

func (m *MockLocationReporting) Start(ctx context.Context, driverID int64) error {
	return m.Called(ctx, driverID).Error(0)
}

func (m *MockLocationReporting) Stop() {
	m.Called()
}

type MockSyncer struct{ mock.Mock }

func (m *MockSyncer) Handle(ctx context.Context, cmd commands.SyncStorefrontOrderCommand) (commands.SyncReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SyncReport), args.Error(1)
}

type MockPusher struct{ mock.Mock }

func (m *MockPusher) Handle(ctx context.Context, cmd commands.PushStorefrontStatusCommand) (commands.StatusPushReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.StatusPushReport), args.Error(1)
}
