package commands_test

import (
	"errors"
	"testing"
	"time"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAssignDriverCommand(t *testing.T) {
	t.Run("should accept accepted and reassigned orders", func(t *testing.T) {
		for _, s := range []order.Status{order.Accepted, order.DriverAssigned} {
			_, err := commands.NewAssignDriverCommand(orderWithStatus(t, s), 4)
			require.NoError(t, err, s)
		}
	})

	t.Run("should refuse orders that cannot take a driver", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.PickedUp, order.Delivered, order.Cancelled} {
			_, err := commands.NewAssignDriverCommand(orderWithStatus(t, s), 4)
			require.ErrorIs(t, err, order.ErrTransitionNotAllowed, s)
		}
	})

	t.Run("should refuse a missing order and a negative driver", func(t *testing.T) {
		_, nilErr := commands.NewAssignDriverCommand(nil, 4)
		_, negErr := commands.NewAssignDriverCommand(orderWithStatus(t, order.Accepted), -1)

		require.Error(t, nilErr)
		require.Error(t, negErr)
	})
}

func TestAssignDriverCommandHandler_Handle(t *testing.T) {
	t.Run("should assign the requested driver", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		cmd, err := commands.NewAssignDriverCommand(orderWithStatus(t, order.Accepted), 4)
		require.NoError(t, err)

		orders := new(MockOrderAPI)
		orders.On("AssignDriver", ctx, int64(21), int64(4)).Return(nil).Once()
		vendors := new(MockVendorAPI)

		// Act
		assigned, err := commands.NewAssignDriverCommandHandler(orders, vendors).Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(4), assigned)
		orders.AssertExpectations(t)
		vendors.AssertNotCalled(t, "VendorDrivers", mock.Anything, mock.Anything)
	})

	t.Run("should pick the nearest available driver when none is given", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		pickup := kernel.MustNewGeoPoint(40.0, -75.0)
		o, err := order.RestoreOrder(order.Snapshot{
			ID: 21, Number: "MX-0021", Status: string(order.Accepted),
			CustomerName: "Jane Doe", DeliveryAddress: "12 Elm St", VendorID: 3,
			PickupPoint: &pickup,
		})
		require.NoError(t, err)
		cmd, err := commands.NewAssignDriverCommand(o, 0)
		require.NoError(t, err)

		seen := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		far := kernel.MustNewGeoPoint(41.0, -75.0)
		near := kernel.MustNewGeoPoint(40.01, -75.0)
		restore := func(id int64, status driver.Status, at *kernel.GeoPoint) *driver.Driver {
			d, rerr := driver.RestoreDriver(driver.Snapshot{
				ID: id, VendorID: 3, Status: string(status), LastLocation: at, LastLocationAt: &seen,
			})
			require.NoError(t, rerr)
			return d
		}
		drivers := []*driver.Driver{
			restore(5, driver.Available, &far),
			restore(6, driver.Busy, &near),
			restore(7, driver.Available, &near),
		}

		vendors := new(MockVendorAPI)
		vendors.On("VendorDrivers", ctx, int64(3)).Return(drivers, nil).Once()
		orders := new(MockOrderAPI)
		orders.On("AssignDriver", ctx, int64(21), int64(7)).Return(nil).Once()

		// Act
		assigned, err := commands.NewAssignDriverCommandHandler(orders, vendors).Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), assigned)
		orders.AssertExpectations(t)
		vendors.AssertExpectations(t)
	})

	t.Run("should fail when no driver is available", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		cmd, err := commands.NewAssignDriverCommand(orderWithStatus(t, order.Accepted), 0)
		require.NoError(t, err)

		vendors := new(MockVendorAPI)
		vendors.On("VendorDrivers", ctx, int64(3)).Return([]*driver.Driver{driverWithStatus(t, driver.Offline)}, nil)
		orders := new(MockOrderAPI)

		// Act
		_, err = commands.NewAssignDriverCommandHandler(orders, vendors).Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, services.ErrNoAvailableDriver)
		orders.AssertNotCalled(t, "AssignDriver", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should wrap backend failures", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		cmd, err := commands.NewAssignDriverCommand(orderWithStatus(t, order.Accepted), 4)
		require.NoError(t, err)

		expected := errors.New("driver belongs to another vendor")
		orders := new(MockOrderAPI)
		orders.On("AssignDriver", ctx, int64(21), int64(4)).Return(expected).Once()

		// Act
		_, err = commands.NewAssignDriverCommandHandler(orders, new(MockVendorAPI)).Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, expected)
	})
}
