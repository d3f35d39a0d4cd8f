package commands_test

import (
	"errors"
	"testing"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWithStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:              21,
		Number:          "MX-0021",
		Status:          string(status),
		CustomerName:    "Jane Doe",
		DeliveryAddress: "12 Elm St",
		VendorID:        3,
	})
	require.NoError(t, err)
	return o
}

func TestNewChangeOrderStatusCommand(t *testing.T) {
	tests := map[string]struct {
		current order.Status
		next    order.Status
		actor   order.Actor
		wantErr error
	}{
		"should let a vendor accept a pending order": {
			current: order.Pending, next: order.Accepted, actor: order.ActorVendor,
		},
		"should let a vendor cancel an active order": {
			current: order.PickedUp, next: order.Cancelled, actor: order.ActorVendor,
		},
		"should let a driver pick up an assigned order": {
			current: order.DriverAssigned, next: order.PickedUp, actor: order.ActorDriver,
		},
		"should refuse a skipped step": {
			current: order.Pending, next: order.Delivered, actor: order.ActorVendor,
			wantErr: order.ErrTransitionNotAllowed,
		},
		"should refuse leaving a terminal status": {
			current: order.Delivered, next: order.Cancelled, actor: order.ActorVendor,
			wantErr: order.ErrTransitionNotAllowed,
		},
		"should refuse a driver cancelling": {
			current: order.PickedUp, next: order.Cancelled, actor: order.ActorDriver,
			wantErr: commands.ErrActionNotPermitted,
		},
		"should refuse a vendor marking delivered": {
			current: order.OutForDelivery, next: order.Delivered, actor: order.ActorVendor,
			wantErr: commands.ErrActionNotPermitted,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			// Act
			cmd, err := commands.NewChangeOrderStatusCommand(21, tc.current, tc.next, tc.actor)

			// Assert
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(21), cmd.OrderID())
			assert.Equal(t, tc.current, cmd.From())
			assert.Equal(t, tc.next, cmd.To())
			assert.Equal(t, tc.actor, cmd.Actor())
		})
	}
}

func TestNewDriverActionCommand(t *testing.T) {
	t.Run("should build the next driver step", func(t *testing.T) {
		// Act
		cmd, err := commands.NewDriverActionCommand(orderWithStatus(t, order.OutForDelivery))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, cmd.To())
		assert.Equal(t, order.ActorDriver, cmd.Actor())
	})

	t.Run("should report orders without a driver action", func(t *testing.T) {
		// Act
		_, err := commands.NewDriverActionCommand(orderWithStatus(t, order.Accepted))

		// Assert
		require.ErrorIs(t, err, order.ErrNoDriverAction)
	})
}

func TestChangeOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should patch the order status", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		cmd, err := commands.NewChangeOrderStatusCommand(21, order.Pending, order.Accepted, order.ActorVendor)
		require.NoError(t, err)

		orders := new(MockOrderAPI)
		orders.On("UpdateOrderStatus", ctx, int64(21), order.Accepted).Return(nil).Once()

		// Act
		err = commands.NewChangeOrderStatusCommandHandler(orders).Handle(ctx, cmd)

		// Assert
		require.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("should wrap backend failures", func(t *testing.T) {
		// Arrange
		ctx := t.Context()
		cmd, err := commands.NewChangeOrderStatusCommand(21, order.Pending, order.Accepted, order.ActorVendor)
		require.NoError(t, err)

		expected := errors.New("400 invalid transition")
		orders := new(MockOrderAPI)
		orders.On("UpdateOrderStatus", ctx, int64(21), order.Accepted).Return(expected).Once()

		// Act
		err = commands.NewChangeOrderStatusCommandHandler(orders).Handle(ctx, cmd)

		// Assert
		require.ErrorIs(t, err, expected)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		// Act
		err := commands.NewChangeOrderStatusCommandHandler(new(MockOrderAPI)).
			Handle(t.Context(), commands.ChangeOrderStatusCommand{})

		// Assert
		require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
