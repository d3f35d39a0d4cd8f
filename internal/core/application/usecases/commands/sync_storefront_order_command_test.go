package commands_test

import (
	"testing"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSyncStorefrontOrderCommand(t *testing.T) {
	t.Run("should build a fetch-on-demand command", func(t *testing.T) {
		// Act
		cmd, err := commands.NewSyncStorefrontOrderCommand(1042, syncattempt.TriggerOrderCreated, nil)

		// Assert
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(1042), cmd.WooOrderID())
		assert.Equal(t, syncattempt.TriggerOrderCreated, cmd.Trigger())
		assert.Nil(t, cmd.Order())
	})

	t.Run("should copy the given order body", func(t *testing.T) {
		// Arrange
		body := &storefront.Order{ID: 7, Status: "processing"}

		// Act
		cmd, err := commands.NewSyncStorefrontOrderCommand(7, syncattempt.TriggerOrderCreated, body)
		body.Status = "cancelled"

		// Assert
		require.NoError(t, err)
		require.NotNil(t, cmd.Order())
		assert.Equal(t, "processing", cmd.Order().Status)
	})

	t.Run("should reject a missing order id and an unknown trigger together", func(t *testing.T) {
		// Act
		_, err := commands.NewSyncStorefrontOrderCommand(0, syncattempt.Trigger("manual"), nil)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a body for another order", func(t *testing.T) {
		// Act
		_, err := commands.NewSyncStorefrontOrderCommand(7, syncattempt.TriggerOrderCreated, &storefront.Order{ID: 8})

		// Assert
		require.ErrorIs(t, err, commands.ErrOrderIDMismatch)
	})

	t.Run("should use the checkout trigger for thank-you pings", func(t *testing.T) {
		// Act
		cmd, err := commands.NewCheckoutCompletedCommand(99)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, syncattempt.TriggerCheckoutCompleted, cmd.Trigger())
	})

	t.Run("should fail validation when zero value", func(t *testing.T) {
		// Arrange
		var cmd commands.SyncStorefrontOrderCommand

		// Act & Assert
		require.ErrorIs(t, cmd.Validate(), commands.ErrSyncStorefrontOrderCommandIsNotConstructed)
	})
}
