package order_test

import (
	"testing"

	"medex/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	t.Run("out_for_delivery completes five steps", func(t *testing.T) {
		// When
		p := order.NewProgress(order.OutForDelivery)

		// Then
		require.Len(t, p.Steps, 6)
		for i := 0; i < 5; i++ {
			assert.True(t, p.Steps[i].Completed, p.Steps[i].Status)
		}
		assert.False(t, p.Steps[5].Completed)

		active, ok := p.Current()
		require.True(t, ok)
		assert.Equal(t, order.OutForDelivery, active.Status)
		assert.Equal(t, 5, p.CompletedCount())
		assert.False(t, p.Cancelled)
	})

	t.Run("pending completes only the first step", func(t *testing.T) {
		p := order.NewProgress(order.Pending)

		assert.Equal(t, 1, p.CompletedCount())
		assert.True(t, p.Steps[0].Active)
		assert.Equal(t, "Order Placed", p.Steps[0].Label)
	})

	t.Run("delivered completes every step", func(t *testing.T) {
		p := order.NewProgress(order.Delivered)

		assert.Equal(t, 6, p.CompletedCount())
		assert.True(t, p.Steps[5].Active)
	})

	t.Run("cancelled is flagged with nothing completed", func(t *testing.T) {
		p := order.NewProgress(order.Cancelled)

		assert.True(t, p.Cancelled)
		assert.Zero(t, p.CompletedCount())
		_, ok := p.Current()
		assert.False(t, ok)
	})

	t.Run("exactly one step is active for lifecycle statuses", func(t *testing.T) {
		for _, s := range allStatuses {
			if s == order.Cancelled {
				continue
			}
			active := 0
			for _, step := range order.NewProgress(s).Steps {
				if step.Active {
					active++
				}
			}
			assert.Equal(t, 1, active, s)
		}
	})
}
