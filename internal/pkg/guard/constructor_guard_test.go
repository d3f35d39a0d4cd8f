package guard_test

import (
	"errors"
	"testing"

	"medex/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPayloadNotConstructed = errors.New("payload must be created via NewPayload")

type payload struct {
	vendorID string
	guard    guard.ConstructorGuard
}

func newPayload(vendorID string) payload {
	return payload{vendorID: vendorID, guard: guard.NewConstructorGuard()}
}

func (p payload) Validate() error {
	return p.guard.Validate(errPayloadNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errPayloadNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errPayloadNotConstructed)

		// Then
		require.ErrorIs(t, err, errPayloadNotConstructed)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	require.NoError(t, newPayload("7").Validate())
	require.ErrorIs(t, payload{vendorID: "7"}.Validate(), errPayloadNotConstructed)
}
