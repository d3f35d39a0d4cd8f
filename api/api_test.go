package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medex/api"
)

func TestGetSwagger(t *testing.T) {
	t.Run("should load and validate the embedded document", func(t *testing.T) {
		// When
		doc, err := api.GetSwagger()

		// Then
		require.NoError(t, err)
		assert.NotNil(t, doc.Paths.Find("/api/v1/webhooks/woocommerce"))
		assert.NotNil(t, doc.Paths.Find("/api/v1/storefront/orders/{order_id}/thankyou"))
		assert.NotNil(t, doc.Paths.Find("/api/v1/sync-attempts"))
	})

	t.Run("should render the document as json for swagger ui", func(t *testing.T) {
		// When
		raw := api.Doc{}.ReadDoc()

		// Then
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
		assert.Equal(t, "3.0.3", decoded["openapi"])
	})
}
