package storefront_test

import (
	"testing"

	"medex/internal/core/domain/model/storefront"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CustomerName(t *testing.T) {
	o := storefront.Order{Billing: storefront.Address{FirstName: " Ada ", LastName: "Lovelace "}}
	assert.Equal(t, "Ada  Lovelace", o.CustomerName())

	assert.Equal(t, "Customer", storefront.Order{}.CustomerName())
}

func TestOrder_DeliveryAddress(t *testing.T) {
	t.Run("formats all shipping parts", func(t *testing.T) {
		o := storefront.Order{Shipping: storefront.Address{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Address1:  "12 Elm St",
			City:      "Springfield",
			State:     "IL",
			Postcode:  "62701",
			Country:   "US",
		}}
		assert.Equal(t, "Ada Lovelace, 12 Elm St, Springfield, IL 62701, US", o.DeliveryAddress())
	})

	t.Run("falls back to the short form", func(t *testing.T) {
		assert.Equal(t, ", ", storefront.Order{}.DeliveryAddress())
	})
}

func TestOrder_FallbackVendorID(t *testing.T) {
	assert.Equal(t, "77", storefront.Order{CustomerID: 77}.FallbackVendorID())
	assert.Equal(t, storefront.DefaultVendorID, storefront.Order{}.FallbackVendorID())
}

func TestOrder_ProductIDs(t *testing.T) {
	o := storefront.Order{LineItems: []storefront.LineItem{
		{ProductID: 5}, {ProductID: 0}, {ProductID: 3}, {ProductID: 5},
	}}
	assert.Equal(t, []int64{5, 3}, o.ProductIDs())
}

func TestProductOwner_VendorID(t *testing.T) {
	tests := []struct {
		name   string
		owner  storefront.ProductOwner
		want   string
		wantOK bool
	}{
		{"meta wins", storefront.ProductOwner{VendorMeta: "12", AuthorID: 4}, "12", true},
		{"zero meta falls back to author", storefront.ProductOwner{VendorMeta: "0", AuthorID: 4}, "4", true},
		{"author only", storefront.ProductOwner{AuthorID: 4}, "4", true},
		{"nothing", storefront.ProductOwner{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.owner.VendorID()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestStoreAddress(t *testing.T) {
	s := storefront.StoreAddress{Street1: "1 Main St", City: "Austin", State: "TX", Zip: "73301"}
	assert.False(t, s.IsZero())
	assert.Equal(t, "1 Main St, Austin, TX 73301", s.Formatted())
	assert.True(t, storefront.StoreAddress{}.IsZero())
}
