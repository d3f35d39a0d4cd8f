package services

import (
	"math"
	"strconv"

	"medex/internal/core/domain/model/storefront"
)

// VendorPartitioner splits a multi-vendor storefront order into one payload per vendor.
//
// Example:
//
//	p := services.NewVendorPartitioner()
//	for _, vendorID := range p.VendorIDs(wooOrder, owners) {
//	    payload, ok := p.Payload(wooOrder, vendorID, owners, stores[vendorID])
//	    if !ok {
//	        continue // vendor owns no line item
//	    }
//	    _ = backend.SyncOrder(ctx, payload)
//	}
type VendorPartitioner struct{}

func NewVendorPartitioner() VendorPartitioner {
	return VendorPartitioner{}
}

// VendorIDs resolves the owning vendor of every line item and returns the distinct
// ids in first-seen order. When no item resolves, the single fallback is the
// order's customer id, or storefront.DefaultVendorID.
func (VendorPartitioner) VendorIDs(o storefront.Order, owners map[int64]storefront.ProductOwner) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)

	for _, item := range o.LineItems {
		vendorID, ok := itemVendor(item, owners)
		if !ok {
			continue
		}
		if _, dup := seen[vendorID]; dup {
			continue
		}
		seen[vendorID] = struct{}{}
		ids = append(ids, vendorID)
	}

	if len(ids) == 0 {
		ids = append(ids, o.FallbackVendorID())
	}
	return ids
}

// Payload builds the vendor-scoped payload. It reports false when the vendor owns
// none of the order's line items, in which case nothing must be sent.
// store may be nil when the vendor has no structured store address.
func (VendorPartitioner) Payload(
	o storefront.Order,
	vendorID string,
	owners map[int64]storefront.ProductOwner,
	store *storefront.StoreAddress,
) (storefront.SyncPayload, bool) {
	items := make([]storefront.SyncItem, 0)
	total := 0.0

	for _, item := range o.LineItems {
		owner, ok := itemVendor(item, owners)
		if !ok || owner != vendorID {
			continue
		}
		items = append(items, storefront.SyncItem{
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Total,
		})
		total += item.Total
	}

	if len(items) == 0 {
		return storefront.SyncPayload{}, false
	}

	return storefront.SyncPayload{
		WooOrderID:      strconv.FormatInt(o.ID, 10),
		WooVendorID:     vendorID,
		Status:          o.Status,
		Total:           roundCents(total),
		CustomerName:    o.CustomerName(),
		CustomerPhone:   o.Billing.Phone,
		PickupAddress:   pickupAddress(o, store),
		DeliveryAddress: o.DeliveryAddress(),
		Items:           items,
		Notes:           o.CustomerNote,
	}, true
}

func itemVendor(item storefront.LineItem, owners map[int64]storefront.ProductOwner) (string, bool) {
	owner, ok := owners[item.ProductID]
	if !ok {
		return "", false
	}
	return owner.VendorID()
}

func pickupAddress(o storefront.Order, store *storefront.StoreAddress) string {
	if store != nil && !store.IsZero() {
		return store.Formatted()
	}
	return o.Shipping.Short()
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
