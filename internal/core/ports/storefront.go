package ports

import (
	"context"

	"medex/internal/core/domain/model/storefront"
)

// StorefrontReader loads orders from the WooCommerce REST API.
type StorefrontReader interface {
	GetOrder(ctx context.Context, wooOrderID int64) (storefront.Order, error)
}

// ProductCatalog resolves who sells a product.
type ProductCatalog interface {
	ProductOwner(ctx context.Context, productID int64) (storefront.ProductOwner, error)
}

// StoreDirectory resolves a marketplace vendor's store address.
// A nil address with a nil error means the vendor has no structured address.
type StoreDirectory interface {
	StoreAddress(ctx context.Context, vendorID string) (*storefront.StoreAddress, error)
}

// MedexSync pushes storefront orders to the MedEx backend. Implementations make
// exactly one attempt per call.
type MedexSync interface {
	SyncOrder(ctx context.Context, payload storefront.SyncPayload) error
	PushStatus(ctx context.Context, wooOrderID int64, wooStatus string) error
}
