// Package rediscache keeps storefront lookups that rarely change in Redis so a
// burst of webhook deliveries does not hit WordPress once per line item.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/ports"
)

const DefaultTTL = 15 * time.Minute

var (
	_ ports.ProductCatalog = (*StorefrontCache)(nil)
	_ ports.StoreDirectory = (*StorefrontCache)(nil)
)

// StorefrontCache decorates a product catalog and a store directory. Redis
// failures are logged and the lookup goes to the wrapped source; only upstream
// errors are returned.
type StorefrontCache struct {
	client  *redis.Client
	catalog ports.ProductCatalog
	stores  ports.StoreDirectory
	ttl     time.Duration
	logger  *slog.Logger
}

func NewStorefrontCache(
	client *redis.Client,
	catalog ports.ProductCatalog,
	stores ports.StoreDirectory,
	ttl time.Duration,
	logger *slog.Logger,
) *StorefrontCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StorefrontCache{
		client:  client,
		catalog: catalog,
		stores:  stores,
		ttl:     ttl,
		logger:  logger.With("component", "storefront_cache"),
	}
}

type ownerEntry struct {
	VendorMeta string `json:"vendor_meta"`
	AuthorID   int64  `json:"author_id"`
}

// storeEntry records absent addresses too, so vendors without one are not refetched.
type storeEntry struct {
	Present bool   `json:"present"`
	Street1 string `json:"street_1,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

func productKey(productID int64) string {
	return fmt.Sprintf("medex:product_owner:%d", productID)
}

func storeKey(vendorID string) string {
	return fmt.Sprintf("medex:store_address:%s", vendorID)
}

func (c *StorefrontCache) ProductOwner(ctx context.Context, productID int64) (storefront.ProductOwner, error) {
	var entry ownerEntry
	if c.getJSON(ctx, productKey(productID), &entry) {
		return storefront.ProductOwner{ProductID: productID, VendorMeta: entry.VendorMeta, AuthorID: entry.AuthorID}, nil
	}

	owner, err := c.catalog.ProductOwner(ctx, productID)
	if err != nil {
		return storefront.ProductOwner{}, err
	}
	c.setJSON(ctx, productKey(productID), ownerEntry{VendorMeta: owner.VendorMeta, AuthorID: owner.AuthorID})
	return owner, nil
}

func (c *StorefrontCache) StoreAddress(ctx context.Context, vendorID string) (*storefront.StoreAddress, error) {
	var entry storeEntry
	if c.getJSON(ctx, storeKey(vendorID), &entry) {
		if !entry.Present {
			return nil, nil
		}
		return &storefront.StoreAddress{Street1: entry.Street1, City: entry.City, State: entry.State, Zip: entry.Zip}, nil
	}

	addr, err := c.stores.StoreAddress(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	entry = storeEntry{}
	if addr != nil {
		entry = storeEntry{Present: true, Street1: addr.Street1, City: addr.City, State: addr.State, Zip: addr.Zip}
	}
	c.setJSON(ctx, storeKey(vendorID), entry)
	return addr, nil
}

func (c *StorefrontCache) getJSON(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "Cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.WarnContext(ctx, "Cache entry unreadable", "key", key, "error", err)
		return false
	}
	return true
}

func (c *StorefrontCache) setJSON(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache entry not encodable", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Cache write failed", "key", key, "error", err)
	}
}
