// Package woocommerce reads orders, products and marketplace stores from a
// WordPress site running WooCommerce and a Dokan-compatible store API.
package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
)

const DefaultTimeout = 10 * time.Second

var (
	_ ports.StorefrontReader = (*Client)(nil)
	_ ports.ProductCatalog   = (*Client)(nil)
	_ ports.StoreDirectory   = (*Client)(nil)
)

// Client authenticates with a REST consumer key and secret over basic auth.
type Client struct {
	siteURL        string
	consumerKey    string
	consumerSecret string
	http           *http.Client
	logger         *slog.Logger
}

func NewClient(siteURL, consumerKey, consumerSecret string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		siteURL:        strings.TrimRight(siteURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		http:           httpClient,
		logger:         logger.With("component", "woocommerce"),
	}
}

// GetOrder loads an order. A missing order is an ObjectNotFoundError.
func (c *Client) GetOrder(ctx context.Context, wooOrderID int64) (storefront.Order, error) {
	id := strconv.FormatInt(wooOrderID, 10)

	var dto orderDTO
	if err := c.get(ctx, "get order "+id, "/wp-json/wc/v3/orders/"+id, &dto); err != nil {
		if ports.StatusCodeOf(err) == http.StatusNotFound {
			return storefront.Order{}, errs.NewObjectNotFoundErrorWithCause("woo_order_id", wooOrderID, err)
		}
		return storefront.Order{}, err
	}
	return dto.toDomain(), nil
}

// ProductOwner reads the _vendor_id meta and, when it is missing, the product's
// post author. A deleted product yields an owner with neither set.
func (c *Client) ProductOwner(ctx context.Context, productID int64) (storefront.ProductOwner, error) {
	id := strconv.FormatInt(productID, 10)
	owner := storefront.ProductOwner{ProductID: productID}

	var product productDTO
	if err := c.get(ctx, "get product "+id, "/wp-json/wc/v3/products/"+id, &product); err != nil {
		if ports.StatusCodeOf(err) == http.StatusNotFound {
			c.logger.WarnContext(ctx, "Product not found, owner unknown", "product_id", productID)
			return owner, nil
		}
		return owner, err
	}

	owner.VendorMeta = product.vendorMeta()
	if _, ok := owner.VendorID(); ok {
		return owner, nil
	}

	var post postDTO
	if err := c.get(ctx, "get product author "+id, "/wp-json/wp/v2/product/"+id+"?_fields=author", &post); err != nil {
		if ports.StatusCodeOf(err) == http.StatusNotFound {
			return owner, nil
		}
		return owner, err
	}
	owner.AuthorID = post.Author
	return owner, nil
}

// StoreAddress returns nil when the vendor has no store or no structured address.
func (c *Client) StoreAddress(ctx context.Context, vendorID string) (*storefront.StoreAddress, error) {
	if _, err := strconv.ParseInt(vendorID, 10, 64); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("vendor id", err)
	}

	var store storeDTO
	if err := c.get(ctx, "get store "+vendorID, "/wp-json/dokan/v1/stores/"+vendorID, &store); err != nil {
		if ports.StatusCodeOf(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	addr := storefront.StoreAddress{
		Street1: store.Address.Street1,
		City:    store.Address.City,
		State:   store.Address.State,
		Zip:     store.Address.Zip,
	}
	if addr.IsZero() {
		return nil, nil
	}
	return &addr, nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.consumerKey != "" {
		req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.NewTransportError(op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.NewUnexpectedStatusError(op, resp.StatusCode, messageOf(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// messageOf extracts the WordPress REST error message, falling back to the raw body.
func messageOf(body []byte) string {
	var wpErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wpErr); err == nil && wpErr.Message != "" {
		return wpErr.Code + ": " + wpErr.Message
	}
	return strings.TrimSpace(string(body))
}
