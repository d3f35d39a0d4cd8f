// Package medexsync pushes storefront orders to the MedEx backend's WooCommerce
// endpoints. Every call is made exactly once; callers decide what to do with failures.
package medexsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/ports"
)

const (
	DefaultTimeout = 10 * time.Second
	SecretHeader   = "X-WC-Secret"

	syncPath = "/api/woocommerce/orders/sync"
)

var (
	syncAccepted   = []int{http.StatusOK, http.StatusCreated}
	statusAccepted = []int{http.StatusOK, http.StatusNoContent}
)

var _ ports.MedexSync = (*Client)(nil)

type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client for the backend origin baseURL. A nil httpClient gets
// DefaultTimeout.
func NewClient(baseURL, secret string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api"),
		secret:  secret,
		http:    httpClient,
		logger:  logger.With("component", "medex_sync"),
	}
}

type syncItem struct {
	SKU      *string `json:"sku"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type syncRequest struct {
	WooOrderID        string     `json:"woo_order_id"`
	WooVendorID       string     `json:"woo_vendor_id"`
	Status            string     `json:"status"`
	Total             float64    `json:"total"`
	CustomerName      string     `json:"customer_name"`
	CustomerPhone     string     `json:"customer_phone"`
	PickupAddress     string     `json:"pickup_address"`
	PickupLatitude    *float64   `json:"pickup_latitude"`
	PickupLongitude   *float64   `json:"pickup_longitude"`
	DeliveryAddress   string     `json:"delivery_address"`
	DeliveryLatitude  *float64   `json:"delivery_latitude"`
	DeliveryLongitude *float64   `json:"delivery_longitude"`
	Items             []syncItem `json:"items"`
	Notes             string     `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func toRequest(p storefront.SyncPayload) syncRequest {
	items := make([]syncItem, 0, len(p.Items))
	for _, it := range p.Items {
		var sku *string
		if it.SKU != "" {
			s := it.SKU
			sku = &s
		}
		items = append(items, syncItem{SKU: sku, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return syncRequest{
		WooOrderID:      p.WooOrderID,
		WooVendorID:     p.WooVendorID,
		Status:          p.Status,
		Total:           p.Total,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		PickupAddress:   p.PickupAddress,
		DeliveryAddress: p.DeliveryAddress,
		Items:           items,
		Notes:           p.Notes,
	}
}

// SyncOrder posts one vendor-scoped payload. Only 200 and 201 count as accepted.
func (c *Client) SyncOrder(ctx context.Context, payload storefront.SyncPayload) error {
	op := "sync order " + payload.WooOrderID + " for vendor " + payload.WooVendorID
	return c.send(ctx, op, http.MethodPost, c.baseURL+syncPath, toRequest(payload), syncAccepted)
}

// PushStatus patches the storefront status of an order. Only 200 and 204 count as accepted.
func (c *Client) PushStatus(ctx context.Context, wooOrderID int64, wooStatus string) error {
	id := strconv.FormatInt(wooOrderID, 10)
	target := c.baseURL + "/api/woocommerce/orders/" + id + "/status"
	return c.send(ctx, "push status of order "+id, http.MethodPatch, target, statusRequest{Status: wooStatus}, statusAccepted)
}

func (c *Client) send(ctx context.Context, op, method, target string, body any, accepted []int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SecretHeader, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if !slices.Contains(accepted, resp.StatusCode) {
		return ports.NewUnexpectedStatusError(op, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	c.logger.DebugContext(ctx, "Backend accepted call", "op", op, "http_status", resp.StatusCode)
	return nil
}
