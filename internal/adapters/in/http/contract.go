package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Types and bindings for api/openapi.yaml.

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// VendorResult defines model for VendorResult.
type VendorResult struct {
	VendorId   string  `json:"vendor_id"`
	ItemCount  int     `json:"item_count"`
	Total      float64 `json:"total"`
	Outcome    string  `json:"outcome"`
	HttpStatus *int    `json:"http_status,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// SyncReport defines model for SyncReport.
type SyncReport struct {
	WooOrderId int64          `json:"woo_order_id"`
	WooStatus  string         `json:"woo_status,omitempty"`
	Failed     int            `json:"failed"`
	Vendors    []VendorResult `json:"vendors"`
}

// WebhookAck defines model for WebhookAck.
type WebhookAck struct {
	Status     string      `json:"status"`
	Topic      *string     `json:"topic,omitempty"`
	WooOrderId *int64      `json:"woo_order_id,omitempty"`
	Report     *SyncReport `json:"report,omitempty"`
	Error      *string     `json:"error,omitempty"`
}

// SyncAttempt defines model for SyncAttempt.
type SyncAttempt struct {
	Id          openapi_types.UUID `json:"id"`
	WooOrderId  int64              `json:"woo_order_id"`
	WooVendorId string             `json:"woo_vendor_id,omitempty"`
	Trigger     string             `json:"trigger"`
	Kind        string             `json:"kind"`
	WooStatus   string             `json:"woo_status,omitempty"`
	ItemCount   int                `json:"item_count"`
	Total       float64            `json:"total"`
	Outcome     string             `json:"outcome"`
	HttpStatus  *int               `json:"http_status,omitempty"`
	Error       *string            `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ReceiveWooCommerceWebhookParams defines parameters for ReceiveWooCommerceWebhook.
type ReceiveWooCommerceWebhookParams struct {
	XWCWebhookTopic     *string
	XWCWebhookSignature *string
}

// ListSyncAttemptsParams defines parameters for ListSyncAttempts.
type ListSyncAttemptsParams struct {
	WooOrderId *int64 `form:"woo_order_id,omitempty" json:"woo_order_id,omitempty"`
	Limit      *int   `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// WooCommerce webhook delivery
	// (POST /api/v1/webhooks/woocommerce)
	ReceiveWooCommerceWebhook(ctx echo.Context, params ReceiveWooCommerceWebhookParams) error
	// Checkout thank-you page hit
	// (POST /api/v1/storefront/orders/{order_id}/thankyou)
	CompleteCheckout(ctx echo.Context, orderId int64) error
	// Sync ledger, newest first
	// (GET /api/v1/sync-attempts)
	ListSyncAttempts(ctx echo.Context, params ListSyncAttemptsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ReceiveWooCommerceWebhook(ctx echo.Context) error {
	var params ReceiveWooCommerceWebhookParams

	headers := ctx.Request().Header
	for name, dest := range map[string]**string{
		"X-WC-Webhook-Topic":     &params.XWCWebhookTopic,
		"X-WC-Webhook-Signature": &params.XWCWebhookSignature,
	} {
		valueList, found := headers[http.CanonicalHeaderKey(name)]
		if !found {
			continue
		}
		if n := len(valueList); n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Expected one value for %s, got %d", name, n))
		}

		var value string
		err := runtime.BindStyledParameterWithOptions("simple", name, valueList[0], &value,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
		*dest = &value
	}

	return w.Handler.ReceiveWooCommerceWebhook(ctx, params)
}

func (w *ServerInterfaceWrapper) CompleteCheckout(ctx echo.Context) error {
	var orderId int64

	err := runtime.BindStyledParameterWithOptions("simple", "order_id", ctx.Param("order_id"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter order_id: %s", err))
	}

	return w.Handler.CompleteCheckout(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ListSyncAttempts(ctx echo.Context) error {
	var params ListSyncAttemptsParams

	err := runtime.BindQueryParameter("form", true, false, "woo_order_id", ctx.QueryParams(), &params.WooOrderId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter woo_order_id: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListSyncAttempts(ctx, params)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/webhooks/woocommerce", wrapper.ReceiveWooCommerceWebhook)
	router.POST(baseURL+"/api/v1/storefront/orders/:order_id/thankyou", wrapper.CompleteCheckout)
	router.GET(baseURL+"/api/v1/sync-attempts", wrapper.ListSyncAttempts)
}
