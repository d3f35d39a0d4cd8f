package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 2 << 20

// Acknowledgement statuses for webhook deliveries.
const (
	AckPong   = "pong"
	AckFailed = "failed"
)

type storefrontEventHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessStorefrontEventCommand) (commands.EventResult, error)
}

type storefrontSyncHandler interface {
	Handle(ctx context.Context, cmd commands.SyncStorefrontOrderCommand) (commands.SyncReport, error)
}

type syncAttemptsQueryHandler interface {
	Handle(ctx context.Context, query queries.GetSyncAttemptsQuery) ([]queries.GetSyncAttemptsQueryResponse, error)
}

// OrderDecoder turns a raw webhook body into a storefront order.
type OrderDecoder func(body []byte) (storefront.Order, error)

// Server implements ServerInterface on top of the relay's use cases.
type Server struct {
	// Command handlers
	eventHandler storefrontEventHandler
	syncHandler  storefrontSyncHandler

	// Query handlers
	syncAttemptsHandler syncAttemptsQueryHandler

	decode        OrderDecoder
	webhookSecret []byte
	logger        *slog.Logger
}

// NewServer wires the handlers. An empty webhookSecret disables signature checks.
func NewServer(
	eventHandler storefrontEventHandler,
	syncHandler storefrontSyncHandler,
	syncAttemptsHandler syncAttemptsQueryHandler,
	decode OrderDecoder,
	webhookSecret string,
	logger *slog.Logger,
) *Server {
	return &Server{
		eventHandler:        eventHandler,
		syncHandler:         syncHandler,
		syncAttemptsHandler: syncAttemptsHandler,
		decode:              decode,
		webhookSecret:       []byte(webhookSecret),
		logger:              logger.With("component", "http"),
	}
}

// ReceiveWooCommerceWebhook handles POST /api/v1/webhooks/woocommerce.
// Once the body is read and verified, the delivery is always acknowledged with
// 200 so that WooCommerce does not disable the webhook; failures are reported
// in the body.
func (s *Server) ReceiveWooCommerceWebhook(ctx echo.Context, params ReceiveWooCommerceWebhookParams) error {
	req := ctx.Request()

	body, err := io.ReadAll(io.LimitReader(req.Body, maxWebhookBody))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Failed to read webhook body",
		})
	}

	if len(s.webhookSecret) > 0 && !s.signatureMatches(body, deref(params.XWCWebhookSignature)) {
		s.logger.WarnContext(req.Context(), "Webhook signature mismatch", "remote_ip", ctx.RealIP())
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Invalid webhook signature",
		})
	}

	topic := strings.TrimSpace(deref(params.XWCWebhookTopic))
	if topic == "" || isPing(req, body) {
		return ctx.JSON(http.StatusOK, WebhookAck{Status: AckPong})
	}

	ack := WebhookAck{Topic: &topic}

	if err = commands.Topic(topic).Validate(); err != nil {
		s.logger.DebugContext(req.Context(), "Ignoring webhook topic", "topic", topic)
		ack.Status = string(commands.EventActionIgnored)
		return ctx.JSON(http.StatusOK, ack)
	}

	wooOrder, err := s.decode(body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order body: " + err.Error(),
		})
	}
	ack.WooOrderId = &wooOrder.ID

	cmd, err := commands.NewProcessStorefrontEventCommand(commands.Topic(topic), &wooOrder)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid webhook delivery: " + err.Error(),
		})
	}

	result, err := s.eventHandler.Handle(req.Context(), cmd)
	if err != nil {
		s.logger.ErrorContext(req.Context(), "Webhook processing failed",
			"topic", topic, "woo_order_id", wooOrder.ID, "error", err)
		msg := err.Error()
		ack.Status = AckFailed
		ack.Error = &msg
		return ctx.JSON(http.StatusOK, ack)
	}

	ack.Status = string(result.Action)
	switch {
	case result.Status != nil:
		ack.Report = toSyncReport(result.Status.Resync)
		if result.Status.Status.Outcome != syncattempt.OutcomeSucceeded {
			msg := "status update failed: " + result.Status.Status.Error
			ack.Error = &msg
		}
	case result.Action == commands.EventActionSynced:
		ack.Report = toSyncReport(result.Sync)
	}

	return ctx.JSON(http.StatusOK, ack)
}

// CompleteCheckout handles POST /api/v1/storefront/orders/{order_id}/thankyou.
func (s *Server) CompleteCheckout(ctx echo.Context, orderId int64) error {
	cmd, err := commands.NewCheckoutCompletedCommand(orderId)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	report, err := s.syncHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, toSyncReport(report))
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Storefront order not found",
		})
	case errors.Is(err, ports.ErrTransport), errors.Is(err, ports.ErrUnexpectedStatus):
		s.logger.ErrorContext(ctx.Request().Context(), "Storefront unavailable", "woo_order_id", orderId, "error", err)
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Storefront unavailable",
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Checkout sync failed", "woo_order_id", orderId, "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to sync order",
		})
	}
}

// ListSyncAttempts handles GET /api/v1/sync-attempts.
func (s *Server) ListSyncAttempts(ctx echo.Context, params ListSyncAttemptsParams) error {
	var wooOrderID int64
	if params.WooOrderId != nil {
		wooOrderID = *params.WooOrderId
	}
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetSyncAttemptsQuery(wooOrderID, limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid filter: " + err.Error(),
		})
	}

	attempts, err := s.syncAttemptsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Ledger read failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve sync attempts",
		})
	}

	response := make([]SyncAttempt, len(attempts))
	for i, a := range attempts {
		response[i] = SyncAttempt{
			Id:          a.ID.Bytes(),
			WooOrderId:  a.WooOrderID,
			WooVendorId: a.VendorID,
			Trigger:     string(a.Trigger),
			Kind:        string(a.Kind),
			WooStatus:   a.WooStatus,
			ItemCount:   a.ItemCount,
			Total:       a.Total,
			Outcome:     string(a.Outcome),
			HttpStatus:  nonZero(a.HTTPStatus),
			Error:       nonEmpty(a.Error),
			CreatedAt:   a.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) signatureMatches(body []byte, signature string) bool {
	got, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(got) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, s.webhookSecret)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// isPing recognises the form-encoded delivery WooCommerce sends when a webhook is saved.
func isPing(req *http.Request, body []byte) bool {
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return false
	}
	values, err := url.ParseQuery(string(body))
	return err == nil && values.Has("webhook_id")
}

func toSyncReport(r commands.SyncReport) *SyncReport {
	out := &SyncReport{
		WooOrderId: r.WooOrderID,
		WooStatus:  r.WooStatus,
		Failed:     r.Failed(),
		Vendors:    make([]VendorResult, len(r.Vendors)),
	}
	for i, v := range r.Vendors {
		out.Vendors[i] = VendorResult{
			VendorId:   v.VendorID,
			ItemCount:  v.ItemCount,
			Total:      v.Total,
			Outcome:    string(v.Result.Outcome),
			HttpStatus: nonZero(v.Result.HTTPStatus),
			Error:      nonEmpty(v.Result.Error),
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
