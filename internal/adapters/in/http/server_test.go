package http_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpin "medex/internal/adapters/in/http"
	"medex/internal/adapters/out/woocommerce"
	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
)

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, cmd commands.ProcessStorefrontEventCommand) (commands.EventResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.EventResult), args.Error(1)
}

type MockSyncHandler struct {
	mock.Mock
}

func (m *MockSyncHandler) Handle(ctx context.Context, cmd commands.SyncStorefrontOrderCommand) (commands.SyncReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SyncReport), args.Error(1)
}

type MockSyncAttemptsHandler struct {
	mock.Mock
}

func (m *MockSyncAttemptsHandler) Handle(
	ctx context.Context,
	query queries.GetSyncAttemptsQuery,
) ([]queries.GetSyncAttemptsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetSyncAttemptsQueryResponse), args.Error(1)
}

type fixture struct {
	events   *MockEventHandler
	syncer   *MockSyncHandler
	attempts *MockSyncAttemptsHandler
	router   *echo.Echo
}

func newFixture(t *testing.T, secret string) fixture {
	t.Helper()

	f := fixture{
		events:   &MockEventHandler{},
		syncer:   &MockSyncHandler{},
		attempts: &MockSyncAttemptsHandler{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(f.events, f.syncer, f.attempts, woocommerce.DecodeOrder, secret, logger)

	router, err := httpin.NewRouter(server, logger)
	require.NoError(t, err)
	f.router = router
	return f
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

const orderBody = `{"id":1042,"status":"processing","line_items":[{"id":1,"product_id":77,"name":"Aspirin","quantity":2,"total":"9.50"}]}`

func webhookRequest(topic, body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/woocommerce", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if topic != "" {
		req.Header.Set("X-WC-Webhook-Topic", topic)
	}
	if signature != "" {
		req.Header.Set("X-WC-Webhook-Signature", signature)
	}
	return req
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func decodeAck(t *testing.T, rec *httptest.ResponseRecorder) httpin.WebhookAck {
	t.Helper()
	var ack httpin.WebhookAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	return ack
}

func syncedReport() commands.SyncReport {
	return commands.SyncReport{
		WooOrderID: 1042,
		WooStatus:  "processing",
		Vendors: []commands.VendorSyncResult{
			{VendorID: "7", ItemCount: 2, Total: 9.5, Result: syncattempt.Result{Outcome: syncattempt.OutcomeSucceeded}},
			{VendorID: "9", ItemCount: 1, Total: 3, Result: syncattempt.Result{
				Outcome: syncattempt.OutcomeRejected, HTTPStatus: 403, Error: "Invalid WooCommerce secret",
			}},
		},
	}
}

func TestHealth(t *testing.T) {
	t.Run("should report healthy", func(t *testing.T) {
		// Given
		f := newFixture(t, "")

		// When
		rec := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("should serve the api document to swagger ui", func(t *testing.T) {
		// Given
		f := newFixture(t, "")

		// When
		rec := f.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

		// Then
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/v1/sync-attempts")
	})
}

func TestReceiveWooCommerceWebhook(t *testing.T) {
	t.Run("should run an order.created delivery and report per vendor", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.events.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessStorefrontEventCommand) bool {
			return cmd.Topic() == commands.TopicOrderCreated && cmd.Order().ID == 1042 && len(cmd.Order().LineItems) == 1
		})).Return(commands.EventResult{Action: commands.EventActionSynced, Sync: syncedReport()}, nil).Once()

		// When
		rec := f.do(webhookRequest("order.created", orderBody, ""))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		ack := decodeAck(t, rec)
		assert.Equal(t, "synced", ack.Status)
		require.NotNil(t, ack.WooOrderId)
		assert.Equal(t, int64(1042), *ack.WooOrderId)
		require.NotNil(t, ack.Report)
		assert.Equal(t, 1, ack.Report.Failed)
		require.Len(t, ack.Report.Vendors, 2)
		assert.Equal(t, "rejected", ack.Report.Vendors[1].Outcome)
		require.NotNil(t, ack.Report.Vendors[1].HttpStatus)
		assert.Equal(t, 403, *ack.Report.Vendors[1].HttpStatus)
		f.events.AssertExpectations(t)
	})

	t.Run("should reject a delivery with a bad signature", func(t *testing.T) {
		// Given
		f := newFixture(t, "hook-secret")

		// When
		rec := f.do(webhookRequest("order.created", orderBody, sign("other-secret", orderBody)))

		// Then
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.events.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an unsigned delivery when a secret is configured", func(t *testing.T) {
		// Given
		f := newFixture(t, "hook-secret")

		// When
		rec := f.do(webhookRequest("order.created", orderBody, ""))

		// Then
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should accept a correctly signed delivery", func(t *testing.T) {
		// Given
		f := newFixture(t, "hook-secret")
		f.events.On("Handle", mock.Anything, mock.Anything).
			Return(commands.EventResult{Action: commands.EventActionIgnored}, nil).Once()

		// When
		rec := f.do(webhookRequest("order.updated", orderBody, sign("hook-secret", orderBody)))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ignored", decodeAck(t, rec).Status)
		f.events.AssertExpectations(t)
	})

	t.Run("should answer the ping sent when a webhook is saved", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/woocommerce", strings.NewReader("webhook_id=12"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

		// When
		rec := f.do(req)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, httpin.AckPong, decodeAck(t, rec).Status)
		f.events.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should acknowledge and ignore other topics", func(t *testing.T) {
		// Given
		f := newFixture(t, "")

		// When
		rec := f.do(webhookRequest("product.updated", `{"id":5}`, ""))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		ack := decodeAck(t, rec)
		assert.Equal(t, "ignored", ack.Status)
		require.NotNil(t, ack.Topic)
		assert.Equal(t, "product.updated", *ack.Topic)
		f.events.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an order body without an id", func(t *testing.T) {
		// Given
		f := newFixture(t, "")

		// When
		rec := f.do(webhookRequest("order.created", `{"status":"processing"}`, ""))

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should acknowledge a delivery whose processing failed", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.events.On("Handle", mock.Anything, mock.Anything).
			Return(commands.EventResult{}, errors.New("ledger unavailable")).Once()

		// When
		rec := f.do(webhookRequest("order.created", orderBody, ""))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		ack := decodeAck(t, rec)
		assert.Equal(t, httpin.AckFailed, ack.Status)
		require.NotNil(t, ack.Error)
		assert.Contains(t, *ack.Error, "ledger unavailable")
	})

	t.Run("should report a failed status update next to the resync", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.events.On("Handle", mock.Anything, mock.Anything).Return(commands.EventResult{
			Action: commands.EventActionStatusPushed,
			Status: &commands.StatusPushReport{
				Status: syncattempt.Result{Outcome: syncattempt.OutcomeTransportError, Error: "timeout"},
				Resync: syncedReport(),
			},
		}, nil).Once()

		// When
		rec := f.do(webhookRequest("order.updated", orderBody, ""))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		ack := decodeAck(t, rec)
		assert.Equal(t, "status_pushed", ack.Status)
		require.NotNil(t, ack.Error)
		assert.Contains(t, *ack.Error, "timeout")
		require.NotNil(t, ack.Report)
		assert.Len(t, ack.Report.Vendors, 2)
	})
}

func TestCompleteCheckout(t *testing.T) {
	thankYou := func(id string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/api/v1/storefront/orders/"+id+"/thankyou", nil)
	}

	t.Run("should sync the order and return the report", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.syncer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SyncStorefrontOrderCommand) bool {
			return cmd.WooOrderID() == 1042 && cmd.Trigger() == syncattempt.TriggerCheckoutCompleted && cmd.Order() == nil
		})).Return(syncedReport(), nil).Once()

		// When
		rec := f.do(thankYou("1042"))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var report httpin.SyncReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, int64(1042), report.WooOrderId)
		assert.Len(t, report.Vendors, 2)
		f.syncer.AssertExpectations(t)
	})

	t.Run("should answer 404 for an unknown order", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.syncer.On("Handle", mock.Anything, mock.Anything).
			Return(commands.SyncReport{}, errs.NewObjectNotFoundError("woo_order_id", int64(5))).Once()

		// When
		rec := f.do(thankYou("5"))

		// Then
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should answer 502 when the storefront cannot be reached", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.syncer.On("Handle", mock.Anything, mock.Anything).
			Return(commands.SyncReport{}, ports.NewTransportError("get order", errors.New("dial tcp: refused"))).Once()

		// When
		rec := f.do(thankYou("5"))

		// Then
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should reject a non-positive order id before any work", func(t *testing.T) {
		// Given
		f := newFixture(t, "")

		// When
		rec := f.do(thankYou("0"))

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.syncer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestListSyncAttempts(t *testing.T) {
	t.Run("should list ledger rows for one order", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		id := kernel.NewUUID()
		createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		f.attempts.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSyncAttemptsQuery) bool {
			return q.WooOrderID() == 1042 && q.Limit() == 10
		})).Return([]queries.GetSyncAttemptsQueryResponse{{
			ID:         id,
			WooOrderID: 1042,
			VendorID:   "7",
			Trigger:    syncattempt.TriggerOrderCreated,
			Kind:       syncattempt.KindFullSync,
			WooStatus:  "processing",
			ItemCount:  2,
			Total:      9.5,
			Outcome:    syncattempt.OutcomeSucceeded,
			CreatedAt:  createdAt,
		}}, nil).Once()

		// When
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/sync-attempts?woo_order_id=1042&limit=10", nil))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var rows []httpin.SyncAttempt
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, id.String(), rows[0].Id.String())
		assert.Equal(t, "full_sync", rows[0].Kind)
		assert.Nil(t, rows[0].HttpStatus)
		assert.True(t, createdAt.Equal(rows[0].CreatedAt))
	})

	t.Run("should use the default limit without filters", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.attempts.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSyncAttemptsQuery) bool {
			return q.WooOrderID() == 0 && q.Limit() == queries.DefaultSyncAttemptsLimit
		})).Return([]queries.GetSyncAttemptsQueryResponse{}, nil).Once()

		// When
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/sync-attempts", nil))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should reject a limit out of range", func(t *testing.T) {
		// Given
		f := newFixture(t, "")

		// When
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/sync-attempts?limit=1000", nil))

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.attempts.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should answer 500 when the ledger cannot be read", func(t *testing.T) {
		// Given
		f := newFixture(t, "")
		f.attempts.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.GetSyncAttemptsQueryResponse(nil), errors.New("connection refused")).Once()

		// When
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/sync-attempts", nil))

		// Then
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
