package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"medex/internal/core/domain/model/storefront"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/domain/services"
	"medex/internal/core/ports"
)

// VendorSyncResult is the outcome of one vendor slice.
type VendorSyncResult struct {
	VendorID  string
	ItemCount int
	Total     float64
	Result    syncattempt.Result
}

// SyncReport summarises a full storefront sync.
type SyncReport struct {
	WooOrderID int64
	WooStatus  string
	Vendors    []VendorSyncResult
}

// Failed counts vendor slices the backend did not accept. Skipped slices are not failures.
func (r SyncReport) Failed() int {
	n := 0
	for _, v := range r.Vendors {
		if v.Result.Outcome == syncattempt.OutcomeRejected || v.Result.Outcome == syncattempt.OutcomeTransportError {
			n++
		}
	}
	return n
}

// SyncStorefrontOrderCommandHandler extracts the vendors of a storefront order
// and sends one sync call per vendor. Each call is attempted once; failures are
// logged and reported but never retried. Every vendor slice is written to the ledger.
type SyncStorefrontOrderCommandHandler struct {
	reader      ports.StorefrontReader
	catalog     ports.ProductCatalog
	stores      ports.StoreDirectory
	backend     ports.MedexSync
	partitioner services.VendorPartitioner
	ledger      LedgerUoWFactory
	logger      *slog.Logger
	now         func() time.Time
}

func NewSyncStorefrontOrderCommandHandler(
	reader ports.StorefrontReader,
	catalog ports.ProductCatalog,
	stores ports.StoreDirectory,
	backend ports.MedexSync,
	ledger LedgerUoWFactory,
	logger *slog.Logger,
) *SyncStorefrontOrderCommandHandler {
	return &SyncStorefrontOrderCommandHandler{
		reader:      reader,
		catalog:     catalog,
		stores:      stores,
		backend:     backend,
		partitioner: services.NewVendorPartitioner(),
		ledger:      ledger,
		logger:      logger.With("component", "storefront_sync"),
		now:         utcNow,
	}
}

// Handle runs the sync. The returned error covers problems that prevent the sync
// from running at all (bad command, unreadable order or catalog) and ledger write
// failures; per-vendor call failures only show up in the report.
func (h *SyncStorefrontOrderCommandHandler) Handle(ctx context.Context, cmd SyncStorefrontOrderCommand) (SyncReport, error) {
	if err := cmd.Validate(); err != nil {
		return SyncReport{}, err
	}

	wooOrder, err := h.loadOrder(ctx, cmd)
	if err != nil {
		return SyncReport{}, err
	}

	owners, err := h.loadOwners(ctx, wooOrder)
	if err != nil {
		return SyncReport{}, err
	}

	report := SyncReport{WooOrderID: wooOrder.ID, WooStatus: wooOrder.Status}
	attempts := make([]*syncattempt.Attempt, 0)

	for _, vendorID := range h.partitioner.VendorIDs(wooOrder, owners) {
		store, storeErr := h.stores.StoreAddress(ctx, vendorID)
		if storeErr != nil {
			h.logger.WarnContext(ctx, "Store address lookup failed, using shipping address",
				"woo_order_id", wooOrder.ID, "vendor_id", vendorID, "error", storeErr)
			store = nil
		}

		result := VendorSyncResult{VendorID: vendorID}
		payload, ok := h.partitioner.Payload(wooOrder, vendorID, owners, store)
		if !ok {
			result.Result = syncattempt.Result{Outcome: syncattempt.OutcomeSkipped}
			h.logger.InfoContext(ctx, "No items for vendor, skipping",
				"woo_order_id", wooOrder.ID, "vendor_id", vendorID)
		} else {
			result.ItemCount = len(payload.Items)
			result.Total = payload.Total
			result.Result = resultOf(h.backend.SyncOrder(ctx, payload))
			h.logResult(ctx, wooOrder.ID, vendorID, result.Result)
		}
		report.Vendors = append(report.Vendors, result)

		attempt, attemptErr := syncattempt.NewAttempt(syncattempt.Params{
			WooOrderID: wooOrder.ID,
			VendorID:   vendorID,
			Trigger:    cmd.Trigger(),
			Kind:       syncattempt.KindFullSync,
			WooStatus:  wooOrder.Status,
			ItemCount:  result.ItemCount,
			Total:      result.Total,
			Result:     result.Result,
			CreatedAt:  h.now(),
		})
		if attemptErr != nil {
			return report, attemptErr
		}
		attempts = append(attempts, attempt)
	}

	if err = recordAttempts(ctx, h.ledger, attempts); err != nil {
		return report, fmt.Errorf("record sync attempts: %w", err)
	}

	return report, nil
}

func (h *SyncStorefrontOrderCommandHandler) loadOrder(
	ctx context.Context,
	cmd SyncStorefrontOrderCommand,
) (storefront.Order, error) {
	if o := cmd.Order(); o != nil {
		return *o, nil
	}

	o, err := h.reader.GetOrder(ctx, cmd.WooOrderID())
	if err != nil {
		return storefront.Order{}, fmt.Errorf("load storefront order %d: %w", cmd.WooOrderID(), err)
	}
	return o, nil
}

func (h *SyncStorefrontOrderCommandHandler) loadOwners(
	ctx context.Context,
	o storefront.Order,
) (map[int64]storefront.ProductOwner, error) {
	owners := make(map[int64]storefront.ProductOwner)
	for _, productID := range o.ProductIDs() {
		owner, err := h.catalog.ProductOwner(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("resolve owner of product %d: %w", productID, err)
		}
		owners[productID] = owner
	}
	return owners, nil
}

func (h *SyncStorefrontOrderCommandHandler) logResult(
	ctx context.Context,
	wooOrderID int64,
	vendorID string,
	result syncattempt.Result,
) {
	if result.Outcome == syncattempt.OutcomeSucceeded {
		h.logger.InfoContext(ctx, "Order synced", "woo_order_id", wooOrderID, "vendor_id", vendorID)
		return
	}
	h.logger.ErrorContext(ctx, "Order sync failed",
		"woo_order_id", wooOrderID,
		"vendor_id", vendorID,
		"outcome", result.Outcome,
		"http_status", result.HTTPStatus,
		"error", result.Error,
	)
}
