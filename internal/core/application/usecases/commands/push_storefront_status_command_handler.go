package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/core/ports"
)

type storefrontSyncer interface {
	Handle(ctx context.Context, cmd SyncStorefrontOrderCommand) (SyncReport, error)
}

// StatusPushReport is the outcome of a status change relay.
// MedexStatus is the lifecycle status the backend derives from the storefront status.
type StatusPushReport struct {
	MedexStatus order.Status
	Status      syncattempt.Result
	Resync      SyncReport
}

// PushStorefrontStatusCommandHandler sends PATCH .../orders/{id}/status and then
// resyncs every vendor. A failed status update does not prevent the resync.
type PushStorefrontStatusCommandHandler struct {
	backend ports.MedexSync
	syncer  storefrontSyncer
	ledger  LedgerUoWFactory
	logger  *slog.Logger
	now     func() time.Time
}

func NewPushStorefrontStatusCommandHandler(
	backend ports.MedexSync,
	syncer storefrontSyncer,
	ledger LedgerUoWFactory,
	logger *slog.Logger,
) *PushStorefrontStatusCommandHandler {
	return &PushStorefrontStatusCommandHandler{
		backend: backend,
		syncer:  syncer,
		ledger:  ledger,
		logger:  logger.With("component", "storefront_status"),
		now:     utcNow,
	}
}

func (h *PushStorefrontStatusCommandHandler) Handle(
	ctx context.Context,
	cmd PushStorefrontStatusCommand,
) (StatusPushReport, error) {
	if err := cmd.Validate(); err != nil {
		return StatusPushReport{}, err
	}

	report := StatusPushReport{
		MedexStatus: order.FromStorefrontStatus(cmd.WooStatus()),
		Status:      resultOf(h.backend.PushStatus(ctx, cmd.WooOrderID(), cmd.WooStatus())),
	}
	if report.Status.Outcome == syncattempt.OutcomeSucceeded {
		h.logger.InfoContext(ctx, "Status pushed",
			"woo_order_id", cmd.WooOrderID(),
			"status", cmd.WooStatus(),
			"medex_status", report.MedexStatus,
		)
	} else {
		h.logger.ErrorContext(ctx, "Status push failed",
			"woo_order_id", cmd.WooOrderID(),
			"status", cmd.WooStatus(),
			"medex_status", report.MedexStatus,
			"http_status", report.Status.HTTPStatus,
			"error", report.Status.Error,
		)
	}

	attempt, err := syncattempt.NewAttempt(syncattempt.Params{
		WooOrderID: cmd.WooOrderID(),
		Trigger:    syncattempt.TriggerStatusChanged,
		Kind:       syncattempt.KindStatusUpdate,
		WooStatus:  cmd.WooStatus(),
		Result:     report.Status,
		CreatedAt:  h.now(),
	})
	if err != nil {
		return report, err
	}
	recordErr := recordAttempts(ctx, h.ledger, []*syncattempt.Attempt{attempt})
	if recordErr != nil {
		recordErr = fmt.Errorf("record status attempt: %w", recordErr)
	}

	resync, err := NewSyncStorefrontOrderCommand(cmd.WooOrderID(), syncattempt.TriggerStatusChanged, cmd.Order())
	if err != nil {
		return report, errors.Join(recordErr, err)
	}

	report.Resync, err = h.syncer.Handle(ctx, resync)
	return report, errors.Join(recordErr, err)
}
