package commands

import (
	"context"
	"log/slog"

	"medex/internal/core/domain/model/syncattempt"
)

type statusPusher interface {
	Handle(ctx context.Context, cmd PushStorefrontStatusCommand) (StatusPushReport, error)
}

// EventAction is what the relay decided to do with a webhook delivery.
type EventAction string

const (
	EventActionSynced       EventAction = "synced"
	EventActionStatusPushed EventAction = "status_pushed"
	EventActionIgnored      EventAction = "ignored"
)

// EventResult reports the decision and, where calls were made, their outcome.
type EventResult struct {
	Action EventAction
	Sync   SyncReport
	Status *StatusPushReport
}

// ProcessStorefrontEventCommandHandler maps webhook deliveries onto sync triggers:
//   - order.created runs a full sync
//   - order.updated with a status the ledger has not seen for the order pushes
//     the status and resyncs
//   - order.updated for an order the ledger has never seen runs a full sync
//   - any other order.updated is ignored
type ProcessStorefrontEventCommandHandler struct {
	syncer storefrontSyncer
	pusher statusPusher
	ledger LedgerUoWFactory
	logger *slog.Logger
}

func NewProcessStorefrontEventCommandHandler(
	syncer storefrontSyncer,
	pusher statusPusher,
	ledger LedgerUoWFactory,
	logger *slog.Logger,
) *ProcessStorefrontEventCommandHandler {
	return &ProcessStorefrontEventCommandHandler{
		syncer: syncer,
		pusher: pusher,
		ledger: ledger,
		logger: logger.With("component", "storefront_events"),
	}
}

func (h *ProcessStorefrontEventCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessStorefrontEventCommand,
) (EventResult, error) {
	if err := cmd.Validate(); err != nil {
		return EventResult{}, err
	}

	wooOrder := cmd.Order()

	if cmd.Topic() == TopicOrderCreated {
		return h.fullSync(ctx, wooOrder.ID, syncattempt.TriggerOrderCreated, cmd)
	}

	lastStatus, seen, err := h.lastStatus(ctx, wooOrder.ID)
	if err != nil {
		return EventResult{}, err
	}

	switch {
	case !seen:
		return h.fullSync(ctx, wooOrder.ID, syncattempt.TriggerOrderCreated, cmd)
	case lastStatus == wooOrder.Status:
		h.logger.DebugContext(ctx, "Order updated without status change", "woo_order_id", wooOrder.ID)
		return EventResult{Action: EventActionIgnored}, nil
	}

	push, err := NewPushStorefrontStatusCommand(wooOrder.ID, wooOrder.Status, &wooOrder)
	if err != nil {
		return EventResult{}, err
	}

	h.logger.InfoContext(ctx, "Storefront status changed",
		"woo_order_id", wooOrder.ID, "from", lastStatus, "to", wooOrder.Status)

	report, err := h.pusher.Handle(ctx, push)
	return EventResult{Action: EventActionStatusPushed, Sync: report.Resync, Status: &report}, err
}

func (h *ProcessStorefrontEventCommandHandler) fullSync(
	ctx context.Context,
	wooOrderID int64,
	trigger syncattempt.Trigger,
	cmd ProcessStorefrontEventCommand,
) (EventResult, error) {
	wooOrder := cmd.Order()
	syncCmd, err := NewSyncStorefrontOrderCommand(wooOrderID, trigger, &wooOrder)
	if err != nil {
		return EventResult{}, err
	}

	report, err := h.syncer.Handle(ctx, syncCmd)
	return EventResult{Action: EventActionSynced, Sync: report}, err
}

func (h *ProcessStorefrontEventCommandHandler) lastStatus(ctx context.Context, wooOrderID int64) (string, bool, error) {
	uow := h.ledger.Create()
	return uow.SyncAttemptRepository().LastWooStatus(ctx, wooOrderID)
}
