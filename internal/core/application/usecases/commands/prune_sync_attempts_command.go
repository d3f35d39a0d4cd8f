package commands

import (
	"context"
	"errors"
	"time"

	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrPruneSyncAttemptsCommandIsNotConstructed = errors.New(
	"PruneSyncAttemptsCommand must be created via NewPruneSyncAttemptsCommand constructor",
)

// PruneSyncAttemptsCommand deletes ledger rows older than the retention period.
type PruneSyncAttemptsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPruneSyncAttemptsCommand(retention time.Duration) (PruneSyncAttemptsCommand, error) {
	if retention <= 0 {
		return PruneSyncAttemptsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "unbounded")
	}
	return PruneSyncAttemptsCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PruneSyncAttemptsCommand) Validate() error {
	return c.guard.Validate(ErrPruneSyncAttemptsCommandIsNotConstructed)
}

func (c PruneSyncAttemptsCommand) Retention() time.Duration {
	return c.retention
}

// PruneSyncAttemptsCommandHandler removes expired ledger rows in one transaction.
type PruneSyncAttemptsCommandHandler struct {
	uowFactory LedgerUoWFactory
	now        func() time.Time
}

func NewPruneSyncAttemptsCommandHandler(uowFactory LedgerUoWFactory) PruneSyncAttemptsCommandHandler {
	return PruneSyncAttemptsCommandHandler{uowFactory: uowFactory, now: utcNow}
}

// Handle returns the number of deleted rows.
func (h PruneSyncAttemptsCommandHandler) Handle(ctx context.Context, cmd PruneSyncAttemptsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.SyncAttemptRepository().DeleteOlderThan(ctx, h.now().Add(-cmd.Retention()))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
