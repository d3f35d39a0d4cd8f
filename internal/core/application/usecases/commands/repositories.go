// Package commands contains the operations that change state, either in the
// relay's own ledger or in the MedEx backend.
// Every command is built through a validating constructor and carries a
// ConstructorGuard; handlers re-check it before doing any work.
package commands

import (
	"context"

	"medex/internal/core/ports"
)

// Unit of Work interfaces give ledger writes a transaction boundary.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SyncAttemptRepoFactory provides the ledger repository within a transaction.
	SyncAttemptRepoFactory interface {
		SyncAttemptRepository() ports.SyncAttemptRepository
	}

	// LedgerUoW manages transactions over the sync attempt ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.SyncAttemptRepository().Add(ctx, attempt)
	//
	//   err = uow.Commit(ctx)
	LedgerUoW interface {
		TxManager
		SyncAttemptRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)

// LocationReporting runs the background loop that sends driver positions.
// Stop must guarantee that no new location call starts after it returns.
type LocationReporting interface {
	Start(ctx context.Context, driverID int64) error
	Stop()
}
