package ports

import (
	"context"
	"time"

	"medex/internal/core/domain/model/syncattempt"
)

type SyncAttemptRepository interface {
	// Add appends an attempt to the ledger.
	Add(ctx context.Context, attempt *syncattempt.Attempt) error

	// LastWooStatus returns the storefront status recorded by the most recent
	// attempt for the order. ok is false when the order was never seen.
	LastWooStatus(ctx context.Context, wooOrderID int64) (status string, ok bool, err error)

	// DeleteOlderThan removes attempts created before cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
