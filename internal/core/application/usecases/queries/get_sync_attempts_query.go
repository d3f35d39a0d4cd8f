// Package queries contains read operations. Ledger reads go straight to the
// database with raw SQL; console reads go to the MedEx backend.
package queries

import (
	"errors"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

const (
	DefaultSyncAttemptsLimit = 50
	MaxSyncAttemptsLimit     = 500
)

var ErrGetSyncAttemptsQueryIsNotConstructed = errors.New(
	"GetSyncAttemptsQuery must be created via NewGetSyncAttemptsQuery constructor",
)

// GetSyncAttemptsQuery lists ledger rows, newest first.
//
// Example:
//
//	query, err := NewGetSyncAttemptsQuery(1042, 0) // every attempt for order 1042, default limit
//	if err != nil {
//	    return err
//	}
//	attempts, err := handler.Handle(ctx, query)
type GetSyncAttemptsQuery struct {
	wooOrderID int64
	limit      int

	guard guard.ConstructorGuard
}

// NewGetSyncAttemptsQuery builds the query. A zero wooOrderID lists every order;
// a zero limit means DefaultSyncAttemptsLimit.
func NewGetSyncAttemptsQuery(wooOrderID int64, limit int) (GetSyncAttemptsQuery, error) {
	if wooOrderID < 0 {
		return GetSyncAttemptsQuery{}, errs.NewValueIsInvalidError("woo_order_id")
	}
	if limit == 0 {
		limit = DefaultSyncAttemptsLimit
	}
	if limit < 0 || limit > MaxSyncAttemptsLimit {
		return GetSyncAttemptsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxSyncAttemptsLimit)
	}

	return GetSyncAttemptsQuery{wooOrderID: wooOrderID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSyncAttemptsQuery) Validate() error {
	return q.guard.Validate(ErrGetSyncAttemptsQueryIsNotConstructed)
}

func (q GetSyncAttemptsQuery) WooOrderID() int64 {
	return q.wooOrderID
}

func (q GetSyncAttemptsQuery) Limit() int {
	return q.limit
}

// GetSyncAttemptsQueryResponse is one ledger row in the read model.
type GetSyncAttemptsQueryResponse struct {
	ID         kernel.UUID
	WooOrderID int64
	VendorID   string
	Trigger    syncattempt.Trigger
	Kind       syncattempt.Kind
	WooStatus  string
	ItemCount  int
	Total      float64
	Outcome    syncattempt.Outcome
	HTTPStatus int
	Error      string
	CreatedAt  time.Time
}
