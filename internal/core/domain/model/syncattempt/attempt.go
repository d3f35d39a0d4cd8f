// Package syncattempt models the relay's ledger of outbound storefront sync calls.
//
// The ledger is an audit trail only. Failed attempts are never retried from it;
// a later storefront event re-runs the whole sync.
package syncattempt

import (
	"errors"
	"strings"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrAttemptIsNotConstructed = errors.New("Attempt must be created via NewAttempt or RestoreAttempt")

// Trigger is the storefront event that started a sync.
type Trigger string

const (
	TriggerOrderCreated      Trigger = "order_created"
	TriggerStatusChanged     Trigger = "status_changed"
	TriggerCheckoutCompleted Trigger = "checkout_completed"
)

// Kind distinguishes a full payload sync from a status-only update.
type Kind string

const (
	KindFullSync     Kind = "full_sync"
	KindStatusUpdate Kind = "status_update"
)

// Outcome is how the outbound call ended.
type Outcome string

const (
	OutcomeSucceeded      Outcome = "succeeded"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeRejected       Outcome = "rejected"
	OutcomeSkipped        Outcome = "skipped"
)

func (t Trigger) Validate() error {
	switch t {
	case TriggerOrderCreated, TriggerStatusChanged, TriggerCheckoutCompleted:
		return nil
	}
	return errs.NewValueIsInvalidError("trigger")
}

func (k Kind) Validate() error {
	switch k {
	case KindFullSync, KindStatusUpdate:
		return nil
	}
	return errs.NewValueIsInvalidError("kind")
}

func (o Outcome) Validate() error {
	switch o {
	case OutcomeSucceeded, OutcomeTransportError, OutcomeRejected, OutcomeSkipped:
		return nil
	}
	return errs.NewValueIsInvalidError("outcome")
}

// Result describes the end of one outbound call.
type Result struct {
	Outcome    Outcome
	HTTPStatus int
	Error      string
}

// Attempt is one ledger row. VendorID is empty for status-only updates, which
// address the order as a whole.
type Attempt struct {
	id         kernel.UUID
	wooOrderID int64
	vendorID   string
	trigger    Trigger
	kind       Kind
	wooStatus  string
	itemCount  int
	total      float64
	result     Result
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// Params groups the fields of a new or restored attempt.
type Params struct {
	ID         kernel.UUID
	WooOrderID int64
	VendorID   string
	Trigger    Trigger
	Kind       Kind
	WooStatus  string
	ItemCount  int
	Total      float64
	Result     Result
	CreatedAt  time.Time
}

// NewAttempt records a fresh attempt with a generated id.
func NewAttempt(p Params) (*Attempt, error) {
	p.ID = kernel.NewUUID()
	return RestoreAttempt(p)
}

// RestoreAttempt rebuilds an attempt read from storage.
func RestoreAttempt(p Params) (*Attempt, error) {
	var orderErr, vendorErr, timeErr error
	if p.WooOrderID <= 0 {
		orderErr = errs.NewValueIsRequiredError("woo_order_id")
	}
	if p.Kind == KindFullSync && strings.TrimSpace(p.VendorID) == "" {
		vendorErr = errs.NewValueIsRequiredError("woo_vendor_id")
	}
	if p.CreatedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("created_at")
	}

	if err := errors.Join(
		p.ID.Validate(),
		orderErr,
		vendorErr,
		p.Trigger.Validate(),
		p.Kind.Validate(),
		p.Result.Outcome.Validate(),
		timeErr,
	); err != nil {
		return nil, err
	}

	return &Attempt{
		id:         p.ID,
		wooOrderID: p.WooOrderID,
		vendorID:   p.VendorID,
		trigger:    p.Trigger,
		kind:       p.Kind,
		wooStatus:  p.WooStatus,
		itemCount:  p.ItemCount,
		total:      p.Total,
		result:     p.Result,
		createdAt:  p.CreatedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (a *Attempt) Validate() error {
	return a.guard.Validate(ErrAttemptIsNotConstructed)
}

func (a *Attempt) ID() kernel.UUID      { return a.id }
func (a *Attempt) WooOrderID() int64    { return a.wooOrderID }
func (a *Attempt) VendorID() string     { return a.vendorID }
func (a *Attempt) Trigger() Trigger     { return a.trigger }
func (a *Attempt) Kind() Kind           { return a.kind }
func (a *Attempt) WooStatus() string    { return a.wooStatus }
func (a *Attempt) ItemCount() int       { return a.itemCount }
func (a *Attempt) Total() float64       { return a.total }
func (a *Attempt) Result() Result       { return a.result }
func (a *Attempt) CreatedAt() time.Time { return a.createdAt }

// Succeeded reports whether the backend accepted the call.
func (a *Attempt) Succeeded() bool {
	return a.result.Outcome == OutcomeSucceeded
}
