// Package syncattemptrepo persists the relay's sync attempt ledger.
package syncattemptrepo

import (
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"

	"github.com/google/uuid"
)

// SyncAttemptDTO is one row of the sync_attempts table. Lookups go by order and
// by age, so both columns are indexed.
type SyncAttemptDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	WooOrderID int64     `gorm:"index:idx_sync_attempts_order_created,priority:1"`
	VendorID   string    `gorm:"column:woo_vendor_id;size:64"`
	Trigger    string    `gorm:"column:sync_trigger;size:32"`
	Kind       string    `gorm:"size:32"`
	WooStatus  string    `gorm:"size:64"`
	ItemCount  int
	Total      float64
	Outcome    string    `gorm:"size:32;index"`
	HTTPStatus int       `gorm:"column:http_status"`
	Error      string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index:idx_sync_attempts_order_created,priority:2;index"`
}

func (SyncAttemptDTO) TableName() string {
	return "sync_attempts"
}

func fromDomain(a *syncattempt.Attempt) SyncAttemptDTO {
	result := a.Result()
	return SyncAttemptDTO{
		ID:         a.ID().Bytes(),
		WooOrderID: a.WooOrderID(),
		VendorID:   a.VendorID(),
		Trigger:    string(a.Trigger()),
		Kind:       string(a.Kind()),
		WooStatus:  a.WooStatus(),
		ItemCount:  a.ItemCount(),
		Total:      a.Total(),
		Outcome:    string(result.Outcome),
		HTTPStatus: result.HTTPStatus,
		Error:      result.Error,
		CreatedAt:  a.CreatedAt(),
	}
}

// ToDomain rebuilds an attempt from its row. Queries that scan rows reuse it.
func ToDomain(dto SyncAttemptDTO) (*syncattempt.Attempt, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return syncattempt.RestoreAttempt(syncattempt.Params{
		ID:         id,
		WooOrderID: dto.WooOrderID,
		VendorID:   dto.VendorID,
		Trigger:    syncattempt.Trigger(dto.Trigger),
		Kind:       syncattempt.Kind(dto.Kind),
		WooStatus:  dto.WooStatus,
		ItemCount:  dto.ItemCount,
		Total:      dto.Total,
		Result: syncattempt.Result{
			Outcome:    syncattempt.Outcome(dto.Outcome),
			HTTPStatus: dto.HTTPStatus,
			Error:      dto.Error,
		},
		CreatedAt: dto.CreatedAt,
	})
}
