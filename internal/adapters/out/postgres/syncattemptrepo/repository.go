package syncattemptrepo

import (
	"context"
	"errors"
	"time"

	"medex/internal/core/domain/model/kernel"
	"medex/internal/core/domain/model/syncattempt"
	"medex/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSyncAttemptRepository implements SyncAttemptRepository using GORM.
type GormSyncAttemptRepository struct {
	db *gorm.DB
}

func NewGormSyncAttemptRepository(db *gorm.DB) *GormSyncAttemptRepository {
	return &GormSyncAttemptRepository{db: db}
}

// Add appends an attempt. Ledger rows are never updated.
func (r *GormSyncAttemptRepository) Add(ctx context.Context, attempt *syncattempt.Attempt) error {
	if attempt == nil {
		return errs.NewValueIsRequiredError("attempt")
	}
	if err := attempt.Validate(); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an attempt by id.
func (r *GormSyncAttemptRepository) Get(ctx context.Context, id kernel.UUID) (*syncattempt.Attempt, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SyncAttemptDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sync attempt", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// LastWooStatus returns the storefront status of the newest attempt for the order.
func (r *GormSyncAttemptRepository) LastWooStatus(ctx context.Context, wooOrderID int64) (string, bool, error) {
	var dto SyncAttemptDTO
	err := r.db.WithContext(ctx).
		Where("woo_order_id = ?", wooOrderID).
		Order("created_at DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return dto.WooStatus, true, nil
}

// DeleteOlderThan removes rows created strictly before cutoff.
func (r *GormSyncAttemptRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&SyncAttemptDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
